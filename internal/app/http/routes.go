package routes

import (
	billingapi "imaginify-backend/internal/api/billing"
	"imaginify-backend/internal/api/clerkwebhook"
	"imaginify-backend/internal/api/stripewebhook"
	transformationsapi "imaginify-backend/internal/api/transformations"
	usersapi "imaginify-backend/internal/api/users"
	"imaginify-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries the constructed handlers into route registration.
type Deps struct {
	ClerkWebhook    *clerkwebhook.Handler
	StripeWebhook   *stripewebhook.Handler
	Users           *usersapi.Handler
	Billing         *billingapi.Handler
	Transformations *transformationsapi.Handler
	Verifier        middleware.TokenVerifier
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Webhooks stay outside the sanitizing group: their bodies must
	// reach the signature check byte-exact.
	r.POST("/api/webhooks/clerk", d.ClerkWebhook.Handle)
	r.POST("/api/webhooks/stripe", d.StripeWebhook.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.GET("/api/plans", d.Billing.ListPlans)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.Verifier), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/api/me", d.Users.GetCurrentUser)
	auth.GET("/api/transactions", d.Billing.GetTransactionHistory)
	auth.POST("/api/checkout", d.Billing.CreateCheckoutSession)

	auth.GET("/api/transformations/types", d.Transformations.ListTypes)
	auth.GET("/api/transformations/add/:type", d.Transformations.GetAddPage)
}
