package main

import (
	"context"
	"log"
	"os"
	"time"

	"imaginify-backend/config"
	"imaginify-backend/database"
	billingapi "imaginify-backend/internal/api/billing"
	"imaginify-backend/internal/api/clerkwebhook"
	"imaginify-backend/internal/api/stripewebhook"
	transformationsapi "imaginify-backend/internal/api/transformations"
	usersapi "imaginify-backend/internal/api/users"
	routes "imaginify-backend/internal/app/http"
	"imaginify-backend/internal/app/http/middleware"
	"imaginify-backend/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	provider := database.NewProvider(database.PostgresOpener(config.DB_URL))
	db := provider.MustGet()

	usersRepo := repository.NewUsers(db)
	transactionsRepo := repository.NewTransactions(db)

	clerkHandler, err := clerkwebhook.NewHandler(config.WEBHOOK_SECRET, usersRepo)
	if err != nil {
		log.Fatal("❌ Invalid WEBHOOK_SECRET: ", err)
	}

	verifier, err := middleware.NewClerkVerifier(context.Background(), config.CLERK_ISSUER)
	if err != nil {
		log.Fatal("❌ Failed to discover identity provider: ", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		ClerkWebhook:    clerkHandler,
		StripeWebhook:   stripewebhook.NewHandler(config.STRIPE_WEBHOOK_SECRET, transactionsRepo),
		Users:           usersapi.NewHandler(usersRepo),
		Billing:         billingapi.NewHandler(config.STRIPE_SECRET_KEY, config.APP_URL, usersRepo, transactionsRepo),
		Transformations: transformationsapi.NewHandler(usersRepo),
		Verifier:        verifier,
	})

	r.Run(":" + config.PORT)
}
