package billing

import (
	"fmt"
	"net/http"

	"imaginify-backend/internal/app/http/middleware"
	"imaginify-backend/internal/domain/plans"
	"imaginify-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

type Handler struct {
	stripeKey    string
	appURL       string
	users        repository.Users
	transactions repository.Transactions
}

func NewHandler(stripeKey, appURL string, users repository.Users, transactions repository.Transactions) *Handler {
	return &Handler{
		stripeKey:    stripeKey,
		appURL:       appURL,
		users:        users,
		transactions: transactions,
	}
}

// CreateCheckoutSession starts a Stripe Checkout session for a credit
// pack. The plan id is allow-listed against the static catalog; the
// buyer and credit grant ride along as session metadata for the webhook.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PlanID int `json:"plan_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PlanID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan_id"})
		return
	}

	if h.stripeKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}
	stripe.Key = h.stripeKey

	plan, ok := plans.ByID(body.PlanID)
	if !ok || plan.PriceUSD <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan_id"})
		return
	}

	clerkID := c.GetString(middleware.ClerkIDKey)
	user, err := h.users.FindByClerkID(c.Request.Context(), clerkID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(h.appURL + "/profile"),
		CancelURL:  stripe.String(h.appURL + "/"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(plan.PriceUSD * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(plan.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("buyer_id", fmt.Sprint(user.ID))
	params.AddMetadata("plan", plan.Name)
	params.AddMetadata("credits", fmt.Sprint(plan.Credits))

	sess, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}
