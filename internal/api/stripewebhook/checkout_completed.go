package stripewebhook

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"imaginify-backend/internal/domain/transactions"
	"imaginify-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleCheckoutCompleted(c *gin.Context, session *stripe.CheckoutSession) {
	if session.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session missing id"})
		return
	}

	buyerID := buyerIDFromMetadata(session.Metadata)
	if buyerID == 0 {
		log.Printf("checkout session without buyer_id metadata: session=%s", session.ID)
		// Not retryable; acknowledge so Stripe stops redelivering.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	credits := 0
	if s := session.Metadata["credits"]; s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			credits = n
		}
	}

	txn := transactions.Transaction{
		StripeID: session.ID,
		Amount:   float64(session.AmountTotal) / 100,
		Plan:     session.Metadata["plan"],
		Credits:  credits,
		BuyerID:  buyerID,
	}

	if err := h.transactions.CreateAndCredit(c.Request.Context(), &txn); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Redelivery of an already-recorded payment: settled.
			log.Printf("duplicate checkout session, already recorded: session=%s", session.ID)
			c.JSON(http.StatusOK, gin.H{"status": "received"})
			return
		}
		log.Printf("❌ record transaction failed: session=%s err=%v", session.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func buyerIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["buyer_id"]
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
