package billing

import (
	"net/http"

	"imaginify-backend/internal/app/http/middleware"
	"imaginify-backend/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// GetTransactionHistory lists the current user's payments, newest first.
func (h *Handler) GetTransactionHistory(c *gin.Context) {
	clerkID := c.GetString(middleware.ClerkIDKey)
	user, err := h.users.FindByClerkID(c.Request.Context(), clerkID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	txns, err := h.transactions.ListByBuyer(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txns)
}

// ListPlans exposes the purchasable credit packs.
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, plans.All())
}
