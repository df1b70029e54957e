package transformations

import (
	"errors"
	"net/http"

	"imaginify-backend/internal/app/http/middleware"
	"imaginify-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	users repository.Users
}

func NewHandler(users repository.Users) *Handler {
	return &Handler{users: users}
}

// ListTypes backs the navigation: the catalog of editing modes.
func (h *Handler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, AllTypes())
}

// GetAddPage scaffolds the add-transformation page for one type: the
// type's copy plus the caller's credit standing, so the client can route
// to buy-credits before starting an edit.
func (h *Handler) GetAddPage(c *gin.Context) {
	transformation, ok := TypeByKey(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown transformation type"})
		return
	}

	clerkID := c.GetString(middleware.ClerkIDKey)
	user, err := h.users.FindByClerkID(c.Request.Context(), clerkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transformation":      transformation,
		"userId":              user.ID,
		"creditBalance":       user.CreditBalance,
		"insufficientCredits": user.CreditBalance <= 0,
	})
}
