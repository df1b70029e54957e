package users

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

// GetCurrentUser resolves the authenticated Clerk subject to the synced
// user record.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	clerkID := c.GetString(middleware.ClerkIDKey)
	if clerkID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.users.FindByClerkID(c.Request.Context(), clerkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, BuildMeResponse(user))
}
