package clerkwebhook

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"imaginify-backend/internal/domain/users"
	"imaginify-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleUserUpdated(c *gin.Context, data json.RawMessage) {
	var payload userPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == "" {
		c.String(http.StatusBadRequest, "Error occurred -- malformed user.updated data")
		return
	}

	patch := users.ProfilePatch{
		FirstName: orEmpty(payload.FirstName),
		LastName:  orEmpty(payload.LastName),
		UserName:  payload.userName(),
		Photo:     orEmpty(payload.ImageURL),
	}

	updated, err := h.users.UpdateByClerkID(c.Request.Context(), payload.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("user.updated for unknown user: clerk_id=%s", payload.ID)
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("❌ update user failed: clerk_id=%s err=%v", payload.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "user": updated})
}
