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

func (h *Handler) handleUserCreated(c *gin.Context, data json.RawMessage) {
	var payload userPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == "" {
		c.String(http.StatusBadRequest, "Error occurred -- malformed user.created data")
		return
	}

	email, hadEmail := payload.primaryEmail()
	if !hadEmail {
		log.Printf("⚠️ user.created without email address, storing placeholder: clerk_id=%s", payload.ID)
	}

	user := users.User{
		ClerkID:   payload.ID,
		Email:     email,
		UserName:  payload.userName(),
		FirstName: orEmpty(payload.FirstName),
		LastName:  orEmpty(payload.LastName),
		Photo:     orEmpty(payload.ImageURL),
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			log.Printf("duplicate user.created: clerk_id=%s", payload.ID)
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		log.Printf("❌ create user failed: clerk_id=%s err=%v", payload.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "user": user})
}
