package clerkwebhook

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleUserDeleted(c *gin.Context, data json.RawMessage) {
	var payload deletedPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == "" {
		c.String(http.StatusBadRequest, "Error occurred -- malformed user.deleted data")
		return
	}

	// Idempotent: deleting an already-absent user returns user: null
	// with 200 so provider redeliveries settle quietly.
	deleted, err := h.users.DeleteByClerkID(c.Request.Context(), payload.ID)
	if err != nil {
		log.Printf("❌ delete user failed: clerk_id=%s err=%v", payload.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "user": deleted})
}
