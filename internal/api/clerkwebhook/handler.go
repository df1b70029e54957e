package clerkwebhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"imaginify-backend/internal/repository"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
)

// Handler receives Clerk user-lifecycle webhooks, verifies their svix
// signature and syncs the local user table.
type Handler struct {
	wh    *svix.Webhook
	users repository.Users
}

// NewHandler builds the webhook receiver. An unusable secret is a
// startup-class configuration error, so it is returned, not deferred to
// request time.
func NewHandler(secret string, users repository.Users) (*Handler, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &Handler{wh: wh, users: users}, nil
}

// Handle is the POST /api/webhooks/clerk endpoint.
func (h *Handler) Handle(c *gin.Context) {
	svixID := c.GetHeader("svix-id")
	svixTimestamp := c.GetHeader("svix-timestamp")
	svixSignature := c.GetHeader("svix-signature")

	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		c.String(http.StatusBadRequest, "Error occurred -- missing svix headers")
		return
	}

	payload, err := readBody(c, 65536)
	if err != nil {
		c.String(http.StatusBadRequest, "Error reading request body")
		return
	}

	if err := h.wh.Verify(payload, c.Request.Header); err != nil {
		// Payload stays out of the logs; type and id are enough to
		// replay from the provider dashboard.
		log.Printf("❌ webhook verification failed: id=%s err=%v", svixID, err)
		c.String(http.StatusBadRequest, "Error occurred")
		return
	}

	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Printf("❌ webhook payload not valid JSON: id=%s err=%v", svixID, err)
		c.String(http.StatusBadRequest, "Error occurred")
		return
	}

	log.Printf("✅ webhook verified: type=%s id=%s", evt.Type, svixID)

	switch evt.Type {
	case eventUserCreated:
		h.handleUserCreated(c, evt.Data)
	case eventUserUpdated:
		h.handleUserUpdated(c, evt.Data)
	case eventUserDeleted:
		h.handleUserDeleted(c, evt.Data)
	default:
		// Forward compatibility: acknowledge so the provider does not
		// retry event kinds we do not consume.
		log.Printf("ignoring webhook: type=%s id=%s", evt.Type, svixID)
		c.Status(http.StatusOK)
	}
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
