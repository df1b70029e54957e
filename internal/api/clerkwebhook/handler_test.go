package clerkwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"imaginify-backend/database"
	"imaginify-backend/internal/domain/users"
	"imaginify-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func testSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString([]byte(testSecretKey))
}

// signPayload produces a provider-style signature for test deliveries.
// Production verification stays inside the svix library; this only
// mirrors the signing side.
func signPayload(msgID, timestamp string, payload []byte) string {
	signed := msgID + "." + timestamp + "." + string(payload)
	mac := hmac.New(sha256.New, []byte(testSecretKey))
	mac.Write([]byte(signed))
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type webhookEnv struct {
	router *gin.Engine
	db     *gorm.DB
	users  repository.Users
}

func newWebhookEnv(t *testing.T) *webhookEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	usersRepo := repository.NewUsers(db)
	handler, err := NewHandler(testSecret(), usersRepo)
	if err != nil {
		t.Fatalf("NewHandler error = %v", err)
	}

	router := gin.New()
	router.POST("/api/webhooks/clerk", handler.Handle)

	return &webhookEnv{router: router, db: db, users: usersRepo}
}

type delivery struct {
	msgID     string
	skipID    bool
	skipTS    bool
	skipSig   bool
	signature string // overrides the computed signature when set
}

func (env *webhookEnv) deliver(t *testing.T, body string, opts delivery) *httptest.ResponseRecorder {
	t.Helper()

	msgID := opts.msgID
	if msgID == "" {
		msgID = "msg_test_1"
	}
	timestamp := fmt.Sprint(time.Now().Unix())

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(body))
	if !opts.skipID {
		req.Header.Set("svix-id", msgID)
	}
	if !opts.skipTS {
		req.Header.Set("svix-timestamp", timestamp)
	}
	if !opts.skipSig {
		sig := opts.signature
		if sig == "" {
			sig = signPayload(msgID, timestamp, []byte(body))
		}
		req.Header.Set("svix-signature", sig)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *webhookEnv) userCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(&users.User{}).Count(&n).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return n
}

func createdEvent(id, email, username, firstName string) string {
	data := map[string]interface{}{"id": id}
	if email != "" {
		data["email_addresses"] = []map[string]string{{"email_address": email}}
	}
	if username != "" {
		data["username"] = username
	}
	if firstName != "" {
		data["first_name"] = firstName
	}
	data["image_url"] = "https://img.clerk.com/" + id
	body, _ := json.Marshal(map[string]interface{}{"type": "user.created", "data": data})
	return string(body)
}

func TestMissingHeadersRejected(t *testing.T) {
	tests := []struct {
		name string
		opts delivery
	}{
		{"no id", delivery{skipID: true}},
		{"no timestamp", delivery{skipTS: true}},
		{"no signature", delivery{skipSig: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newWebhookEnv(t)
			w := env.deliver(t, createdEvent("user_abc123", "a@example.com", "alice", "Alice"), tc.opts)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), "missing svix headers") {
				t.Fatalf("body = %q, want missing-headers error", w.Body.String())
			}
			if n := env.userCount(t); n != 0 {
				t.Fatalf("users written despite rejection: %d", n)
			}
		})
	}
}

func TestTamperedSignatureRejected(t *testing.T) {
	env := newWebhookEnv(t)
	body := createdEvent("user_abc123", "a@example.com", "alice", "Alice")

	// Sign one body, deliver another.
	sig := signPayload("msg_test_1", fmt.Sprint(time.Now().Unix()), []byte(body))
	tampered := strings.Replace(body, "alice", "mallory", 1)
	w := env.deliver(t, tampered, delivery{signature: sig})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if n := env.userCount(t); n != 0 {
		t.Fatalf("users written despite bad signature: %d", n)
	}
}

func TestUserCreated(t *testing.T) {
	env := newWebhookEnv(t)
	w := env.deliver(t, createdEvent("user_abc123", "a@example.com", "alice", "Alice"), delivery{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string     `json:"message"`
		User    users.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "OK" {
		t.Fatalf("message = %q, want OK", resp.Message)
	}
	if resp.User.ClerkID != "user_abc123" || resp.User.Email != "a@example.com" || resp.User.UserName != "alice" {
		t.Fatalf("stored user = %+v", resp.User)
	}
	if resp.User.PlanID != 1 || resp.User.CreditBalance != 10 {
		t.Fatalf("billing defaults = plan %d credits %d", resp.User.PlanID, resp.User.CreditBalance)
	}
}

func TestUserCreatedFallbacks(t *testing.T) {
	env := newWebhookEnv(t)
	// No email addresses, no username, no first name.
	w := env.deliver(t, createdEvent("user_abc123xyz", "", "", ""), delivery{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	stored, err := env.users.FindByClerkID(context.Background(), "user_abc123xyz")
	if err != nil {
		t.Fatalf("FindByClerkID error = %v", err)
	}
	if stored.Email != placeholderEmail {
		t.Fatalf("Email = %q, want placeholder %q", stored.Email, placeholderEmail)
	}
	if stored.UserName != "user_user_a" {
		t.Fatalf("UserName = %q, want user_ + first 6 chars of id", stored.UserName)
	}
	if stored.FirstName != "" || stored.LastName != "" {
		t.Fatalf("name fallbacks = %q %q, want empty", stored.FirstName, stored.LastName)
	}
}

func TestDuplicateUserCreated(t *testing.T) {
	env := newWebhookEnv(t)
	body := createdEvent("user_abc123", "a@example.com", "alice", "Alice")

	if w := env.deliver(t, body, delivery{msgID: "msg_1"}); w.Code != http.StatusOK {
		t.Fatalf("first delivery status = %d", w.Code)
	}
	w := env.deliver(t, body, delivery{msgID: "msg_2"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate delivery status = %d, want 409", w.Code)
	}
	if n := env.userCount(t); n != 1 {
		t.Fatalf("user count = %d, want 1", n)
	}
}

func TestCreateThenUpdateRoundTrip(t *testing.T) {
	env := newWebhookEnv(t)
	if w := env.deliver(t, createdEvent("user_abc123", "a@example.com", "alice", "Alice"), delivery{msgID: "msg_1"}); w.Code != http.StatusOK {
		t.Fatalf("create status = %d", w.Code)
	}

	update, _ := json.Marshal(map[string]interface{}{
		"type": "user.updated",
		"data": map[string]interface{}{
			"id":         "user_abc123",
			"first_name": "Alicia",
			"last_name":  "Liddell",
			"username":   "alice",
			"image_url":  "https://img.clerk.com/new",
		},
	})
	w := env.deliver(t, string(update), delivery{msgID: "msg_2"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	stored, err := env.users.FindByClerkID(context.Background(), "user_abc123")
	if err != nil {
		t.Fatalf("FindByClerkID error = %v", err)
	}
	if stored.FirstName != "Alicia" || stored.Photo != "https://img.clerk.com/new" {
		t.Fatalf("update not applied: %+v", stored)
	}
	if stored.ClerkID != "user_abc123" || stored.Email != "a@example.com" || stored.UserName != "alice" {
		t.Fatalf("identity fields changed by update: %+v", stored)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	env := newWebhookEnv(t)
	update, _ := json.Marshal(map[string]interface{}{
		"type": "user.updated",
		"data": map[string]interface{}{"id": "user_nope", "first_name": "X"},
	})
	w := env.deliver(t, string(update), delivery{})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUserDeletedIdempotent(t *testing.T) {
	env := newWebhookEnv(t)
	if w := env.deliver(t, createdEvent("user_abc123", "a@example.com", "alice", "Alice"), delivery{msgID: "msg_1"}); w.Code != http.StatusOK {
		t.Fatalf("create status = %d", w.Code)
	}

	deleted, _ := json.Marshal(map[string]interface{}{
		"type": "user.deleted",
		"data": map[string]interface{}{"id": "user_abc123", "deleted": true},
	})

	w := env.deliver(t, string(deleted), delivery{msgID: "msg_2"})
	if w.Code != http.StatusOK {
		t.Fatalf("first delete status = %d", w.Code)
	}
	var first struct {
		User *users.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode first delete: %v", err)
	}
	if first.User == nil || first.User.ClerkID != "user_abc123" {
		t.Fatalf("first delete user = %+v, want the removed record", first.User)
	}

	w = env.deliver(t, string(deleted), delivery{msgID: "msg_3"})
	if w.Code != http.StatusOK {
		t.Fatalf("redelivered delete status = %d, want 200", w.Code)
	}
	var second struct {
		User *users.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode second delete: %v", err)
	}
	if second.User != nil {
		t.Fatalf("second delete user = %+v, want null", second.User)
	}
	if n := env.userCount(t); n != 0 {
		t.Fatalf("user count = %d, want 0", n)
	}
}

func TestUnknownEventTypeIsNoOp(t *testing.T) {
	env := newWebhookEnv(t)
	body, _ := json.Marshal(map[string]interface{}{
		"type": "organization.created",
		"data": map[string]interface{}{"id": "org_123", "name": "Acme"},
	})

	w := env.deliver(t, string(body), delivery{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", w.Body.String())
	}
	if n := env.userCount(t); n != 0 {
		t.Fatalf("state mutated by unrecognized event: %d users", n)
	}
}
