package clerkwebhook

import "encoding/json"

// Recognized event types. Anything else is acknowledged and ignored so
// new provider event kinds never break delivery.
const (
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
	eventUserDeleted = "user.deleted"
)

// placeholderEmail is stored when a user.created event carries no email
// addresses. Kept for parity with the provider-side configuration; the
// handler logs a warning so such accounts can be found.
const placeholderEmail = "test@gmail.com"

// Event is the verified webhook envelope. Data stays raw until the type
// switch decodes it into the matching payload struct.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

// userPayload covers user.created and user.updated. Optional fields are
// pointers so "absent" and "empty" stay distinguishable.
type userPayload struct {
	ID             string         `json:"id"`
	EmailAddresses []emailAddress `json:"email_addresses"`
	ImageURL       *string        `json:"image_url"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	Username       *string        `json:"username"`
}

type deletedPayload struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (p userPayload) primaryEmail() (string, bool) {
	if len(p.EmailAddresses) == 0 || p.EmailAddresses[0].EmailAddress == "" {
		return placeholderEmail, false
	}
	return p.EmailAddresses[0].EmailAddress, true
}

func (p userPayload) userName() string {
	if p.Username != nil && *p.Username != "" {
		return *p.Username
	}
	return "user_" + truncate(p.ID, 6)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
