package domain

import (
	"net/mail"
	"strings"
	"time"
)

// NewsletterSubscription records one address on the mailing list. ID doubles
// as the token a subscriber presents, together with the address, to confirm
// or leave the list.
type NewsletterSubscription struct {
	ID                string     `json:"id"                     bson:"_id"`
	Email             string     `json:"email"                  bson:"email"`
	AcceptedMarketing bool       `json:"accepted_marketing"     bson:"accepted_marketing"`
	Confirmed         bool       `json:"confirmed"              bson:"confirmed"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"             bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"             bson:"updated_at"`
}

// Active reports whether mail may be sent to the address.
func (s *NewsletterSubscription) Active() bool {
	return s.AcceptedMarketing && s.Confirmed
}

// NormalizeEmail lowercases and trims an address. It returns "" when the
// result is not a bare address.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"         bson:"_id"`
	Name      string    `json:"name"       bson:"name"`
	Email     string    `json:"email"      bson:"email"`
	Subject   string    `json:"subject"    bson:"subject"`
	Message   string    `json:"message"    bson:"message"`
	RemoteIP  string    `json:"-"          bson:"remote_ip,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
