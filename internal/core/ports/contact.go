package ports

import (
	"context"

	"github.com/inkwell/content-system/internal/core/domain"
)

// ContactInput is one contact form submission.
type ContactInput struct {
	Name         string
	Email        string
	Subject      string
	Message      string
	CaptchaToken string
	RemoteIP     string
}

type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error)
}

type ContactRepository interface {
	InsertMessage(ctx context.Context, msg *domain.ContactMessage) error
}

// SpamChecker verifies a client-side challenge token. A false result with
// a nil error means the token was checked and rejected.
type SpamChecker interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}
