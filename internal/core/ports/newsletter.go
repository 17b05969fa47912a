package ports

import (
	"context"

	"github.com/inkwell/content-system/internal/core/domain"
)

// NewsletterRepository persists subscriptions keyed by email address.
type NewsletterRepository interface {
	// FindByEmail returns domain.ErrSubscriptionNotFound when the address
	// is not on the list.
	FindByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error)
	// Save inserts or replaces the subscription stored for sub.Email.
	Save(ctx context.Context, sub *domain.NewsletterSubscription) error
}

// NewsletterService is the public sign-up flow. Confirm and Unsubscribe
// require both the address and the subscription id; a mismatch is reported
// as domain.ErrSubscriptionNotFound.
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscription, error)
	Confirm(ctx context.Context, id, email string) (*domain.NewsletterSubscription, error)
	Unsubscribe(ctx context.Context, id, email string) error
}

// MarketingConsent lets account holders opt in or out from their profile
// without the confirmation round trip.
type MarketingConsent interface {
	SetMarketingConsent(ctx context.Context, email string, accepted bool) error
	AcceptsMarketing(ctx context.Context, email string) (bool, error)
}
