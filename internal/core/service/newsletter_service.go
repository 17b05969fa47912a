package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/pkg/metrics"
)

// NewsletterService implements ports.NewsletterService and
// ports.MarketingConsent.
type NewsletterService struct {
	repo ports.NewsletterRepository
	log  zerolog.Logger
}

func NewNewsletterService(repo ports.NewsletterRepository, log zerolog.Logger) *NewsletterService {
	return &NewsletterService{repo: repo, log: log}
}

// Subscribe adds email to the list pending confirmation. Subscribing an
// address that is already active is a no-op; a lapsed address gets a fresh
// id and must confirm again.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	sub, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		sub = &domain.NewsletterSubscription{Email: email, CreatedAt: now}
	case err != nil:
		return nil, err
	case sub.Active():
		return sub, nil
	}

	sub.ID = uuid.NewString()
	sub.AcceptedMarketing = true
	sub.Confirmed = false
	sub.ConfirmedAt = nil
	sub.UpdatedAt = now
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}

	metrics.NewsletterActionsTotal.WithLabelValues("subscribed").Inc()
	s.log.Info().Str("subscription_id", sub.ID).Msg("newsletter subscription pending confirmation")
	return sub, nil
}

func (s *NewsletterService) Confirm(ctx context.Context, id, email string) (*domain.NewsletterSubscription, error) {
	sub, err := s.match(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if sub.Confirmed {
		return sub, nil
	}

	now := time.Now().UTC()
	sub.Confirmed = true
	sub.ConfirmedAt = &now
	sub.UpdatedAt = now
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	metrics.NewsletterActionsTotal.WithLabelValues("confirmed").Inc()
	return sub, nil
}

// Unsubscribe withdraws marketing consent. The record is kept so the
// address can be re-activated from a profile.
func (s *NewsletterService) Unsubscribe(ctx context.Context, id, email string) error {
	sub, err := s.match(ctx, id, email)
	if err != nil {
		return err
	}
	if !sub.AcceptedMarketing {
		return nil
	}
	sub.AcceptedMarketing = false
	sub.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, sub); err != nil {
		return err
	}
	metrics.NewsletterActionsTotal.WithLabelValues("unsubscribed").Inc()
	return nil
}

// SetMarketingConsent records the consent of an account holder. The
// address belongs to a logged-in account so it counts as confirmed.
func (s *NewsletterService) SetMarketingConsent(ctx context.Context, email string, accepted bool) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	sub, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		if !accepted {
			return nil
		}
		sub = &domain.NewsletterSubscription{ID: uuid.NewString(), Email: email, CreatedAt: now}
	case err != nil:
		return err
	}

	if accepted && !sub.Confirmed {
		sub.Confirmed = true
		sub.ConfirmedAt = &now
	}
	sub.AcceptedMarketing = accepted
	sub.UpdatedAt = now
	if err := s.repo.Save(ctx, sub); err != nil {
		return err
	}
	metrics.NewsletterActionsTotal.WithLabelValues("consent_updated").Inc()
	return nil
}

func (s *NewsletterService) AcceptsMarketing(ctx context.Context, email string) (bool, error) {
	sub, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrSubscriptionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sub.Active(), nil
}

func (s *NewsletterService) match(ctx context.Context, id, email string) (*domain.NewsletterSubscription, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || id == "" {
		return nil, domain.ErrSubscriptionNotFound
	}
	sub, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(sub.ID), []byte(id)) != 1 {
		return nil, domain.ErrSubscriptionNotFound
	}
	return sub, nil
}
