package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/content-system/internal/core/domain"
)

func TestNewsletterService_SubscribeThenConfirm(t *testing.T) {
	repo := newStubNewsletterRepo()
	svc := NewNewsletterService(repo, discardLogger)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, " Reader@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.Active(), "pending until confirmed")

	confirmed, err := svc.Confirm(ctx, sub.ID, "READER@example.com")
	require.NoError(t, err)
	assert.True(t, confirmed.Active())
	require.NotNil(t, confirmed.ConfirmedAt)

	ok, err := svc.AcceptsMarketing(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewsletterService_Subscribe_InvalidEmail(t *testing.T) {
	svc := NewNewsletterService(newStubNewsletterRepo(), discardLogger)

	_, err := svc.Subscribe(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestNewsletterService_Subscribe_ActiveIsNoOp(t *testing.T) {
	repo := newStubNewsletterRepo(&domain.NewsletterSubscription{
		ID: "sub-1", Email: "reader@example.com", AcceptedMarketing: true, Confirmed: true,
	})
	svc := NewNewsletterService(repo, discardLogger)

	sub, err := svc.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", sub.ID)
	assert.Zero(t, repo.saves)
}

func TestNewsletterService_Resubscribe_RotatesID(t *testing.T) {
	repo := newStubNewsletterRepo(&domain.NewsletterSubscription{
		ID: "old", Email: "reader@example.com", AcceptedMarketing: false, Confirmed: true,
	})
	svc := NewNewsletterService(repo, discardLogger)

	sub, err := svc.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "old", sub.ID)
	assert.False(t, sub.Confirmed, "a lapsed address confirms again")

	_, err = svc.Confirm(context.Background(), "old", "reader@example.com")
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}

func TestNewsletterService_Confirm_RequiresMatchingID(t *testing.T) {
	repo := newStubNewsletterRepo(&domain.NewsletterSubscription{
		ID: "sub-1", Email: "reader@example.com", AcceptedMarketing: true,
	})
	svc := NewNewsletterService(repo, discardLogger)
	ctx := context.Background()

	_, err := svc.Confirm(ctx, "sub-2", "reader@example.com")
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

	_, err = svc.Confirm(ctx, "sub-1", "other@example.com")
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

	_, err = svc.Confirm(ctx, "", "reader@example.com")
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
	assert.False(t, repo.byEmail["reader@example.com"].Confirmed)
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	repo := newStubNewsletterRepo(&domain.NewsletterSubscription{
		ID: "sub-1", Email: "reader@example.com", AcceptedMarketing: true, Confirmed: true,
	})
	svc := NewNewsletterService(repo, discardLogger)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Unsubscribe(ctx, "guess", "reader@example.com"), domain.ErrSubscriptionNotFound)
	assert.True(t, repo.byEmail["reader@example.com"].AcceptedMarketing)

	require.NoError(t, svc.Unsubscribe(ctx, "sub-1", "reader@example.com"))
	assert.False(t, repo.byEmail["reader@example.com"].AcceptedMarketing)

	// Repeating is harmless.
	require.NoError(t, svc.Unsubscribe(ctx, "sub-1", "reader@example.com"))
	assert.Equal(t, 1, repo.saves)
}

func TestNewsletterService_SetMarketingConsent(t *testing.T) {
	repo := newStubNewsletterRepo()
	svc := NewNewsletterService(repo, discardLogger)
	ctx := context.Background()

	// Opting out without a record stores nothing.
	require.NoError(t, svc.SetMarketingConsent(ctx, "alice@example.com", false))
	assert.Empty(t, repo.byEmail)

	require.NoError(t, svc.SetMarketingConsent(ctx, "alice@example.com", true))
	sub := repo.byEmail["alice@example.com"]
	require.NotNil(t, sub)
	assert.True(t, sub.Active(), "account holders skip the confirmation step")
	id := sub.ID

	require.NoError(t, svc.SetMarketingConsent(ctx, "alice@example.com", false))
	assert.False(t, repo.byEmail["alice@example.com"].AcceptedMarketing)
	assert.Equal(t, id, repo.byEmail["alice@example.com"].ID)
}

func TestNewsletterService_AcceptsMarketing_StoreError(t *testing.T) {
	repo := newStubNewsletterRepo()
	repo.err = errors.New("mongo down")
	svc := NewNewsletterService(repo, discardLogger)

	ok, err := svc.AcceptsMarketing(context.Background(), "alice@example.com")
	assert.Error(t, err)
	assert.False(t, ok)
}
