package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/internal/core/policy"
)

func newProfileSvc() (*ProfileService, *stubUserRepo) {
	repo := newStubUserRepo(
		&domain.User{ID: "alice", Email: "alice@example.com", Role: domain.RoleUser},
		&domain.User{ID: "bob", Handle: "bob", Public: true, Role: domain.RoleUser},
		&domain.User{ID: "carol", Handle: "carol", Public: false, Role: domain.RoleUser},
	)
	return NewProfileService(repo, policy.New(policy.DefaultConfig()), nil, discardLogger), repo
}

func TestProfileService_UpdateProfile_EnablesAuthoring(t *testing.T) {
	svc, _ := newProfileSvc()
	actor := &policy.Actor{ID: "alice", Role: domain.RoleUser}

	_, caps, err := svc.Me(context.Background(), actor)
	require.NoError(t, err)
	assert.False(t, caps.CanAuthorPosts)

	user, err := svc.UpdateProfile(context.Background(), actor, ports.UpdateProfileInput{
		Name:   " Alice ",
		Handle: "Alice",
		Public: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Handle)
	assert.Equal(t, "Alice", user.Name)

	_, caps, err = svc.Me(context.Background(), policy.ActorFromUser(user))
	require.NoError(t, err)
	assert.True(t, caps.CanAuthorPosts)
	assert.False(t, caps.CanAuthorPages)
}

func TestProfileService_UpdateProfile_HandleRules(t *testing.T) {
	svc, _ := newProfileSvc()
	actor := &policy.Actor{ID: "alice", Role: domain.RoleUser}

	_, err := svc.UpdateProfile(context.Background(), actor, ports.UpdateProfileInput{Handle: "a!"})
	assert.ErrorIs(t, err, domain.ErrInvalidHandle)

	_, err = svc.UpdateProfile(context.Background(), actor, ports.UpdateProfileInput{Handle: "bob"})
	assert.ErrorIs(t, err, domain.ErrHandleTaken)

	_, err = svc.UpdateProfile(context.Background(), nil, ports.UpdateProfileInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestProfileService_Directory(t *testing.T) {
	svc, _ := newProfileSvc()

	users, err := svc.Directory(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Handle)

	_, err = svc.PublicProfile(context.Background(), "carol")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err := svc.PublicProfile(context.Background(), "BOB")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.ID)
}

func TestProfileService_SetRoleAndBan(t *testing.T) {
	svc, repo := newProfileSvc()

	u, err := svc.SetRole(context.Background(), admin, "bob", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = svc.SetRole(context.Background(), admin, "bob", "root")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.SetRole(context.Background(), admin, "ghost", domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err = svc.SetBanned(context.Background(), admin, "bob", true)
	require.NoError(t, err)
	assert.True(t, u.BannedFromPosting)
	assert.True(t, repo.byID["bob"].BannedFromPosting)

	_, caps, err := svc.Me(context.Background(), policy.ActorFromUser(u))
	require.NoError(t, err)
	assert.Equal(t, ports.Capabilities{}, caps, "a ban removes every authoring capability")
}

func TestProfileService_UpdateProfile_SocialLinks(t *testing.T) {
	svc, repo := newProfileSvc()
	actor := &policy.Actor{ID: "alice", Role: domain.RoleUser}

	_, err := svc.UpdateProfile(context.Background(), actor, ports.UpdateProfileInput{
		Social: domain.SocialLinks{GitHub: " octocat ", Discord: "alice#0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SocialLinks{GitHub: "octocat", Discord: "alice#0001"}, repo.byID["alice"].Social)
}

func TestProfileService_UpdateProfile_MarketingConsent(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "alice", Email: "alice@example.com", Role: domain.RoleUser})
	subs := newStubNewsletterRepo()
	svc := NewProfileService(users, policy.New(policy.DefaultConfig()), NewNewsletterService(subs, discardLogger), discardLogger)
	actor := &policy.Actor{ID: "alice", Role: domain.RoleUser}
	ctx := context.Background()

	assert.False(t, svc.AcceptsMarketing(ctx, actor))

	yes := true
	_, err := svc.UpdateProfile(ctx, actor, ports.UpdateProfileInput{AcceptedMarketing: &yes})
	require.NoError(t, err)
	assert.True(t, svc.AcceptsMarketing(ctx, actor))

	// Omitting the preference leaves it alone.
	_, err = svc.UpdateProfile(ctx, actor, ports.UpdateProfileInput{Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, svc.AcceptsMarketing(ctx, actor))

	no := false
	_, err = svc.UpdateProfile(ctx, actor, ports.UpdateProfileInput{AcceptedMarketing: &no})
	require.NoError(t, err)
	assert.False(t, svc.AcceptsMarketing(ctx, actor))
}

func TestProfileService_UpdateProfile_ConsentFailureIsNotFatal(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "alice", Email: "alice@example.com", Role: domain.RoleUser})
	subs := newStubNewsletterRepo()
	subs.err = errors.New("mongo down")
	svc := NewProfileService(users, policy.New(policy.DefaultConfig()), NewNewsletterService(subs, discardLogger), discardLogger)
	actor := &policy.Actor{ID: "alice", Role: domain.RoleUser}

	yes := true
	user, err := svc.UpdateProfile(context.Background(), actor, ports.UpdateProfileInput{Name: "Alice", AcceptedMarketing: &yes})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "Alice", users.byID["alice"].Name)
	assert.False(t, svc.AcceptsMarketing(context.Background(), actor))
}
