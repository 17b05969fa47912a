package ports

import (
	"context"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
)

// UpdateProfileInput replaces the user-editable profile fields.
type UpdateProfileInput struct {
	Name     string
	Handle   string
	Bio      string
	Location string
	Website  string
	Public   bool
	Social   domain.SocialLinks
	// AcceptedMarketing updates the newsletter consent of the account's
	// email when set. nil leaves it unchanged.
	AcceptedMarketing *bool
}

// Capabilities summarises what the actor may do. It drives navigation only;
// every write re-checks the policy.
type Capabilities struct {
	CanAuthorPosts         bool `json:"can_author_posts"`
	CanAuthorAsOwnerEntity bool `json:"can_author_as_owner_entity"`
	CanAuthorPages         bool `json:"can_author_pages"`
}

type ProfileService interface {
	Me(ctx context.Context, actor *policy.Actor) (*domain.User, Capabilities, error)
	// AcceptsMarketing reports whether the actor's email is an active
	// newsletter subscriber. Lookup failures read as false.
	AcceptsMarketing(ctx context.Context, actor *policy.Actor) bool
	UpdateProfile(ctx context.Context, actor *policy.Actor, input UpdateProfileInput) (*domain.User, error)
	Directory(ctx context.Context, limit int) ([]*domain.User, error)
	// PublicProfile returns the user behind handle, or domain.ErrUserNotFound
	// when the profile is private.
	PublicProfile(ctx context.Context, handle string) (*domain.User, error)
}

// AdminService changes roles and bans. Callers must already have checked
// that the actor is an administrator.
type AdminService interface {
	SetRole(ctx context.Context, actor *policy.Actor, userID string, role domain.Role) (*domain.User, error)
	SetBanned(ctx context.Context, actor *policy.Actor, userID string, banned bool) (*domain.User, error)
}
