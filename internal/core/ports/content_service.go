package ports

import (
	"context"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
)

// CreateContentInput carries a new post or page.
type CreateContentInput struct {
	Title    string
	Content  string
	Keywords []string
	// AsOwnerEntity attributes a post to the site. Ignored for pages.
	AsOwnerEntity  bool
	IdempotencyKey string
}

// UpdateContentInput replaces the editable fields of a post or page.
type UpdateContentInput struct {
	Slug      string
	Title     string
	Content   string
	Keywords  []string
	Published bool
}

// CreateResult wraps a created item. AlreadyExisted is set when the
// idempotency key matched an earlier create.
type CreateResult[T any] struct {
	Item           T
	AlreadyExisted bool
}

// BlogService is the use-case surface for blog posts. Every method takes
// the requesting actor (nil for anonymous) and enforces the policy itself.
type BlogService interface {
	ListPublished(ctx context.Context, limit int) ([]*domain.BlogPost, error)
	ListByHandle(ctx context.Context, handle string, limit int) ([]*domain.BlogPost, error)
	ListMine(ctx context.Context, actor *policy.Actor) ([]*domain.BlogPost, error)
	Get(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error)
	Create(ctx context.Context, actor *policy.Actor, input CreateContentInput) (*CreateResult[*domain.BlogPost], error)
	Update(ctx context.Context, actor *policy.Actor, input UpdateContentInput) (*domain.BlogPost, error)
	TogglePublished(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error)
	Delete(ctx context.Context, actor *policy.Actor, slug string) error
}

// PageService is the use-case surface for static pages.
type PageService interface {
	ListPublished(ctx context.Context, limit int) ([]*domain.Page, error)
	Get(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error)
	Create(ctx context.Context, actor *policy.Actor, input CreateContentInput) (*CreateResult[*domain.Page], error)
	Update(ctx context.Context, actor *policy.Actor, input UpdateContentInput) (*domain.Page, error)
	TogglePublished(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error)
	Delete(ctx context.Context, actor *policy.Actor, slug string) error
}
