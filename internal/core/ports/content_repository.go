package ports

import (
	"context"

	"github.com/inkwell/content-system/internal/core/domain"
)

// ListFilter narrows a content listing. Zero values mean "no filter".
type ListFilter struct {
	OwnerID       string
	PublishedOnly bool
	// ExcludeOwnerEntity drops site-attributed posts; used when listing a
	// user's personal posts.
	ExcludeOwnerEntity bool
	Limit              int
}

// PostRepository persists blog posts. Slugs are unique.
type PostRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	Update(ctx context.Context, post *domain.BlogPost) error
	Delete(ctx context.Context, slug string) error
	// List returns posts newest first.
	List(ctx context.Context, filter ListFilter) ([]*domain.BlogPost, error)
}

// PageRepository persists static pages. Slugs are unique.
type PageRepository interface {
	Create(ctx context.Context, page *domain.Page) error
	FindBySlug(ctx context.Context, slug string) (*domain.Page, error)
	Update(ctx context.Context, page *domain.Page) error
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Page, error)
}

// EventRepository stores the content audit log.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ContentEvent) error
}

// EventRecorder accepts content events for asynchronous persistence.
// Record never blocks on storage and never fails the caller.
type EventRecorder interface {
	Record(event domain.ContentEvent)
}

// IdempotencyStore remembers which slug a client-supplied idempotency key
// produced, so a retried create returns the original item.
type IdempotencyStore interface {
	// Lookup returns the slug stored for key, or "" when none is stored.
	Lookup(ctx context.Context, scope, actorID, key string) (string, error)
	Remember(ctx context.Context, scope, actorID, key, slug string) error
}
