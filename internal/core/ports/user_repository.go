package ports

import (
	"context"

	"github.com/inkwell/content-system/internal/core/domain"
)

// UserRepository persists accounts and profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByHandle matches the handle exactly. Visibility is the caller's concern.
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	// Update replaces the stored profile. Returns domain.ErrHandleTaken on a
	// handle clash and domain.ErrUserNotFound when id does not exist.
	Update(ctx context.Context, user *domain.User) error
	// ListDiscoverable returns public users that have chosen a handle,
	// ordered by handle.
	ListDiscoverable(ctx context.Context, limit int) ([]*domain.User, error)
}
