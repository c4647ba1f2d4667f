package account

import (
	"context"

	domain "aiclub/internal/domain/account"
)

// Store persists User state.
type Store interface {
	// GetByID returns domain.ErrNotFound when no user has id.
	GetByID(ctx context.Context, id string) (domain.User, error)
	// GetByEmail looks up a normalized email; domain.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	// Create inserts a new user; domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u domain.User) error
	// UpdateRole sets the stored role; domain.ErrNotFound when absent.
	UpdateRole(ctx context.Context, id, role string) error
	// List returns every user ordered by name.
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}
