package event

import (
	"context"

	domain "aiclub/internal/domain/event"
)

// Summary is an event joined with the data the listing needs.
type Summary struct {
	domain.Event
	CreatorName string
	TeamCount   int
}

// Store persists Event state.
type Store interface {
	// List returns every event, newest date first.
	List(ctx context.Context) ([]Summary, error)
	// GetByID returns domain.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Create(ctx context.Context, e domain.Event) error
	// Update overwrites the editable fields; domain.ErrNotFound when absent.
	Update(ctx context.Context, e domain.Event) error
	// Delete removes the event with its teams, their rosters and scores.
	Delete(ctx context.Context, id string) error
}
