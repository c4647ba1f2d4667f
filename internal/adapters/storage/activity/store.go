package activity

import (
	"context"

	domain "aiclub/internal/domain/activity"
)

// Summary is an activity with its live seat usage for one viewer.
type Summary struct {
	domain.Activity
	BookedCount int
	UserBooked  bool
}

// Store persists Activity and Booking state.
type Store interface {
	// List returns every activity by date ascending, flagged for userID.
	List(ctx context.Context, userID string) ([]Summary, error)
	// GetByID returns domain.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (domain.Activity, error)
	Create(ctx context.Context, a domain.Activity) error
	// Update overwrites editable fields; domain.ErrSeatsBelowBookings if the
	// new seat count is under the current booking count.
	Update(ctx context.Context, a domain.Activity) error
	// Delete removes the activity and its bookings.
	Delete(ctx context.Context, id string) error

	// Book takes one seat atomically, or returns the classified reason it could not.
	Book(ctx context.Context, b domain.Booking) error
	// CancelBooking releases the user's seat; a missing booking is not an error.
	CancelBooking(ctx context.Context, activityID, userID string) error
	// ListBookings returns bookings in the order they were taken.
	ListBookings(ctx context.Context, activityID string) ([]domain.Booking, error)
	CountBookings(ctx context.Context, activityID string) (int, error)
}
