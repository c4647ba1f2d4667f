package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"aiclub/internal/application/mdutil"
	"aiclub/internal/domain/activity"
	"aiclub/internal/domain/outbox"
)

// BookingStoreForOrchestrator defines the store interface needed by the booking orchestrators.
type BookingStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (activity.Activity, error)
	Book(ctx context.Context, b activity.Booking) error
	CancelBooking(ctx context.Context, activityID, userID string) error
}

// OutboxWriter persists an outbox entry.
type OutboxWriter interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// --- Book Seat ---

// BookSeatInput carries input for the book seat orchestrator.
type BookSeatInput struct {
	ActivityID string
	UserID     string
	UserName   string
	UserEmail  string
}

// BookSeatDeps holds dependencies for BookSeat.
type BookSeatDeps struct {
	ActivityStore BookingStoreForOrchestrator
	Outbox        OutboxWriter // optional; nil skips the confirmation email
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteBookSeat takes one seat for the caller, first come first served.
// PRE: caller is authenticated
// POST: the caller holds exactly one booking; a confirmation email is queued
// INVARIANT: bookings never exceed TotalSeats
func ExecuteBookSeat(ctx context.Context, input BookSeatInput, deps BookSeatDeps) error {
	a, err := deps.ActivityStore.GetByID(ctx, input.ActivityID)
	if err != nil {
		return err
	}

	b := activity.Booking{
		ID:         deps.GenerateID(),
		ActivityID: a.ID,
		UserID:     input.UserID,
		UserName:   input.UserName,
		UserEmail:  input.UserEmail,
		BookedAt:   deps.Now().UTC(),
	}
	if err := deps.ActivityStore.Book(ctx, b); err != nil {
		slog.Info("booking_event", "event", "booking_refused", "activity_id", a.ID, "user_id", input.UserID, "reason", err.Error())
		return err
	}
	slog.Info("booking_event", "event", "seat_booked", "activity_id", a.ID, "user_id", input.UserID, "booking_id", b.ID)

	// The seat is taken either way; a failed enqueue only loses the email.
	if deps.Outbox != nil && input.UserEmail != "" {
		if err := enqueueBookingConfirmation(ctx, a, b, deps); err != nil {
			slog.Error("outbox_enqueue_failed", "activity_id", a.ID, "user_id", input.UserID, "error", err.Error())
		}
	}
	return nil
}

// enqueueBookingConfirmation writes a pending email entry for the worker to deliver.
func enqueueBookingConfirmation(ctx context.Context, a activity.Activity, b activity.Booking, deps BookSeatDeps) error {
	md := fmt.Sprintf("Hi %s,\n\nYour seat for **%s** on %s is confirmed.", b.UserName, a.Title, a.Date)
	if a.Venue != "" {
		md += fmt.Sprintf("\nVenue: %s", a.Venue)
	}
	if a.Description != "" {
		md += "\n\n" + a.Description
	}

	payload, err := json.Marshal(outbox.EmailPayload{
		To:      []string{b.UserEmail},
		Subject: "Booking confirmed: " + a.Title,
		HTML:    mdutil.Render(md),
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	e := outbox.Entry{
		ID:         deps.GenerateID(),
		ActionType: outbox.ActionTypeEmail,
		Payload:    string(payload),
		CreatedAt:  deps.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return deps.Outbox.Save(ctx, e)
}

// --- Cancel Booking ---

// CancelBookingDeps holds dependencies for CancelBooking.
type CancelBookingDeps struct {
	ActivityStore BookingStoreForOrchestrator
}

// ExecuteCancelBooking releases the caller's seat; cancelling with no booking succeeds.
// PRE: caller is authenticated
// POST: the caller holds no booking for the activity
func ExecuteCancelBooking(ctx context.Context, activityID, userID string, deps CancelBookingDeps) error {
	if err := deps.ActivityStore.CancelBooking(ctx, activityID, userID); err != nil {
		return err
	}
	slog.Info("booking_event", "event", "booking_cancelled", "activity_id", activityID, "user_id", userID)
	return nil
}
