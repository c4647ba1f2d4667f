package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"aiclub/internal/domain/activity"
)

// ActivityStoreForOrchestrator defines the store interface needed by activity orchestrators.
type ActivityStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (activity.Activity, error)
	Create(ctx context.Context, a activity.Activity) error
	Update(ctx context.Context, a activity.Activity) error
	Delete(ctx context.Context, id string) error
}

// --- Create Activity ---

// CreateActivityInput carries input for the create activity orchestrator.
type CreateActivityInput struct {
	Title       string
	Description string
	Date        string
	Venue       string
	TotalSeats  int
	Status      string // defaults to open
	CreatedBy   string
}

// CreateActivityDeps holds dependencies for CreateActivity.
type CreateActivityDeps struct {
	ActivityStore ActivityStoreForOrchestrator
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreateActivity creates a bookable activity.
// PRE: caller is the super-admin
// POST: activity persisted with TotalSeats > 0
func ExecuteCreateActivity(ctx context.Context, input CreateActivityInput, deps CreateActivityDeps) (activity.Activity, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = activity.StatusOpen
	}
	a := activity.Activity{
		ID:          deps.GenerateID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        strings.TrimSpace(input.Date),
		Venue:       strings.TrimSpace(input.Venue),
		TotalSeats:  input.TotalSeats,
		Status:      status,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   deps.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return activity.Activity{}, err
	}
	if err := deps.ActivityStore.Create(ctx, a); err != nil {
		return activity.Activity{}, err
	}

	slog.Info("activity_event", "event", "activity_created", "activity_id", a.ID, "seats", a.TotalSeats)
	return a, nil
}

// --- Update Activity ---

// UpdateActivityInput carries a partial update; nil fields keep their stored value.
type UpdateActivityInput struct {
	ID          string
	Title       *string
	Description *string
	Date        *string
	Venue       *string
	TotalSeats  *int
	Status      *string
}

// UpdateActivityDeps holds dependencies for UpdateActivity.
type UpdateActivityDeps struct {
	ActivityStore ActivityStoreForOrchestrator
}

// ExecuteUpdateActivity applies a partial update.
// PRE: caller is the super-admin
// POST: stored activity equals the merged, valid activity
// INVARIANT: TotalSeats never drops below the current booking count (checked atomically by the store)
func ExecuteUpdateActivity(ctx context.Context, input UpdateActivityInput, deps UpdateActivityDeps) (activity.Activity, error) {
	a, err := deps.ActivityStore.GetByID(ctx, input.ID)
	if err != nil {
		return activity.Activity{}, err
	}
	if input.Title != nil {
		a.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		a.Description = *input.Description
	}
	if input.Date != nil {
		a.Date = strings.TrimSpace(*input.Date)
	}
	if input.Venue != nil {
		a.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.TotalSeats != nil {
		a.TotalSeats = *input.TotalSeats
	}
	if input.Status != nil {
		a.Status = strings.TrimSpace(*input.Status)
	}
	if err := a.Validate(); err != nil {
		return activity.Activity{}, err
	}
	if err := deps.ActivityStore.Update(ctx, a); err != nil {
		return activity.Activity{}, err
	}

	slog.Info("activity_event", "event", "activity_updated", "activity_id", a.ID)
	return a, nil
}

// --- Delete Activity ---

// DeleteActivityDeps holds dependencies for DeleteActivity.
type DeleteActivityDeps struct {
	ActivityStore ActivityStoreForOrchestrator
}

// ExecuteDeleteActivity removes an activity and its bookings.
// PRE: caller is the super-admin
// POST: no booking references the activity
func ExecuteDeleteActivity(ctx context.Context, id string, deps DeleteActivityDeps) error {
	if err := deps.ActivityStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("activity_event", "event", "activity_deleted", "activity_id", id)
	return nil
}
