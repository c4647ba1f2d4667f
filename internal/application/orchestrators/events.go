package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"aiclub/internal/domain/event"
)

// EventStoreForOrchestrator defines the store interface needed by event orchestrators.
type EventStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Create(ctx context.Context, e event.Event) error
	Update(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
}

// --- Create Event ---

// CreateEventInput carries input for the create event orchestrator.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string
	Venue       string
	Status      string // defaults to upcoming
	CreatedBy   string
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent creates an event.
// PRE: caller is an admin
// POST: event persisted with a generated ID
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (event.Event, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = event.StatusUpcoming
	}
	e := event.Event{
		ID:          deps.GenerateID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        strings.TrimSpace(input.Date),
		Venue:       strings.TrimSpace(input.Venue),
		Status:      status,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   deps.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Create(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "created_by", e.CreatedBy)
	return e, nil
}

// --- Update Event ---

// UpdateEventInput carries a partial update; nil fields keep their stored value.
type UpdateEventInput struct {
	ID          string
	Title       *string
	Description *string
	Date        *string
	Venue       *string
	Status      *string
	UpdatedBy   string
}

// UpdateEventDeps holds dependencies for UpdateEvent.
type UpdateEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteUpdateEvent applies a partial update and re-validates the result.
// PRE: caller is an admin
// POST: stored event equals the merged, valid event
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps UpdateEventDeps) (event.Event, error) {
	e, err := deps.EventStore.GetByID(ctx, input.ID)
	if err != nil {
		return event.Event{}, err
	}
	if input.Title != nil {
		e.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.Date != nil {
		e.Date = strings.TrimSpace(*input.Date)
	}
	if input.Venue != nil {
		e.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.Status != nil {
		e.Status = strings.TrimSpace(*input.Status)
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Update(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_updated", "event_id", e.ID, "updated_by", input.UpdatedBy)
	return e, nil
}

// --- Delete Event ---

// DeleteEventInput carries input for the delete event orchestrator.
type DeleteEventInput struct {
	ID        string
	DeletedBy string
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteDeleteEvent removes an event together with its teams, rosters and scores.
// PRE: caller is an admin
// POST: no rows reference the event
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps DeleteEventDeps) error {
	if err := deps.EventStore.Delete(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("event_event", "event", "event_deleted", "event_id", input.ID, "deleted_by", input.DeletedBy)
	return nil
}
