package event

import (
	"strings"
	"time"

	"aiclub/internal/domain/apperr"
	"aiclub/internal/domain/calendar"
)

// Status constants for the event lifecycle.
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ValidStatuses lists every allowed event status.
var ValidStatuses = []string{StatusUpcoming, StatusActive, StatusCompleted}

// Domain errors
var (
	ErrTitleAndDateRequired = apperr.Validation("Title and date required")
	ErrInvalidDate          = apperr.Validation("Date must be YYYY-MM-DD or an ISO 8601 timestamp")
	ErrInvalidStatus        = apperr.Validation("Status must be one of: upcoming, active, completed")
	ErrTitleTooLong         = apperr.Validation("Title cannot exceed 200 characters")
	ErrDescriptionTooLong   = apperr.Validation("Description cannot exceed 5000 characters")
	ErrVenueTooLong         = apperr.Validation("Venue cannot exceed 200 characters")
	ErrNotFound             = apperr.NotFound("Event not found")
)

// Event is a scored club competition that teams register for.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        string // as supplied by the client, validated with calendar.ParseDate
	Venue       string
	Status      string
	CreatedBy   string // user ID
	CreatedAt   time.Time
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, the first violated rule otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Date) == "" {
		return ErrTitleAndDateRequired
	}
	if len(e.Title) > calendar.MaxTitleLength {
		return ErrTitleTooLong
	}
	if !calendar.IsValidDate(e.Date) {
		return ErrInvalidDate
	}
	if len(e.Description) > calendar.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(e.Venue) > calendar.MaxVenueLength {
		return ErrVenueTooLong
	}
	if !IsValidStatus(e.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsValidStatus reports whether s is a known event status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
