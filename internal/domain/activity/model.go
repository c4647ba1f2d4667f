package activity

import (
	"strings"
	"time"

	"aiclub/internal/domain/apperr"
	"aiclub/internal/domain/calendar"
)

// Status constants for the activity lifecycle.
const (
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusCompleted = "completed"
)

// ValidStatuses lists every allowed activity status.
var ValidStatuses = []string{StatusOpen, StatusClosed, StatusCompleted}

// Domain errors
var (
	ErrTitleAndDateRequired = apperr.Validation("Title and date required")
	ErrInvalidDate          = apperr.Validation("Date must be YYYY-MM-DD or an ISO 8601 timestamp")
	ErrInvalidSeats         = apperr.Validation("Total seats must be greater than 0")
	ErrSeatsBelowBookings   = apperr.Validation("Total seats cannot be less than current bookings")
	ErrInvalidStatus        = apperr.Validation("Status must be one of: open, closed, completed")
	ErrTitleTooLong         = apperr.Validation("Title cannot exceed 200 characters")
	ErrDescriptionTooLong   = apperr.Validation("Description cannot exceed 5000 characters")
	ErrVenueTooLong         = apperr.Validation("Venue cannot exceed 200 characters")
	ErrNotFound             = apperr.NotFound("Activity not found")
	ErrNotOpen              = apperr.State("Activity is not open for booking")
	ErrNoSeats              = apperr.Capacity("No seats available")
	ErrAlreadyBooked        = apperr.Conflict("Already booked")
)

// Activity is a sign-up sheet with a fixed number of seats.
type Activity struct {
	ID          string
	Title       string
	Description string
	Date        string
	Venue       string
	TotalSeats  int
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
}

// Booking is one seat held by one user.
// INVARIANT: unique per (ActivityID, UserID)
type Booking struct {
	ID         string
	ActivityID string
	UserID     string
	UserName   string
	UserEmail  string
	BookedAt   time.Time
}

// Validate checks the activity's invariants.
// PRE: none
// POST: returns nil if valid, the first violated rule otherwise
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Date) == "" {
		return ErrTitleAndDateRequired
	}
	if len(a.Title) > calendar.MaxTitleLength {
		return ErrTitleTooLong
	}
	if !calendar.IsValidDate(a.Date) {
		return ErrInvalidDate
	}
	if a.TotalSeats <= 0 {
		return ErrInvalidSeats
	}
	if len(a.Description) > calendar.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(a.Venue) > calendar.MaxVenueLength {
		return ErrVenueTooLong
	}
	if !IsValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// CheckBookable decides whether one more booking may be taken, in priority order:
// status, then capacity, then per-user uniqueness.
// INVARIANT: Activity fields are not mutated
func (a *Activity) CheckBookable(booked int, alreadyBooked bool) error {
	if a.Status != StatusOpen {
		return ErrNotOpen
	}
	if booked >= a.TotalSeats {
		return ErrNoSeats
	}
	if alreadyBooked {
		return ErrAlreadyBooked
	}
	return nil
}

// SeatsLeft returns the remaining capacity, never negative.
func (a *Activity) SeatsLeft(booked int) int {
	if left := a.TotalSeats - booked; left > 0 {
		return left
	}
	return 0
}

// IsValidStatus reports whether s is a known activity status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
