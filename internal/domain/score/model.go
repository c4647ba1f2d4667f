package score

import (
	"math"
	"strings"
	"time"

	"aiclub/internal/domain/apperr"
)

// Score range, inclusive.
const (
	MinValue = 0.0
	MaxValue = 10.0
)

// MaxNoteLength bounds the judge's note.
const MaxNoteLength = 1000

// Domain errors
var (
	ErrOutOfRange   = apperr.Validation("Score must be 0-10")
	ErrMissingRefs  = apperr.Validation("Team and event are required")
	ErrNoteTooLong  = apperr.Validation("Note cannot exceed 1000 characters")
	ErrMissingActor = apperr.Validation("Assigning admin is required")
)

// Score is the single result of one team in one event.
// INVARIANT: at most one Score per (TeamID, EventID)
type Score struct {
	ID         string
	TeamID     string
	EventID    string
	Value      float64
	Note       string
	AssignedBy string
	AssignedAt time.Time
}

// Validate checks range and references.
// PRE: none
// POST: returns nil if the score can be persisted
func (s *Score) Validate() error {
	if strings.TrimSpace(s.TeamID) == "" || strings.TrimSpace(s.EventID) == "" {
		return ErrMissingRefs
	}
	if !InRange(s.Value) {
		return ErrOutOfRange
	}
	if len(s.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}
	if s.AssignedBy == "" {
		return ErrMissingActor
	}
	return nil
}

// InRange reports whether v is a finite value within [MinValue, MaxValue].
func InRange(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= MinValue && v <= MaxValue
}
