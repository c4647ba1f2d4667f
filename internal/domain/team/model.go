package team

import (
	"strings"
	"time"

	"aiclub/internal/domain/apperr"
)

// Roster size bounds, creator included.
const (
	MinMembers = 2
	MaxMembers = 4
)

// MaxNameLength bounds team and member names.
const MaxNameLength = 100

// Domain errors
var (
	ErrNameRequired         = apperr.Validation("Team name required")
	ErrNameTooLong          = apperr.Validation("Team name cannot exceed 100 characters")
	ErrMemberNameTooLong    = apperr.Validation("Member names cannot exceed 100 characters")
	ErrTooFewMembers        = apperr.Validation("Minimum 2 members required")
	ErrTooManyMembers       = apperr.Validation("Maximum 4 members allowed")
	ErrAdminCannotRegister  = apperr.Forbidden("Admins cannot register teams")
	ErrNotAllowed           = apperr.Forbidden("Not allowed")
	ErrNotFound             = apperr.NotFound("Team not found")
	ErrNotRegisteredToEvent = apperr.Validation("Team is not registered for this event")
)

// Team is a group of members competing in one event.
type Team struct {
	ID        string
	Name      string
	EventID   string
	CreatedBy string // user ID of the member who registered the team
	CreatedAt time.Time
}

// Member is one roster line. UserID is empty for free-text teammates
// who are not necessarily registered accounts.
type Member struct {
	ID       string
	TeamID   string
	UserID   string
	Name     string
	Position int // 0 is the creator
}

// Validate checks the team's own fields; roster size is checked by BuildRoster.
func (t *Team) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// CanDelete reports whether a caller may delete the team: its creator or any admin.
func (t *Team) CanDelete(userID string, isAdmin bool) bool {
	return isAdmin || (userID != "" && t.CreatedBy == userID)
}

// ExtraMemberNames trims raw teammate names and drops blanks.
func ExtraMemberNames(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// ValidateSize enforces MinMembers <= total <= MaxMembers.
func ValidateSize(total int) error {
	if total < MinMembers {
		return ErrTooFewMembers
	}
	if total > MaxMembers {
		return ErrTooManyMembers
	}
	return nil
}

// BuildRoster returns the member rows for a new team: the creator first,
// then each non-blank extra name. newID supplies row IDs.
// PRE: t.ID and t.CreatedBy are set
// POST: returns MinMembers..MaxMembers rows, or a validation error and no rows
func BuildRoster(t Team, creatorName string, extraNames []string, newID func() string) ([]Member, error) {
	extras := ExtraMemberNames(extraNames)
	if err := ValidateSize(1 + len(extras)); err != nil {
		return nil, err
	}
	roster := make([]Member, 0, 1+len(extras))
	roster = append(roster, Member{
		ID:       newID(),
		TeamID:   t.ID,
		UserID:   t.CreatedBy,
		Name:     strings.TrimSpace(creatorName),
		Position: 0,
	})
	for i, name := range extras {
		if len(name) > MaxNameLength {
			return nil, ErrMemberNameTooLong
		}
		roster = append(roster, Member{
			ID:       newID(),
			TeamID:   t.ID,
			Name:     name,
			Position: i + 1,
		})
	}
	return roster, nil
}
