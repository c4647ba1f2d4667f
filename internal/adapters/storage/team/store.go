package team

import (
	"context"

	domain "aiclub/internal/domain/team"
)

// Summary is a team with its creator, roster and score for its event.
type Summary struct {
	domain.Team
	CreatorName string
	Score       *float64 // nil until scored
	MemberNames []string // roster order
}

// Store persists Team state.
type Store interface {
	// ListByEvent returns the event's teams, highest score first, unscored last.
	ListByEvent(ctx context.Context, eventID string) ([]Summary, error)
	// GetByID returns domain.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (domain.Team, error)
	// ListMembers returns the roster in position order.
	ListMembers(ctx context.Context, teamID string) ([]domain.Member, error)
	// CreateWithMembers inserts the team and every roster row atomically.
	CreateWithMembers(ctx context.Context, t domain.Team, members []domain.Member) error
	// Delete removes members, then scores, then the team.
	Delete(ctx context.Context, id string) error
}
