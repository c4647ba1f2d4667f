package score

import (
	"context"

	domain "aiclub/internal/domain/score"
)

// Store persists Score state.
type Store interface {
	// Upsert keeps exactly one score per (team, event); the last write wins.
	Upsert(ctx context.Context, s domain.Score) error
	// Get returns the score for (teamID, eventID), or found=false.
	Get(ctx context.Context, teamID, eventID string) (s domain.Score, found bool, err error)
}
