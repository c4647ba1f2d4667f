package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"aiclub/internal/domain/score"
	"aiclub/internal/domain/team"
)

// TeamReader looks up a single team.
type TeamReader interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
}

// ScoreUpserter writes the single score row of a (team, event) pair.
type ScoreUpserter interface {
	Upsert(ctx context.Context, s score.Score) error
}

// AssignScoreInput carries input for the assign score orchestrator.
type AssignScoreInput struct {
	TeamID     string
	EventID    string
	Score      *float64 // nil when the client omitted it
	Note       string
	AssignedBy string
}

// AssignScoreDeps holds dependencies for AssignScore.
type AssignScoreDeps struct {
	TeamStore  TeamReader
	ScoreStore ScoreUpserter
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteAssignScore sets a team's score for an event; the last write wins.
// PRE: caller is an admin
// POST: exactly one score row exists for (TeamID, EventID)
func ExecuteAssignScore(ctx context.Context, input AssignScoreInput, deps AssignScoreDeps) (score.Score, error) {
	if input.Score == nil || !score.InRange(*input.Score) {
		return score.Score{}, score.ErrOutOfRange
	}
	if strings.TrimSpace(input.TeamID) == "" || strings.TrimSpace(input.EventID) == "" {
		return score.Score{}, score.ErrMissingRefs
	}

	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		return score.Score{}, err
	}
	if t.EventID != input.EventID {
		return score.Score{}, team.ErrNotRegisteredToEvent
	}

	s := score.Score{
		ID:         deps.GenerateID(),
		TeamID:     t.ID,
		EventID:    t.EventID,
		Value:      *input.Score,
		Note:       strings.TrimSpace(input.Note),
		AssignedBy: input.AssignedBy,
		AssignedAt: deps.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return score.Score{}, err
	}
	if err := deps.ScoreStore.Upsert(ctx, s); err != nil {
		return score.Score{}, err
	}

	slog.Info("score_event", "event", "score_assigned", "team_id", s.TeamID, "event_id", s.EventID, "score", s.Value, "assigned_by", s.AssignedBy)
	return s, nil
}
