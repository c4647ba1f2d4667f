// Package leaderboard holds the read-only queries behind the standings views.
package leaderboard

import (
	"context"
	"time"
)

// EventRow is one team's standing within an event.
type EventRow struct {
	TeamID     string
	TeamName   string
	Score      *float64 // nil when unscored
	Note       string
	AssignedAt time.Time // zero when unscored
	Members    []string
}

// OverallRow is one scored (team, event) pair.
type OverallRow struct {
	TeamID     string
	TeamName   string
	EventID    string
	EventTitle string
	EventDate  string
	Score      float64
	Members    []string
}

// HistoryRow is one score a team received.
type HistoryRow struct {
	EventID    string
	EventTitle string
	EventDate  string
	TeamName   string
	Score      float64
	Note       string
	AssignedAt time.Time
}

// Store reads joined team/score/event data.
type Store interface {
	// EventStandings lists every team of the event, score descending, unscored last.
	EventStandings(ctx context.Context, eventID string) ([]EventRow, error)
	// Overall lists every scored (team, event) pair, score descending.
	Overall(ctx context.Context) ([]OverallRow, error)
	// TeamHistory lists a team's scores, most recently assigned first.
	TeamHistory(ctx context.Context, teamID string) ([]HistoryRow, error)
}
