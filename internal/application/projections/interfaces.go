package projections

import (
	"context"

	activityStore "aiclub/internal/adapters/storage/activity"
	eventStore "aiclub/internal/adapters/storage/event"
	"aiclub/internal/adapters/storage/leaderboard"
	teamStore "aiclub/internal/adapters/storage/team"
	"aiclub/internal/domain/account"
	"aiclub/internal/domain/activity"
	"aiclub/internal/domain/event"
)

// AccountStore is the read side of account storage.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (account.User, error)
	List(ctx context.Context) ([]account.User, error)
}

// EventStore is the read side of event storage.
type EventStore interface {
	List(ctx context.Context) ([]eventStore.Summary, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// TeamStore is the read side of team storage.
type TeamStore interface {
	ListByEvent(ctx context.Context, eventID string) ([]teamStore.Summary, error)
}

// LeaderboardStore is the standings query interface.
type LeaderboardStore interface {
	EventStandings(ctx context.Context, eventID string) ([]leaderboard.EventRow, error)
	Overall(ctx context.Context) ([]leaderboard.OverallRow, error)
	TeamHistory(ctx context.Context, teamID string) ([]leaderboard.HistoryRow, error)
}

// ActivityStore is the read side of activity storage.
type ActivityStore interface {
	List(ctx context.Context, userID string) ([]activityStore.Summary, error)
	GetByID(ctx context.Context, id string) (activity.Activity, error)
	ListBookings(ctx context.Context, activityID string) ([]activity.Booking, error)
}
