package projections

import (
	"context"
	"strings"
	"time"

	"aiclub/internal/application/mdutil"
)

// EventView is one row of the event listing.
type EventView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	Date            string    `json:"date"`
	Venue           string    `json:"venue"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatorName     string    `json:"creator_name"`
	TeamCount       int       `json:"team_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// TeamView is one row of an event's team listing.
type TeamView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EventID     string    `json:"event_id"`
	CreatedBy   string    `json:"created_by"`
	CreatorName string    `json:"creator_name"`
	CreatedAt   time.Time `json:"created_at"`
	Score       *float64  `json:"score"`
	MemberNames string    `json:"member_names"` // roster order, '|' separated
}

// EventsDeps holds dependencies for the event and team listings.
type EventsDeps struct {
	EventStore EventStore
	TeamStore  TeamStore
}

// QueryListEvents returns every event, newest date first, with its description rendered.
func QueryListEvents(ctx context.Context, deps EventsDeps) ([]EventView, error) {
	events, err := deps.EventStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			ID:              e.ID,
			Title:           e.Title,
			Description:     e.Description,
			DescriptionHTML: mdutil.Render(e.Description),
			Date:            e.Date,
			Venue:           e.Venue,
			Status:          e.Status,
			CreatedBy:       e.CreatedBy,
			CreatorName:     e.CreatorName,
			TeamCount:       e.TeamCount,
			CreatedAt:       e.CreatedAt,
		})
	}
	return out, nil
}

// QueryListTeams returns the teams registered for an event.
// PRE: none
// POST: event.ErrNotFound for an unknown event; otherwise highest score first, unscored last
func QueryListTeams(ctx context.Context, eventID string, deps EventsDeps) ([]TeamView, error) {
	if _, err := deps.EventStore.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	teams, err := deps.TeamStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]TeamView, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamView{
			ID:          t.ID,
			Name:        t.Name,
			EventID:     t.EventID,
			CreatedBy:   t.CreatedBy,
			CreatorName: t.CreatorName,
			CreatedAt:   t.CreatedAt,
			Score:       t.Score,
			MemberNames: strings.Join(t.MemberNames, "|"),
		})
	}
	return out, nil
}
