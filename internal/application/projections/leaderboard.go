package projections

import (
	"context"
	"strings"
	"time"
)

// membersSeparator joins roster names in leaderboard rows.
const membersSeparator = ", "

// StandingView is one team's line on an event leaderboard.
type StandingView struct {
	Rank       int        `json:"rank"` // 0 when unscored
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Score      *float64   `json:"score"`
	Note       string     `json:"note"`
	AssignedAt *time.Time `json:"assigned_at"` // null when unscored
	Members    string     `json:"members"`
}

// OverallView is one scored (team, event) line on the overall leaderboard.
type OverallView struct {
	Rank       int     `json:"rank"`
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	EventID    string  `json:"event_id"`
	EventTitle string  `json:"event_title"`
	EventDate  string  `json:"event_date"`
	Score      float64 `json:"score"`
	Members    string  `json:"members"`
}

// HistoryView is one score a team received.
type HistoryView struct {
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	EventDate  string    `json:"event_date"`
	TeamName   string    `json:"team_name"`
	Score      float64   `json:"score"`
	Note       string    `json:"note"`
	AssignedAt time.Time `json:"assigned_at"`
}

// LeaderboardDeps holds dependencies for the leaderboard queries.
type LeaderboardDeps struct {
	LeaderboardStore LeaderboardStore
}

// competitionRanker assigns 1,1,3 style ranks to scores arriving in descending order.
type competitionRanker struct {
	seen int
	last float64
	rank int
}

func (r *competitionRanker) next(score float64) int {
	r.seen++
	if r.seen == 1 || score != r.last {
		r.rank = r.seen
		r.last = score
	}
	return r.rank
}

// QueryEventLeaderboard ranks every team of an event.
// PRE: store returns rows score descending, unscored last
// POST: tied scores share a rank; unscored teams have rank 0
func QueryEventLeaderboard(ctx context.Context, eventID string, deps LeaderboardDeps) ([]StandingView, error) {
	rows, err := deps.LeaderboardStore.EventStandings(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var ranker competitionRanker
	out := make([]StandingView, 0, len(rows))
	for _, row := range rows {
		v := StandingView{
			ID:      row.TeamID,
			Name:    row.TeamName,
			Score:   row.Score,
			Members: strings.Join(row.Members, membersSeparator),
		}
		if row.Score != nil {
			v.Rank = ranker.next(*row.Score)
			v.Note = row.Note
			at := row.AssignedAt
			v.AssignedAt = &at
		}
		out = append(out, v)
	}
	return out, nil
}

// QueryOverallLeaderboard ranks every scored (team, event) pair.
func QueryOverallLeaderboard(ctx context.Context, deps LeaderboardDeps) ([]OverallView, error) {
	rows, err := deps.LeaderboardStore.Overall(ctx)
	if err != nil {
		return nil, err
	}
	var ranker competitionRanker
	out := make([]OverallView, 0, len(rows))
	for _, row := range rows {
		out = append(out, OverallView{
			Rank:       ranker.next(row.Score),
			ID:         row.TeamID,
			Name:       row.TeamName,
			EventID:    row.EventID,
			EventTitle: row.EventTitle,
			EventDate:  row.EventDate,
			Score:      row.Score,
			Members:    strings.Join(row.Members, membersSeparator),
		})
	}
	return out, nil
}

// QueryTeamHistory lists a team's scores, most recent first.
func QueryTeamHistory(ctx context.Context, teamID string, deps LeaderboardDeps) ([]HistoryView, error) {
	rows, err := deps.LeaderboardStore.TeamHistory(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryView, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryView(row))
	}
	return out, nil
}
