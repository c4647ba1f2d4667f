package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aiclub/internal/adapters/storage"
)

const memberSep = "\x1f"

const membersExpr = `COALESCE((SELECT group_concat(m.member_name, ? ORDER BY m.position)
	FROM team_member m WHERE m.team_id = t.id), '')`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new leaderboard store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// EventStandings returns all teams of eventID left-joined to their score.
func (s *SQLiteStore) EventStandings(ctx context.Context, eventID string) ([]EventRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, s.score, s.note, s.assigned_at, `+membersExpr+`
		FROM team t
		LEFT JOIN score s ON s.team_id = t.id AND s.event_id = t.event_id
		WHERE t.event_id = ?
		ORDER BY s.score IS NULL, s.score DESC, t.created_at, t.rowid`, memberSep, eventID)
	if err != nil {
		return nil, fmt.Errorf("event standings: %w", err)
	}
	defer rows.Close()

	var results []EventRow
	for rows.Next() {
		var r EventRow
		var score sql.NullFloat64
		var note, assignedAt sql.NullString
		var members string
		if err := rows.Scan(&r.TeamID, &r.TeamName, &score, &note, &assignedAt, &members); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.Float64
			r.Score = &v
			r.Note = note.String
			r.AssignedAt, _ = storage.ParseTime(assignedAt.String)
		}
		r.Members = splitMembers(members)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Overall returns every scored (team, event) pair.
func (s *SQLiteStore) Overall(ctx context.Context) ([]OverallRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, e.id, e.title, e.date, s.score, `+membersExpr+`
		FROM score s
		JOIN team t ON t.id = s.team_id
		JOIN event e ON e.id = s.event_id
		ORDER BY s.score DESC, e.date DESC, t.name`, memberSep)
	if err != nil {
		return nil, fmt.Errorf("overall standings: %w", err)
	}
	defer rows.Close()

	var results []OverallRow
	for rows.Next() {
		var r OverallRow
		var members string
		if err := rows.Scan(&r.TeamID, &r.TeamName, &r.EventID, &r.EventTitle, &r.EventDate, &r.Score, &members); err != nil {
			return nil, err
		}
		r.Members = splitMembers(members)
		results = append(results, r)
	}
	return results, rows.Err()
}

// TeamHistory returns every score teamID has received.
func (s *SQLiteStore) TeamHistory(ctx context.Context, teamID string) ([]HistoryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.title, e.date, t.name, s.score, s.note, s.assigned_at
		FROM score s
		JOIN team t ON t.id = s.team_id
		JOIN event e ON e.id = s.event_id
		WHERE s.team_id = ?
		ORDER BY s.assigned_at DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("team history: %w", err)
	}
	defer rows.Close()

	var results []HistoryRow
	for rows.Next() {
		var r HistoryRow
		var assignedAt string
		if err := rows.Scan(&r.EventID, &r.EventTitle, &r.EventDate, &r.TeamName, &r.Score, &r.Note, &assignedAt); err != nil {
			return nil, err
		}
		r.AssignedAt, _ = storage.ParseTime(assignedAt)
		results = append(results, r)
	}
	return results, rows.Err()
}

func splitMembers(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, memberSep)
}
