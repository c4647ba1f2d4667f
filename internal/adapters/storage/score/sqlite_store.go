package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aiclub/internal/adapters/storage"
	domain "aiclub/internal/domain/score"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new score store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Upsert writes a score in a single statement.
// PRE: s has been validated
// POST: one row for (TeamID, EventID) holding s's value, note, assigner and time.
// The row keeps its original ID on update.
func (s *SQLiteStore) Upsert(ctx context.Context, sc domain.Score) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score (id, team_id, event_id, score, note, assigned_by, assigned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(team_id, event_id) DO UPDATE SET
		   score = excluded.score,
		   note = excluded.note,
		   assigned_by = excluded.assigned_by,
		   assigned_at = excluded.assigned_at`,
		sc.ID, sc.TeamID, sc.EventID, sc.Value, sc.Note, sc.AssignedBy, storage.FormatTime(sc.AssignedAt))
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// Get retrieves the score a team holds for an event.
func (s *SQLiteStore) Get(ctx context.Context, teamID, eventID string) (domain.Score, bool, error) {
	var sc domain.Score
	var assignedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, team_id, event_id, score, note, assigned_by, assigned_at
		 FROM score WHERE team_id = ? AND event_id = ?`, teamID, eventID).
		Scan(&sc.ID, &sc.TeamID, &sc.EventID, &sc.Value, &sc.Note, &sc.AssignedBy, &assignedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Score{}, false, nil
	}
	if err != nil {
		return domain.Score{}, false, fmt.Errorf("get score: %w", err)
	}
	sc.AssignedAt, _ = storage.ParseTime(assignedAt)
	return sc, true, nil
}
