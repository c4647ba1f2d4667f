package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aiclub/internal/adapters/storage"
	domain "aiclub/internal/domain/event"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every event with its creator name and team count.
// POST: ordered by date descending, then creation time descending
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.title, e.description, e.date, e.venue, e.status, e.created_by, e.created_at,
		       COALESCE(a.name, ''),
		       (SELECT COUNT(*) FROM team t WHERE t.event_id = e.id)
		FROM event e
		LEFT JOIN account a ON a.id = e.created_by
		ORDER BY e.date DESC, e.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		err := rows.Scan(&sum.ID, &sum.Title, &sum.Description, &sum.Date, &sum.Venue, &sum.Status,
			&sum.CreatedBy, &createdAt, &sum.CreatorName, &sum.TeamCount)
		if err != nil {
			return nil, err
		}
		sum.CreatedAt, _ = storage.ParseTime(createdAt)
		results = append(results, sum)
	}
	return results, rows.Err()
}

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	var e domain.Event
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, date, venue, status, created_by, created_at FROM event WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Venue, &e.Status, &e.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	e.CreatedAt, _ = storage.ParseTime(createdAt)
	return e, nil
}

// Create inserts a new Event.
// PRE: e has been validated
func (s *SQLiteStore) Create(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, title, description, date, venue, status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Date, e.Venue, e.Status, e.CreatedBy, storage.FormatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Update overwrites title, description, date, venue and status.
// PRE: e has been validated
// POST: Row updated, or domain.ErrNotFound
func (s *SQLiteStore) Update(ctx context.Context, e domain.Event) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE event SET title = ?, description = ?, date = ?, venue = ?, status = ? WHERE id = ?`,
		e.Title, e.Description, e.Date, e.Venue, e.Status, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the event and everything registered to it in one transaction.
// POST: no team, team_member or score row references the event; domain.ErrNotFound if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete event: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM team_member WHERE team_id IN (SELECT id FROM team WHERE event_id = ?)`,
		`DELETE FROM score WHERE event_id = ? OR team_id IN (SELECT id FROM team WHERE event_id = ?)`,
		`DELETE FROM team WHERE event_id = ?`,
	}
	if _, err := tx.ExecContext(ctx, stmts[0], id); err != nil {
		return fmt.Errorf("delete event members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stmts[1], id, id); err != nil {
		return fmt.Errorf("delete event scores: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stmts[2], id); err != nil {
		return fmt.Errorf("delete event teams: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
