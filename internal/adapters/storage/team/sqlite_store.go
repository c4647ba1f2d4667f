package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aiclub/internal/adapters/storage"
	domain "aiclub/internal/domain/team"
)

// memberSep joins roster names inside one SQL row; member names are free text
// but trimmed, so a unit separator never collides.
const memberSep = "\x1f"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new team store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListByEvent returns every team registered to eventID.
// POST: ordered by score descending with unscored teams last, then creation time
func (s *SQLiteStore) ListByEvent(ctx context.Context, eventID string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.event_id, t.created_by, t.created_at,
		       COALESCE(a.name, ''),
		       s.score,
		       COALESCE((SELECT group_concat(m.member_name, ? ORDER BY m.position)
		                 FROM team_member m WHERE m.team_id = t.id), '')
		FROM team t
		LEFT JOIN account a ON a.id = t.created_by
		LEFT JOIN score s ON s.team_id = t.id AND s.event_id = t.event_id
		WHERE t.event_id = ?
		ORDER BY s.score IS NULL, s.score DESC, t.created_at, t.rowid`, memberSep, eventID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sum Summary
		var createdAt, members string
		var score sql.NullFloat64
		err := rows.Scan(&sum.ID, &sum.Name, &sum.EventID, &sum.CreatedBy, &createdAt,
			&sum.CreatorName, &score, &members)
		if err != nil {
			return nil, err
		}
		sum.CreatedAt, _ = storage.ParseTime(createdAt)
		if score.Valid {
			v := score.Float64
			sum.Score = &v
		}
		if members != "" {
			sum.MemberNames = strings.Split(members, memberSep)
		}
		results = append(results, sum)
	}
	return results, rows.Err()
}

// GetByID retrieves a Team by its ID.
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Team, error) {
	var t domain.Team
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, event_id, created_by, created_at FROM team WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.EventID, &t.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Team{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Team{}, fmt.Errorf("get team: %w", err)
	}
	t.CreatedAt, _ = storage.ParseTime(createdAt)
	return t, nil
}

// ListMembers returns a team's roster.
// POST: ordered by position; UserID empty for free-text teammates
func (s *SQLiteStore) ListMembers(ctx context.Context, teamID string) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, COALESCE(user_id, ''), member_name, position
		 FROM team_member WHERE team_id = ? ORDER BY position`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Name, &m.Position); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CreateWithMembers inserts a team and its roster in one transaction.
// PRE: t validated; members built by team.BuildRoster
// POST: either the team and all members exist, or nothing was written
func (s *SQLiteStore) CreateWithMembers(ctx context.Context, t domain.Team, members []domain.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO team (id, name, event_id, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.EventID, t.CreatedBy, storage.FormatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	for _, m := range members {
		var userID any
		if m.UserID != "" {
			userID = m.UserID
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO team_member (id, team_id, user_id, member_name, position) VALUES (?, ?, ?, ?, ?)`,
			m.ID, t.ID, userID, m.Name, m.Position)
		if err != nil {
			return fmt.Errorf("insert team member: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a team with its members and scores in one transaction.
// POST: no member or score row references the team; domain.ErrNotFound if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete team: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM team_member WHERE team_id = ?`, id); err != nil {
		return fmt.Errorf("delete team members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM score WHERE team_id = ?`, id); err != nil {
		return fmt.Errorf("delete team scores: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM team WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
