package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"aiclub/internal/adapters/storage"
	domain "aiclub/internal/domain/activity"
)

// bookAttempts bounds the retry when a seat frees up between a refused
// insert and its classification.
const bookAttempts = 3

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new activity store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every activity with its booking count and whether userID holds a seat.
// POST: ordered by date ascending, then creation time
func (s *SQLiteStore) List(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.description, a.date, a.venue, a.total_seats, a.status, a.created_by, a.created_at,
		       (SELECT COUNT(*) FROM booking b WHERE b.activity_id = a.id),
		       EXISTS (SELECT 1 FROM booking b WHERE b.activity_id = a.id AND b.user_id = ?)
		FROM activity a
		ORDER BY a.date ASC, a.created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		err := rows.Scan(&sum.ID, &sum.Title, &sum.Description, &sum.Date, &sum.Venue, &sum.TotalSeats,
			&sum.Status, &sum.CreatedBy, &createdAt, &sum.BookedCount, &sum.UserBooked)
		if err != nil {
			return nil, err
		}
		sum.CreatedAt, _ = storage.ParseTime(createdAt)
		results = append(results, sum)
	}
	return results, rows.Err()
}

// GetByID retrieves an Activity by its ID.
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Activity, error) {
	var a domain.Activity
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, date, venue, total_seats, status, created_by, created_at
		 FROM activity WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Date, &a.Venue, &a.TotalSeats, &a.Status, &a.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Activity{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Activity{}, fmt.Errorf("get activity: %w", err)
	}
	a.CreatedAt, _ = storage.ParseTime(createdAt)
	return a, nil
}

// Create inserts a new Activity.
// PRE: a has been validated
func (s *SQLiteStore) Create(ctx context.Context, a domain.Activity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, title, description, date, venue, total_seats, status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.Date, a.Venue, a.TotalSeats, a.Status, a.CreatedBy, storage.FormatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Update overwrites the editable fields. The seat floor is checked in the same
// statement so a concurrent booking cannot slip under a shrinking capacity.
// PRE: a has been validated
// POST: Row updated, or domain.ErrNotFound / domain.ErrSeatsBelowBookings
func (s *SQLiteStore) Update(ctx context.Context, a domain.Activity) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE activity SET title = ?, description = ?, date = ?, venue = ?, total_seats = ?, status = ?
		 WHERE id = ? AND ? >= (SELECT COUNT(*) FROM booking WHERE activity_id = ?)`,
		a.Title, a.Description, a.Date, a.Venue, a.TotalSeats, a.Status, a.ID, a.TotalSeats, a.ID)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := s.GetByID(ctx, a.ID); err != nil {
		return err
	}
	return domain.ErrSeatsBelowBookings
}

// Delete removes an activity's bookings, then the activity, in one transaction.
// POST: no booking references the activity; domain.ErrNotFound if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete activity: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking WHERE activity_id = ?`, id); err != nil {
		return fmt.Errorf("delete bookings: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM activity WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// Book inserts b only if the activity is open and has a free seat, in one statement.
// PRE: b.ID, ActivityID, UserID and BookedAt are set
// POST: booking persisted, or one of domain.ErrNotFound, ErrNotOpen, ErrNoSeats, ErrAlreadyBooked
// INVARIANT: bookings per activity never exceed total_seats
func (s *SQLiteStore) Book(ctx context.Context, b domain.Booking) error {
	for attempt := 0; attempt < bookAttempts; attempt++ {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO booking (id, activity_id, user_id, user_name, user_email, booked_at)
			SELECT ?, a.id, ?, ?, ?, ?
			FROM activity a
			WHERE a.id = ?
			  AND a.status = ?
			  AND (SELECT COUNT(*) FROM booking b WHERE b.activity_id = a.id) < a.total_seats`,
			b.ID, b.UserID, b.UserName, b.UserEmail, storage.FormatTime(b.BookedAt),
			b.ActivityID, domain.StatusOpen)
		if storage.IsUniqueViolation(err) {
			return domain.ErrAlreadyBooked
		}
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return nil
		}

		if err := s.classifyRefusal(ctx, b.ActivityID, b.UserID); err != nil {
			return err
		}
		slog.Debug("booking_event", "event", "retry_after_refusal", "activity_id", b.ActivityID, "attempt", attempt+1)
	}
	return domain.ErrNoSeats
}

// classifyRefusal explains why the conditional insert wrote nothing.
// A nil return means the activity has since become bookable.
func (s *SQLiteStore) classifyRefusal(ctx context.Context, activityID, userID string) error {
	a, err := s.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	var booked int
	var mine bool
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(user_id = ?), 0) > 0 FROM booking WHERE activity_id = ?`,
		userID, activityID).Scan(&booked, &mine)
	if err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	return a.CheckBookable(booked, mine)
}

// CancelBooking deletes the user's booking if one exists.
func (s *SQLiteStore) CancelBooking(ctx context.Context, activityID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM booking WHERE activity_id = ? AND user_id = ?`, activityID, userID)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}

// ListBookings returns an activity's bookings.
// POST: ordered by booked_at ascending, insertion order breaking ties
func (s *SQLiteStore) ListBookings(ctx context.Context, activityID string) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, activity_id, user_id, user_name, user_email, booked_at
		 FROM booking WHERE activity_id = ? ORDER BY booked_at ASC, rowid ASC`, activityID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var results []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var bookedAt string
		if err := rows.Scan(&b.ID, &b.ActivityID, &b.UserID, &b.UserName, &b.UserEmail, &bookedAt); err != nil {
			return nil, err
		}
		b.BookedAt, _ = storage.ParseTime(bookedAt)
		results = append(results, b)
	}
	return results, rows.Err()
}

// CountBookings returns the number of seats taken.
func (s *SQLiteStore) CountBookings(ctx context.Context, activityID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking WHERE activity_id = ?`, activityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
