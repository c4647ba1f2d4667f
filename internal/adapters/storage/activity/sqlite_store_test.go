package activity_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"aiclub/internal/adapters/storage/activity"
	"aiclub/internal/adapters/storage/storagetest"
	domain "aiclub/internal/domain/activity"
)

func setup(t *testing.T, seats int, users ...string) (*sql.DB, *activity.SQLiteStore) {
	t.Helper()
	db := storagetest.Open(t)
	for _, u := range users {
		storagetest.InsertUser(t, db, u, "User "+u, u+"@club.test", "member")
	}
	store := activity.NewSQLiteStore(db)
	err := store.Create(context.Background(), domain.Activity{
		ID: "act", Title: "Workshop", Date: "2026-05-01", TotalSeats: seats,
		Status: domain.StatusOpen, CreatedBy: "root", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return db, store
}

var seq atomic.Int64

func book(store *activity.SQLiteStore, activityID, userID string) error {
	return store.Book(context.Background(), domain.Booking{
		ID:         fmt.Sprintf("b%d", seq.Add(1)),
		ActivityID: activityID,
		UserID:     userID,
		UserName:   "User " + userID,
		UserEmail:  userID + "@club.test",
		BookedAt:   time.Now(),
	})
}

// TestSQLiteStore_Book_Scenario: seats=2; A, B book; C is refused; A cancels; C books.
func TestSQLiteStore_Book_Scenario(t *testing.T) {
	_, store := setup(t, 2, "A", "B", "C")
	ctx := context.Background()

	if err := book(store, "act", "A"); err != nil {
		t.Fatalf("A: %v", err)
	}
	if err := book(store, "act", "B"); err != nil {
		t.Fatalf("B: %v", err)
	}
	if err := book(store, "act", "C"); !errors.Is(err, domain.ErrNoSeats) {
		t.Fatalf("C = %v, want ErrNoSeats", err)
	}
	if err := store.CancelBooking(ctx, "act", "A"); err != nil {
		t.Fatalf("cancel A: %v", err)
	}
	if err := book(store, "act", "C"); err != nil {
		t.Fatalf("C after cancel: %v", err)
	}

	bookings, err := store.ListBookings(ctx, "act")
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(bookings) != 2 || bookings[0].UserID != "B" || bookings[1].UserID != "C" {
		t.Errorf("bookings = %+v", bookings)
	}
}

// TestSQLiteStore_Book_Classification checks each refusal reason.
func TestSQLiteStore_Book_Classification(t *testing.T) {
	db, store := setup(t, 1, "A", "B")

	if err := book(store, "missing", "A"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing activity = %v, want ErrNotFound", err)
	}
	if err := book(store, "act", "A"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// Full and already booked: capacity wins.
	if err := book(store, "act", "A"); !errors.Is(err, domain.ErrNoSeats) {
		t.Errorf("full+duplicate = %v, want ErrNoSeats", err)
	}

	db.Exec(`UPDATE activity SET total_seats = 5`)
	if err := book(store, "act", "A"); !errors.Is(err, domain.ErrAlreadyBooked) {
		t.Errorf("duplicate = %v, want ErrAlreadyBooked", err)
	}

	db.Exec(`UPDATE activity SET status = 'closed'`)
	if err := book(store, "act", "B"); !errors.Is(err, domain.ErrNotOpen) {
		t.Errorf("closed = %v, want ErrNotOpen", err)
	}
}

// TestSQLiteStore_Book_Concurrent lets exactly total_seats of many racers win.
func TestSQLiteStore_Book_Concurrent(t *testing.T) {
	const seats, racers = 5, 50
	users := make([]string, racers)
	for i := range users {
		users[i] = fmt.Sprintf("u%02d", i)
	}
	db, store := setup(t, seats, users...)

	var wg sync.WaitGroup
	var succeeded, full atomic.Int64
	for _, u := range users {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			err := book(store, "act", u)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrNoSeats):
				full.Add(1)
			default:
				t.Errorf("book %s: %v", u, err)
			}
		}(u)
	}
	wg.Wait()

	if succeeded.Load() != seats {
		t.Errorf("succeeded = %d, want %d", succeeded.Load(), seats)
	}
	if full.Load() != racers-seats {
		t.Errorf("refused = %d, want %d", full.Load(), racers-seats)
	}
	if n := storagetest.Count(t, db, "booking", "activity_id = 'act'"); n != seats {
		t.Errorf("booking rows = %d, want %d", n, seats)
	}
}

// TestSQLiteStore_Book_ConcurrentSameUser never double-books one user.
func TestSQLiteStore_Book_ConcurrentSameUser(t *testing.T) {
	db, store := setup(t, 10, "A")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := book(store, "act", "A"); err != nil && !errors.Is(err, domain.ErrAlreadyBooked) {
				t.Errorf("book: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := storagetest.Count(t, db, "booking", "user_id = 'A'"); n != 1 {
		t.Errorf("rows for A = %d, want 1", n)
	}
}

// TestSQLiteStore_CancelBooking_Idempotent succeeds without a booking.
func TestSQLiteStore_CancelBooking_Idempotent(t *testing.T) {
	_, store := setup(t, 1, "A")
	if err := store.CancelBooking(context.Background(), "act", "A"); err != nil {
		t.Errorf("cancel without booking: %v", err)
	}
}

// TestSQLiteStore_List flags the viewer's own bookings.
func TestSQLiteStore_List(t *testing.T) {
	_, store := setup(t, 3, "A", "B")
	ctx := context.Background()
	store.Create(ctx, domain.Activity{ID: "early", Title: "Early", Date: "2026-01-01", TotalSeats: 1, Status: domain.StatusOpen, CreatedBy: "root", CreatedAt: time.Now()})
	book(store, "act", "A")
	book(store, "act", "B")

	list, err := store.List(ctx, "A")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "early" || list[1].ID != "act" {
		t.Fatalf("order = %+v", list)
	}
	if list[1].BookedCount != 2 || !list[1].UserBooked {
		t.Errorf("act summary = %+v", list[1])
	}
	if list[0].BookedCount != 0 || list[0].UserBooked {
		t.Errorf("early summary = %+v", list[0])
	}
}

// TestSQLiteStore_Update_SeatFloor refuses to shrink below current bookings.
func TestSQLiteStore_Update_SeatFloor(t *testing.T) {
	_, store := setup(t, 3, "A", "B")
	ctx := context.Background()
	book(store, "act", "A")
	book(store, "act", "B")

	a, _ := store.GetByID(ctx, "act")
	a.TotalSeats = 1
	if err := store.Update(ctx, a); !errors.Is(err, domain.ErrSeatsBelowBookings) {
		t.Errorf("shrink = %v, want ErrSeatsBelowBookings", err)
	}
	a.TotalSeats = 2
	a.Status = domain.StatusClosed
	if err := store.Update(ctx, a); err != nil {
		t.Errorf("shrink to booked count: %v", err)
	}
	a.ID = "missing"
	if err := store.Update(ctx, a); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_Delete removes bookings with the activity.
func TestSQLiteStore_Delete(t *testing.T) {
	db, store := setup(t, 2, "A")
	ctx := context.Background()
	book(store, "act", "A")

	if err := store.Delete(ctx, "act"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := storagetest.Count(t, db, "booking", ""); n != 0 {
		t.Errorf("booking rows = %d", n)
	}
	if err := store.Delete(ctx, "act"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	if n, err := store.CountBookings(ctx, "act"); err != nil || n != 0 {
		t.Errorf("CountBookings = %d, %v", n, err)
	}
}
