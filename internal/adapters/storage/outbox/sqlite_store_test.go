package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"aiclub/internal/adapters/storage/outbox"
	"aiclub/internal/adapters/storage/storagetest"
	domain "aiclub/internal/domain/outbox"
)

// TestSQLiteStore_SaveAndLifecycle inserts, updates, and filters by status.
func TestSQLiteStore_SaveAndLifecycle(t *testing.T) {
	store := outbox.NewSQLiteStore(storagetest.Open(t))
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	e := domain.Entry{ID: "o1", ActionType: domain.ActionTypeEmail, Payload: `{"to":["a@club.test"]}`, CreatedAt: created}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := store.Save(ctx, e); err != nil {
		t.Fatalf("Save: %v", err)
	}
	pending, err := store.ListPending(ctx, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListPending = %v, %v", pending, err)
	}
	if !pending[0].CreatedAt.Equal(created) || !pending[0].LastAttemptedAt.IsZero() {
		t.Errorf("times = %v / %v", pending[0].CreatedAt, pending[0].LastAttemptedAt)
	}

	e.MaxAttempts = 1
	e.MarkAttempt(created.Add(time.Minute))
	e.MarkFailed(errors.New("smtp down"))
	if err := store.Save(ctx, e); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := store.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusFailed || got.Attempts != 1 || got.ErrorMessage != "smtp down" {
		t.Errorf("after failure = %+v", got)
	}
	if pending, _ := store.ListPending(ctx, 10); len(pending) != 0 {
		t.Errorf("failed entry still pending: %+v", pending)
	}
	failed, err := store.ListFailed(ctx, 10)
	if err != nil || len(failed) != 1 {
		t.Errorf("ListFailed = %v, %v", failed, err)
	}
}

// TestSQLiteStore_GetByID_Missing returns ErrNotFound.
func TestSQLiteStore_GetByID_Missing(t *testing.T) {
	store := outbox.NewSQLiteStore(storagetest.Open(t))
	if _, err := store.GetByID(context.Background(), "nope"); !errors.Is(err, outbox.ErrNotFound) {
		t.Errorf("GetByID = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_ListPendingAfter pages in (created_at, id) order and skips closed entries.
func TestSQLiteStore_ListPendingAfter(t *testing.T) {
	store := outbox.NewSQLiteStore(storagetest.Open(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		id     string
		offset time.Duration
		status string
	}{
		{"c", 0, domain.StatusPending},
		{"a", 0, domain.StatusRetrying},
		{"b", 0, domain.StatusDone},
		{"d", time.Second, domain.StatusPending},
		{"e", 2 * time.Second, domain.StatusPending},
	} {
		e := domain.Entry{ID: tc.id, ActionType: domain.ActionTypeEmail, Payload: "{}", Status: tc.status, CreatedAt: base.Add(tc.offset)}
		if err := store.Save(ctx, e); err != nil {
			t.Fatalf("Save %s: %v", tc.id, err)
		}
	}

	var got []string
	var cursor domain.Cursor
	for {
		page, err := store.ListPendingAfter(ctx, cursor, 2)
		if err != nil {
			t.Fatalf("ListPendingAfter: %v", err)
		}
		for _, e := range page {
			got = append(got, e.ID)
			cursor = e.Cursor()
		}
		if len(page) < 2 {
			break
		}
	}
	want := []string{"a", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids = %v, want %v", got, want)
			break
		}
	}
}
