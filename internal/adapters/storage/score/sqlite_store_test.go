package score_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"aiclub/internal/adapters/storage/score"
	"aiclub/internal/adapters/storage/storagetest"
	domain "aiclub/internal/domain/score"
)

func setup(t *testing.T) (*score.SQLiteStore, func() int) {
	t.Helper()
	db := storagetest.Open(t)
	db.Exec(`INSERT INTO event (id, title, date, created_by, created_at) VALUES ('e1', 'Hack', '2026-03-01', 'a', '2026-01-01T00:00:00Z')`)
	db.Exec(`INSERT INTO team (id, name, event_id, created_by, created_at) VALUES ('t1', 'Owls', 'e1', 'u1', '2026-01-01T00:00:00Z')`)
	return score.NewSQLiteStore(db), func() int { return storagetest.Count(t, db, "score", "team_id = 't1' AND event_id = 'e1'") }
}

// TestSQLiteStore_Upsert_LastWriteWins keeps one row and refreshes the assigner.
func TestSQLiteStore_Upsert_LastWriteWins(t *testing.T) {
	store, rows := setup(t)
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	err := store.Upsert(ctx, domain.Score{ID: "s1", TeamID: "t1", EventID: "e1", Value: 7.5, Note: "good", AssignedBy: "admin-a", AssignedAt: first})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	err = store.Upsert(ctx, domain.Score{ID: "s2", TeamID: "t1", EventID: "e1", Value: 9, AssignedBy: "admin-b", AssignedAt: first.Add(time.Hour)})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if n := rows(); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	got, found, err := store.Get(ctx, "t1", "e1")
	if err != nil || !found {
		t.Fatalf("Get = %v, %v", found, err)
	}
	if got.ID != "s1" {
		t.Errorf("ID = %q, want original s1", got.ID)
	}
	if got.Value != 9 || got.Note != "" || got.AssignedBy != "admin-b" {
		t.Errorf("after upsert = %+v", got)
	}
	if !got.AssignedAt.Equal(first.Add(time.Hour)) {
		t.Errorf("AssignedAt = %v", got.AssignedAt)
	}
}

// TestSQLiteStore_Upsert_Concurrent never produces a second row.
func TestSQLiteStore_Upsert_Concurrent(t *testing.T) {
	store, rows := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Upsert(ctx, domain.Score{
				ID: fmt.Sprintf("s%d", i), TeamID: "t1", EventID: "e1",
				Value: float64(i % 11), AssignedBy: "admin", AssignedAt: time.Now(),
			})
			if err != nil {
				t.Errorf("Upsert %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if n := rows(); n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
}

// TestSQLiteStore_Get_Missing reports found=false without error.
func TestSQLiteStore_Get_Missing(t *testing.T) {
	store, _ := setup(t)
	_, found, err := store.Get(context.Background(), "t1", "e1")
	if err != nil || found {
		t.Errorf("Get = %v, %v; want not found", found, err)
	}
}

// TestSQLiteStore_Upsert_RejectsOutOfRange is backed by the schema CHECK.
func TestSQLiteStore_Upsert_RejectsOutOfRange(t *testing.T) {
	store, rows := setup(t)
	err := store.Upsert(context.Background(), domain.Score{ID: "s1", TeamID: "t1", EventID: "e1", Value: 11, AssignedBy: "a", AssignedAt: time.Now()})
	if err == nil {
		t.Error("expected CHECK constraint failure")
	}
	if n := rows(); n != 0 {
		t.Errorf("rows = %d, want 0", n)
	}
}
