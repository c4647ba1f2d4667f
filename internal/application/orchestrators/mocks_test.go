package orchestrators

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"aiclub/internal/domain/account"
	"aiclub/internal/domain/activity"
	"aiclub/internal/domain/event"
	"aiclub/internal/domain/outbox"
	"aiclub/internal/domain/score"
	"aiclub/internal/domain/team"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// sequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

const testBcryptCost = 4

// --- accounts ---

type mockAccountStore struct {
	byID      map[string]account.User
	createErr error
}

func newMockAccountStore(users ...account.User) *mockAccountStore {
	m := &mockAccountStore{byID: make(map[string]account.User)}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return account.User{}, account.ErrNotFound
	}
	return u, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return account.User{}, account.ErrNotFound
}

func (m *mockAccountStore) Create(_ context.Context, u account.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockAccountStore) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.byID[id]
	if !ok {
		return account.ErrNotFound
	}
	u.Role = role
	m.byID[id] = u
	return nil
}

type mockTokens struct{}

func (mockTokens) Issue(u account.User) (string, error) { return "token-" + u.ID, nil }

// --- events ---

type mockEventStore struct {
	events  map[string]event.Event
	deleted []string
}

func newMockEventStore(events ...event.Event) *mockEventStore {
	m := &mockEventStore{events: make(map[string]event.Event)}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return e, nil
}

func (m *mockEventStore) Create(_ context.Context, e event.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *mockEventStore) Update(_ context.Context, e event.Event) error {
	if _, ok := m.events[e.ID]; !ok {
		return event.ErrNotFound
	}
	m.events[e.ID] = e
	return nil
}

func (m *mockEventStore) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return event.ErrNotFound
	}
	delete(m.events, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// --- teams and scores ---

type mockTeamStore struct {
	teams   map[string]team.Team
	members map[string][]team.Member
}

func newMockTeamStore(teams ...team.Team) *mockTeamStore {
	m := &mockTeamStore{teams: make(map[string]team.Team), members: make(map[string][]team.Member)}
	for _, t := range teams {
		m.teams[t.ID] = t
	}
	return m
}

func (m *mockTeamStore) GetByID(_ context.Context, id string) (team.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return team.Team{}, team.ErrNotFound
	}
	return t, nil
}

func (m *mockTeamStore) CreateWithMembers(_ context.Context, t team.Team, members []team.Member) error {
	m.teams[t.ID] = t
	m.members[t.ID] = members
	return nil
}

func (m *mockTeamStore) Delete(_ context.Context, id string) error {
	delete(m.teams, id)
	delete(m.members, id)
	return nil
}

type mockScoreStore struct {
	rows map[[2]string]score.Score
}

func newMockScoreStore() *mockScoreStore {
	return &mockScoreStore{rows: make(map[[2]string]score.Score)}
}

func (m *mockScoreStore) Upsert(_ context.Context, s score.Score) error {
	key := [2]string{s.TeamID, s.EventID}
	if old, ok := m.rows[key]; ok {
		s.ID = old.ID
	}
	m.rows[key] = s
	return nil
}

// --- activities ---

type mockActivityStore struct {
	activities map[string]activity.Activity
	bookings   map[string][]activity.Booking
}

func newMockActivityStore(activities ...activity.Activity) *mockActivityStore {
	m := &mockActivityStore{activities: make(map[string]activity.Activity), bookings: make(map[string][]activity.Booking)}
	for _, a := range activities {
		m.activities[a.ID] = a
	}
	return m
}

func (m *mockActivityStore) GetByID(_ context.Context, id string) (activity.Activity, error) {
	a, ok := m.activities[id]
	if !ok {
		return activity.Activity{}, activity.ErrNotFound
	}
	return a, nil
}

func (m *mockActivityStore) Create(_ context.Context, a activity.Activity) error {
	m.activities[a.ID] = a
	return nil
}

func (m *mockActivityStore) Update(_ context.Context, a activity.Activity) error {
	if a.TotalSeats < len(m.bookings[a.ID]) {
		return activity.ErrSeatsBelowBookings
	}
	m.activities[a.ID] = a
	return nil
}

func (m *mockActivityStore) Delete(_ context.Context, id string) error {
	if _, ok := m.activities[id]; !ok {
		return activity.ErrNotFound
	}
	delete(m.activities, id)
	delete(m.bookings, id)
	return nil
}

func (m *mockActivityStore) Book(_ context.Context, b activity.Booking) error {
	a, ok := m.activities[b.ActivityID]
	if !ok {
		return activity.ErrNotFound
	}
	mine := false
	for _, existing := range m.bookings[a.ID] {
		if existing.UserID == b.UserID {
			mine = true
		}
	}
	if err := a.CheckBookable(len(m.bookings[a.ID]), mine); err != nil {
		return err
	}
	m.bookings[a.ID] = append(m.bookings[a.ID], b)
	return nil
}

func (m *mockActivityStore) CancelBooking(_ context.Context, activityID, userID string) error {
	kept := m.bookings[activityID][:0]
	for _, b := range m.bookings[activityID] {
		if b.UserID != userID {
			kept = append(kept, b)
		}
	}
	m.bookings[activityID] = kept
	return nil
}

// --- outbox ---

type mockOutboxStore struct {
	mu      sync.Mutex
	entries map[string]outbox.Entry
	order     []string
	saveErr   error
	listCalls int
}

func newMockOutboxStore(entries ...outbox.Entry) *mockOutboxStore {
	m := &mockOutboxStore{entries: make(map[string]outbox.Entry)}
	for _, e := range entries {
		m.entries[e.ID] = e
		m.order = append(m.order, e.ID)
	}
	return m
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (outbox.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return outbox.Entry{}, errors.New("not found")
	}
	return e, nil
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.entries[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPendingAfter(_ context.Context, after outbox.Cursor, limit int) ([]outbox.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	var open []outbox.Entry
	for _, id := range m.order {
		e := m.entries[id]
		if e.Status == outbox.StatusPending || e.Status == outbox.StatusRetrying {
			open = append(open, e)
		}
	}
	slices.SortFunc(open, func(a, b outbox.Entry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	var out []outbox.Entry
	for _, e := range open {
		if e.CreatedAt.Before(after.CreatedAt) || (e.CreatedAt.Equal(after.CreatedAt) && e.ID <= after.ID) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
