package web

import (
	"net/http"
	"time"

	"aiclub/internal/adapters/http/perf"
	"aiclub/internal/application/listutil"
	"aiclub/internal/domain/apperr"
	domain "aiclub/internal/domain/outbox"
)

const (
	perfWindow = time.Hour
	perfTopN   = 10
)

var (
	outboxLimits           = listutil.LimitParams{Default: 50, Max: 100}
	outboxFilters          = []string{domain.StatusFailed, domain.StatusPending}
	errInvalidOutboxFilter = apperr.Validation("status must be failed or pending")
)

// outboxEntryView is the admin rendering of an outbox entry.
type outboxEntryView struct {
	ID              string     `json:"id"`
	ActionType      string     `json:"action_type"`
	Payload         string     `json:"payload"`
	Status          string     `json:"status"`
	Attempts        int        `json:"attempts"`
	MaxAttempts     int        `json:"max_attempts"`
	LastAttemptedAt *time.Time `json:"last_attempted_at"`
	CreatedAt       time.Time  `json:"created_at"`
	ExternalID      string     `json:"external_id,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
}

func toOutboxView(e domain.Entry) outboxEntryView {
	v := outboxEntryView{
		ID:           e.ID,
		ActionType:   e.ActionType,
		Payload:      e.Payload,
		Status:       e.Status,
		Attempts:     e.Attempts,
		MaxAttempts:  e.MaxAttempts,
		CreatedAt:    e.CreatedAt,
		ExternalID:   e.ExternalID,
		ErrorMessage: e.ErrorMessage,
	}
	if !e.LastAttemptedAt.IsZero() {
		t := e.LastAttemptedAt
		v.LastAttemptedAt = &t
	}
	return v
}

func (s *Server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		writeJSON(w, http.StatusOK, perf.Snapshot{})
		return
	}
	writeJSON(w, http.StatusOK, s.collector.Snapshot(s.now().Add(-perfWindow), perfTopN))
}

// handleListOutbox lists failed entries by default; ?status=pending lists the retry queue.
func (s *Server) handleListOutbox(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := listutil.ParseLimit(q, outboxLimits)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status, ok := listutil.ParseChoice(q, "status", outboxFilters)
	if !ok {
		s.writeError(w, r, errInvalidOutboxFilter)
		return
	}

	var entries []domain.Entry
	if status == domain.StatusPending {
		entries, err = s.stores.OutboxStore.ListPending(r.Context(), limit)
	} else {
		entries, err = s.stores.OutboxStore.ListFailed(r.Context(), limit)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]outboxEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toOutboxView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleRetryOutbox(w http.ResponseWriter, r *http.Request) {
	entry, err := s.outbox.ProcessSingle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOutboxView(entry))
}

func (s *Server) handleAbandonOutbox(w http.ResponseWriter, r *http.Request) {
	if err := s.outbox.AbandonEntry(r.Context(), r.PathValue("id"), claims(r).Email); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
