package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"aiclub/internal/adapters/email"
	"aiclub/internal/domain/apperr"
	domain "aiclub/internal/domain/outbox"
)

// Backoff and batch defaults for the outbox worker.
const (
	DefaultOutboxBaseDelay = 1 * time.Minute
	DefaultOutboxMaxDelay  = 1 * time.Hour
	DefaultOutboxBatchSize = 100
)

// ErrEntryTerminal is returned when an admin retries an entry that is done, failed or abandoned.
var ErrEntryTerminal = apperr.State("Outbox entry can no longer be retried")

// OutboxStoreForProcessor defines the store interface needed by the OutboxProcessor.
type OutboxStoreForProcessor interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, e domain.Entry) error
	ListPendingAfter(ctx context.Context, after domain.Cursor, limit int) ([]domain.Entry, error)
}

// ActionExecutor executes a specific type of external action.
type ActionExecutor interface {
	// Execute runs the action for the entry and returns the provider's external ID.
	Execute(ctx context.Context, e domain.Entry) (string, error)
}

// OutboxProcessor delivers queued side effects with exponential backoff.
type OutboxProcessor struct {
	store     OutboxStoreForProcessor
	executors map[string]ActionExecutor
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
	now       func() time.Time
}

// NewOutboxProcessor creates a new outbox processor with the default backoff.
func NewOutboxProcessor(store OutboxStoreForProcessor, executors map[string]ActionExecutor) *OutboxProcessor {
	return &OutboxProcessor{
		store:     store,
		executors: executors,
		baseDelay: DefaultOutboxBaseDelay,
		maxDelay:  DefaultOutboxMaxDelay,
		batchSize: DefaultOutboxBatchSize,
		now:       time.Now,
	}
}

// WithClock replaces the processor's time source.
func (p *OutboxProcessor) WithClock(now func() time.Time) *OutboxProcessor {
	p.now = now
	return p
}

// ProcessPending attempts up to one batch of due entries, paging past entries still backing off.
// PRE: Context is valid
// POST: at most batchSize due entries were attempted once; entries still backing off are untouched
// INVARIANT: a due entry is never starved by older entries that are not yet due
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	var cursor domain.Cursor
	attempted := 0
	for attempted < p.batchSize {
		entries, err := p.store.ListPendingAfter(ctx, cursor, p.batchSize)
		if err != nil {
			return fmt.Errorf("list pending outbox entries: %w", err)
		}

		for _, entry := range entries {
			cursor = entry.Cursor()
			if p.now().Before(entry.DueAt(p.baseDelay, p.maxDelay)) {
				slog.Debug("outbox_retry_skipped_backoff", "entry_id", entry.ID, "attempts", entry.Attempts)
				continue
			}
			if err := p.attempt(ctx, entry); err != nil {
				slog.Error("outbox_process_failed", "entry_id", entry.ID, "action_type", entry.ActionType, "error", err.Error())
			}
			attempted++
			if attempted == p.batchSize {
				break
			}
		}
		if len(entries) < p.batchSize {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// attempt runs the entry's executor once and persists the outcome.
func (p *OutboxProcessor) attempt(ctx context.Context, entry domain.Entry) error {
	executor, ok := p.executors[entry.ActionType]
	if !ok {
		entry.MarkAbandoned(fmt.Sprintf("no executor registered for action type: %s", entry.ActionType))
		return p.store.Save(ctx, entry)
	}

	entry.MarkAttempt(p.now().UTC())
	externalID, err := executor.Execute(ctx, entry)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_action_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "status", entry.Status, "error", err.Error())
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_action_succeeded", "entry_id", entry.ID, "action_type", entry.ActionType, "external_id", externalID)
	}
	return p.store.Save(ctx, entry)
}

// ProcessSingle attempts one entry immediately, ignoring backoff (admin retry).
// PRE: entryID is non-empty
// POST: entry attempted once and saved; returns the updated entry
func (p *OutboxProcessor) ProcessSingle(ctx context.Context, entryID string) (domain.Entry, error) {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return domain.Entry{}, err
	}
	if entry.IsTerminal() {
		return entry, ErrEntryTerminal
	}
	if err := p.attempt(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return p.store.GetByID(ctx, entryID)
}

// AbandonEntry marks an entry as abandoned by an admin.
// PRE: entryID is non-empty
// POST: Entry status set to abandoned
func (p *OutboxProcessor) AbandonEntry(ctx context.Context, entryID, actorID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	entry.MarkAbandoned("abandoned by " + actorID)
	if err := p.store.Save(ctx, entry); err != nil {
		return err
	}
	slog.Info("outbox_entry_abandoned", "entry_id", entryID, "by", actorID)
	return nil
}

// --- Email Executor ---

// EmailExecutor delivers email entries through a Sender.
type EmailExecutor struct {
	Sender email.Sender
}

// Execute sends the email described by the entry's payload.
// PRE: payload is valid JSON matching domain.EmailPayload
// POST: email accepted by the provider; returns its message ID
// INVARIANT: outbox entry status managed by caller
func (e *EmailExecutor) Execute(ctx context.Context, entry domain.Entry) (string, error) {
	var p domain.EmailPayload
	if err := json.Unmarshal([]byte(entry.Payload), &p); err != nil {
		return "", fmt.Errorf("unmarshal payload: %w", err)
	}
	res, err := e.Sender.Send(ctx, email.SendRequest{
		To:      p.To,
		Subject: p.Subject,
		HTML:    p.HTML,
		Ref:     entry.ID,
	})
	if err != nil {
		return "", err
	}
	return res.MessageID, nil
}

// --- Background Worker ---

// StartBackgroundWorker starts a goroutine that periodically processes pending outbox entries.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed; the returned channel closes once it has exited
func StartBackgroundWorker(processor *OutboxProcessor, interval time.Duration, stopCh <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if err := processor.ProcessPending(ctx); err != nil {
					slog.Error("outbox_background_process_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("outbox_background_worker_stopped")
				return
			}
		}
	}()
	return done
}
