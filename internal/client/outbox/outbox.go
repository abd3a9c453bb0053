// Package outbox keeps captured start events on local durable storage until
// the sync engine confirms them on the server.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/client/events"
	"github.com/iudanet/startline/internal/client/storage"
	"github.com/iudanet/startline/internal/metrics"
	"github.com/iudanet/startline/internal/models"
)

// RegisterRequest describes a captured start
type RegisterRequest struct {
	CapturedTimestamp time.Time         // уже скорректированное время
	TargetNames       map[string]string // необязательные имена дистанций
	EventGroupID      string
	TargetIDs         []string
	CorrectionTargets []string // только для IsCorrection, попарно с TargetIDs
	IsCorrection      bool
}

// Validate checks request invariants
func (r RegisterRequest) Validate() error {
	if r.EventGroupID == "" {
		return ErrEmptyEventGroup
	}
	if len(r.TargetIDs) == 0 {
		return ErrNoTargets
	}
	if r.IsCorrection {
		if len(r.CorrectionTargets) != len(r.TargetIDs) {
			return ErrCorrectionTargets
		}
		return nil
	}
	if len(r.CorrectionTargets) > 0 {
		return ErrUnexpectedCorrectionTargets
	}
	return nil
}

// Outbox is the in-memory view of the persisted outbox. Every mutation is
// written through to storage before it becomes visible.
type Outbox struct {
	storage    storage.OutboxStorage
	clock      clockwork.Clock
	logger     *slog.Logger
	bus        *events.Bus
	metrics    *metrics.Client
	purgeTimer clockwork.Timer
	entries    []*models.PendingStartEvent
	mu         sync.Mutex
	timerMu    sync.Mutex
}

// New creates an outbox. bus and metrics may be nil.
func New(outboxStorage storage.OutboxStorage, clock clockwork.Clock, logger *slog.Logger, bus *events.Bus, m *metrics.Client) *Outbox {
	return &Outbox{
		storage: outboxStorage,
		clock:   clock,
		logger:  logger,
		bus:     bus,
		metrics: m,
	}
}

// Load reads the persisted outbox. Entries left in syncing state by a crash
// are returned to pending so the sync engine retries them. Synced entries
// whose purge was cut short by an exit are dropped.
func (o *Outbox) Load(ctx context.Context) error {
	entries, err := o.storage.LoadOutbox(ctx)
	if err != nil {
		return fmt.Errorf("failed to load outbox: %w", err)
	}

	total := len(entries)
	entries = slices.DeleteFunc(entries, func(e *models.PendingStartEvent) bool {
		return e.IsTerminal()
	})
	purged := total - len(entries)

	recovered := 0
	for _, e := range entries {
		if e.Status == models.StatusSyncing {
			e.Status = models.StatusPending
			recovered++
		}
	}

	if purged > 0 {
		if err := o.storage.SaveOutbox(ctx, entries); err != nil {
			return fmt.Errorf("failed to persist purged outbox: %w", err)
		}
	}

	o.mu.Lock()
	o.entries = entries
	o.mu.Unlock()

	o.metrics.RecordOutbox(entries)
	o.logger.Info("Outbox loaded", "entries", len(entries), "recovered", recovered, "purged", purged)
	return nil
}

// Register stores a captured start. An existing non-synced entry for the
// same group and exactly the same target set is replaced in place and keeps
// its id; otherwise a new entry is appended.
func (o *Outbox) Register(ctx context.Context, req RegisterRequest) (*models.PendingStartEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var entry *models.PendingStartEvent
	err := o.mutate(ctx, func(next []*models.PendingStartEvent) ([]*models.PendingStartEvent, error) {
		for _, e := range next {
			if !e.IsTerminal() && e.MatchesTargets(req.EventGroupID, req.TargetIDs) {
				entry = e
				break
			}
		}

		if entry != nil {
			// Повторная фиксация: обновляем изменяемые поля, id сохраняется
			entry.CapturedTimestamp = req.CapturedTimestamp
			entry.IsCorrection = req.IsCorrection
			entry.CorrectionTargets = slices.Clone(req.CorrectionTargets)
			entry.TargetIDs = slices.Clone(req.TargetIDs)
			if len(req.TargetNames) > 0 {
				entry.TargetNames = cloneNames(req.TargetNames)
			}
			entry.Status = models.StatusPending
			entry.RetryCount = 0
			entry.LastError = ""
			return next, nil
		}

		entry = &models.PendingStartEvent{
			ID:                uuid.New().String(),
			EventGroupID:      req.EventGroupID,
			TargetIDs:         slices.Clone(req.TargetIDs),
			TargetNames:       cloneNames(req.TargetNames),
			CapturedTimestamp: req.CapturedTimestamp,
			IsCorrection:      req.IsCorrection,
			CorrectionTargets: slices.Clone(req.CorrectionTargets),
			Status:            models.StatusPending,
			CreatedAt:         o.clock.Now(),
		}
		return append(next, entry), nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Start registered",
		"id", entry.ID,
		"event_group_id", entry.EventGroupID,
		"targets", entry.TargetIDs,
		"timestamp", entry.CapturedTimestamp,
		"correction", entry.IsCorrection)

	registered := entry.Clone()
	o.bus.Publish(events.TopicStartRegistered, registered)
	return registered, nil
}

// GetStatusFor returns the first non-synced entry containing targetID,
// or nil when there is none.
func (o *Outbox) GetStatusFor(targetID string) *models.PendingStartEvent {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, e := range o.entries {
		if !e.IsTerminal() && e.ContainsTarget(targetID) {
			return e.Clone()
		}
	}
	return nil
}

// Get returns a copy of the entry with the given id
func (o *Outbox) Get(id string) (*models.PendingStartEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	idx := indexOf(o.entries, id)
	if idx < 0 {
		return nil, storage.ErrOutboxEntryNotFound
	}
	return o.entries[idx].Clone(), nil
}

// List returns copies of all entries in registration order
func (o *Outbox) List() []*models.PendingStartEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneAll(o.entries)
}

// Pending returns copies of entries the sync engine may pick up
func (o *Outbox) Pending(maxRetries int) []*models.PendingStartEvent {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := make([]*models.PendingStartEvent, 0, len(o.entries))
	for _, e := range o.entries {
		if e.Retryable(maxRetries) {
			result = append(result, e.Clone())
		}
	}
	return result
}

// Update applies fn to the entry with the given id and persists the result.
func (o *Outbox) Update(ctx context.Context, id string, fn func(*models.PendingStartEvent)) (*models.PendingStartEvent, error) {
	var updated *models.PendingStartEvent
	err := o.mutate(ctx, func(next []*models.PendingStartEvent) ([]*models.PendingStartEvent, error) {
		idx := indexOf(next, id)
		if idx < 0 {
			return nil, storage.ErrOutboxEntryNotFound
		}
		fn(next[idx])
		// id не меняется через Update
		next[idx].ID = id
		updated = next[idx]
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Reset returns an entry to pending for a forced resync. The retry counter
// is kept so the history of failures stays visible.
func (o *Outbox) Reset(ctx context.Context, id string) (*models.PendingStartEvent, error) {
	var reset *models.PendingStartEvent
	err := o.mutate(ctx, func(next []*models.PendingStartEvent) ([]*models.PendingStartEvent, error) {
		idx := indexOf(next, id)
		if idx < 0 {
			return nil, storage.ErrOutboxEntryNotFound
		}
		if next[idx].IsTerminal() {
			return nil, ErrAlreadySynced
		}
		next[idx].Status = models.StatusPending
		next[idx].LastError = ""
		reset = next[idx]
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Outbox entry reset for resync", "id", id, "retry_count", reset.RetryCount)
	return reset.Clone(), nil
}

// PurgeSynced removes all synced entries and returns how many were removed.
func (o *Outbox) PurgeSynced(ctx context.Context) (int, error) {
	removed := 0
	err := o.mutate(ctx, func(next []*models.PendingStartEvent) ([]*models.PendingStartEvent, error) {
		kept := slices.DeleteFunc(next, func(e *models.PendingStartEvent) bool {
			return e.IsTerminal()
		})
		removed = len(next) - len(kept)
		if removed == 0 {
			return nil, errNothingChanged
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		o.logger.Debug("Purged synced entries", "count", removed)
	}
	return removed, nil
}

// SchedulePurge purges synced entries after delay. A new call replaces a
// purge that has not fired yet.
func (o *Outbox) SchedulePurge(delay time.Duration) {
	o.timerMu.Lock()
	defer o.timerMu.Unlock()

	if o.purgeTimer != nil {
		o.purgeTimer.Stop()
	}

	o.purgeTimer = o.clock.AfterFunc(delay, func() {
		if _, err := o.PurgeSynced(context.Background()); err != nil {
			o.logger.Error("Failed to purge synced entries", "error", err)
		}
	})
}

// Close stops a scheduled purge
func (o *Outbox) Close() {
	o.timerMu.Lock()
	defer o.timerMu.Unlock()

	if o.purgeTimer != nil {
		o.purgeTimer.Stop()
		o.purgeTimer = nil
	}
}

// errNothingChanged lets a mutation skip the write
var errNothingChanged = errors.New("nothing changed")

// mutate applies fn to a copy of the entries, persists the result and swaps
// it in. Subscribers are notified after the lock is released.
func (o *Outbox) mutate(ctx context.Context, fn func([]*models.PendingStartEvent) ([]*models.PendingStartEvent, error)) error {
	o.mu.Lock()

	next, err := fn(cloneAll(o.entries))
	if err != nil {
		o.mu.Unlock()
		if errors.Is(err, errNothingChanged) {
			return nil
		}
		return err
	}

	if err := o.storage.SaveOutbox(ctx, next); err != nil {
		o.mu.Unlock()
		return fmt.Errorf("failed to persist outbox: %w", err)
	}
	o.entries = next
	snapshot := cloneAll(next)
	o.mu.Unlock()

	o.metrics.RecordOutbox(snapshot)
	o.bus.Publish(events.TopicOutboxChanged, len(snapshot))
	return nil
}

func indexOf(entries []*models.PendingStartEvent, id string) int {
	return slices.IndexFunc(entries, func(e *models.PendingStartEvent) bool {
		return e.ID == id
	})
}

func cloneAll(entries []*models.PendingStartEvent) []*models.PendingStartEvent {
	result := make([]*models.PendingStartEvent, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Clone())
	}
	return result
}

func cloneNames(names map[string]string) map[string]string {
	if len(names) == 0 {
		return nil
	}
	result := make(map[string]string, len(names))
	for k, v := range names {
		result[k] = v
	}
	return result
}
