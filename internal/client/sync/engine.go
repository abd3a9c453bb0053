// Package sync propagates outbox entries to the remote start-record store.
//
// Each entry moves pending -> syncing -> {synced | error}. Targets of one
// entry are written sequentially. New starts use find-or-create keyed on the
// target id so a retry after a partially successful attempt never creates a
// duplicate remote record; corrections update the paired record id directly.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	clientapi "github.com/iudanet/startline/internal/client/api"
	"github.com/iudanet/startline/internal/client/events"
	"github.com/iudanet/startline/internal/client/outbox"
	"github.com/iudanet/startline/internal/metrics"
	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/pkg/api"
)

//go:generate moq -out remote_mock.go . RemoteStore Connectivity
//go:generate moq -out service_mock.go . Service

// RemoteStore определяет операции удаленного хранилища стартов.
// FindStartByTarget must return an error wrapping api.ErrNotFound when the
// target has no record.
type RemoteStore interface {
	FindStartByTarget(ctx context.Context, targetID string) (*models.StartRecord, error)
	CreateStart(ctx context.Context, req api.CreateStartRequest) (*models.StartRecord, error)
	UpdateStartTime(ctx context.Context, id string, startTime time.Time) (*models.StartRecord, error)
}

// Connectivity reports whether the server is believed to be reachable
type Connectivity interface {
	Online() bool
}

// Service определяет интерфейс синхронизации, используемый CLI
type Service interface {
	// SyncPendingStarts выполняет один проход по всем ожидающим записям
	SyncPendingStarts(ctx context.Context) (*SyncResult, error)

	// SyncImmediately выполняет одну попытку синхронизации записи
	SyncImmediately(ctx context.Context, id string) error

	// ForceSync сбрасывает исчерпанную запись и синхронизирует ее
	ForceSync(ctx context.Context, id string) error
}

// Config controls retries and scheduling
type Config struct {
	MaxRetries  int           // после стольких ошибок запись требует ручного resync
	BaseBackoff time.Duration // задержка перед первым повтором записи
	RetryDelay  time.Duration // задержка повторного прохода после ошибок
	PurgeDelay  time.Duration // сколько synced записи остаются видимыми
	Interval    time.Duration // период фоновой синхронизации
}

// DefaultConfig returns production defaults
func DefaultConfig() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: time.Second,
		RetryDelay:  10 * time.Second,
		PurgeDelay:  3 * time.Second,
		Interval:    30 * time.Second,
	}
}

// SyncResult contains batch results
type SyncResult struct {
	Attempted int // количество обработанных записей
	Synced    int // успешно синхронизированные
	Failed    int // записи, завершившиеся ошибкой
}

// Engine drives outbox entries to the remote store.
type Engine struct {
	remote     RemoteStore
	outbox     *outbox.Outbox
	conn       Connectivity
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *metrics.Client
	bus        *events.Bus
	retryTimer clockwork.Timer
	cfg        Config
	inFlight   atomic.Bool
	rerun      atomic.Bool
	timerMu    stdsync.Mutex
}

var _ Service = (*Engine)(nil)

// NewEngine creates a sync engine. conn, metrics and bus may be nil; a nil
// conn is treated as always online.
func NewEngine(
	remote RemoteStore,
	box *outbox.Outbox,
	conn Connectivity,
	clock clockwork.Clock,
	cfg Config,
	logger *slog.Logger,
	m *metrics.Client,
	bus *events.Bus,
) *Engine {
	def := DefaultConfig()
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	return &Engine{
		remote:  remote,
		outbox:  box,
		conn:    conn,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		bus:     bus,
	}
}

// SyncEntry syncs one entry: marks it syncing, writes every target and
// records the outcome. The returned error describes the first failed target.
func (e *Engine) SyncEntry(ctx context.Context, id string) error {
	started := e.clock.Now()

	entry, err := e.outbox.Update(ctx, id, func(p *models.PendingStartEvent) {
		p.Status = models.StatusSyncing
	})
	if err != nil {
		return fmt.Errorf("failed to mark entry syncing: %w", err)
	}

	e.logger.Debug("Syncing entry",
		"id", entry.ID,
		"targets", entry.TargetIDs,
		"correction", entry.IsCorrection,
		"attempt", entry.RetryCount+1)

	syncErr := e.writeTargets(ctx, entry)

	_, err = e.outbox.Update(ctx, id, func(p *models.PendingStartEvent) {
		if p.Status != models.StatusSyncing {
			// Запись перефиксирована во время синхронизации, новое время
			// уйдет следующим проходом
			return
		}
		if syncErr != nil {
			p.Status = models.StatusError
			p.LastError = syncErr.Error()
			p.RetryCount++
			return
		}
		p.Status = models.StatusSynced
		p.LastError = ""
	})
	if err != nil {
		return fmt.Errorf("failed to record sync outcome: %w", err)
	}

	e.metrics.RecordSyncEntry(syncErr == nil, e.clock.Since(started))

	if syncErr != nil {
		e.logger.Warn("Entry sync failed",
			"id", id,
			"retry_count", entry.RetryCount+1,
			"error", syncErr)
		return syncErr
	}

	e.logger.Info("Entry synced", "id", id, "targets", len(entry.TargetIDs))
	return nil
}

// writeTargets пишет цели по порядку и останавливается на первой ошибке.
// Уже записанные цели не откатываются.
func (e *Engine) writeTargets(ctx context.Context, entry *models.PendingStartEvent) error {
	for _, targetID := range entry.TargetIDs {
		var err error
		if entry.IsCorrection {
			err = e.correctTarget(ctx, entry, targetID)
		} else {
			err = e.upsertTarget(ctx, entry, targetID)
		}
		if err != nil {
			return fmt.Errorf("target %s: %w", targetID, err)
		}
	}
	return nil
}

func (e *Engine) correctTarget(ctx context.Context, entry *models.PendingStartEvent, targetID string) error {
	recordID, ok := entry.CorrectionTargetFor(targetID)
	if !ok {
		return ErrMissingCorrectionTarget
	}
	if _, err := e.remote.UpdateStartTime(ctx, recordID, entry.CapturedTimestamp); err != nil {
		return fmt.Errorf("failed to update record %s: %w", recordID, err)
	}
	return nil
}

func (e *Engine) upsertTarget(ctx context.Context, entry *models.PendingStartEvent, targetID string) error {
	existing, err := e.remote.FindStartByTarget(ctx, targetID)
	switch {
	case err == nil:
		if _, err := e.remote.UpdateStartTime(ctx, existing.ID, entry.CapturedTimestamp); err != nil {
			return fmt.Errorf("failed to update record %s: %w", existing.ID, err)
		}
		return nil
	case errors.Is(err, clientapi.ErrNotFound):
		_, err := e.remote.CreateStart(ctx, api.CreateStartRequest{
			TargetID:     targetID,
			EventGroupID: entry.EventGroupID,
			Name:         entry.DisplayName(targetID),
			StartTime:    entry.CapturedTimestamp,
		})
		if err != nil {
			return fmt.Errorf("failed to create record: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to look up record: %w", err)
	}
}

// SyncPendingStarts runs one batch over every retryable entry. A call that
// overlaps a running batch returns ErrSyncInProgress and makes the running
// batch pass once more when it finishes.
func (e *Engine) SyncPendingStarts(ctx context.Context) (*SyncResult, error) {
	return e.syncPending(ctx, true)
}

func (e *Engine) syncPending(ctx context.Context, followUp bool) (*SyncResult, error) {
	if !e.online() {
		e.logger.Debug("Skipping sync, server is offline")
		return nil, ErrOffline
	}

	if !e.inFlight.CompareAndSwap(false, true) {
		e.rerun.Store(true)
		return nil, ErrSyncInProgress
	}
	defer e.inFlight.Store(false)

	total := &SyncResult{}
	for {
		e.rerun.Store(false)

		result, err := e.runBatch(ctx)
		total.Attempted += result.Attempted
		total.Synced += result.Synced
		total.Failed += result.Failed
		if err != nil {
			return total, err
		}

		if !e.rerun.Load() {
			break
		}
	}

	if total.Synced > 0 {
		e.outbox.SchedulePurge(e.cfg.PurgeDelay)
	}

	if total.Failed > 0 && followUp && e.cfg.RetryDelay > 0 {
		e.scheduleFollowUp()
	}

	if total.Attempted > 0 {
		e.logger.Info("Synchronization completed",
			"attempted", total.Attempted,
			"synced", total.Synced,
			"failed", total.Failed)
	}

	e.bus.Publish(events.TopicSyncCompleted, *total)
	return total, nil
}

func (e *Engine) runBatch(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	for _, entry := range e.outbox.Pending(e.cfg.MaxRetries) {
		if err := e.waitBackoff(ctx, entry.RetryCount); err != nil {
			return result, err
		}
		if !e.online() {
			e.logger.Info("Server went offline, stopping sync batch")
			break
		}

		result.Attempted++
		if err := e.SyncEntry(ctx, entry.ID); err != nil {
			result.Failed++
			continue
		}
		result.Synced++
	}

	return result, nil
}

// waitBackoff ждет base * 2^(retryCount-1) перед повтором записи
func (e *Engine) waitBackoff(ctx context.Context, retryCount int) error {
	delay := Backoff(e.cfg.BaseBackoff, retryCount)
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.clock.After(delay):
		return nil
	}
}

// Backoff returns the delay before retry number retryCount. The first
// attempt (retryCount 0) is not delayed.
func Backoff(base time.Duration, retryCount int) time.Duration {
	if retryCount <= 0 || base <= 0 {
		return 0
	}
	shift := min(retryCount-1, 16)
	return base << shift
}

// scheduleFollowUp планирует один повторный проход после RetryDelay
func (e *Engine) scheduleFollowUp() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if e.retryTimer != nil {
		e.retryTimer.Stop()
	}

	e.retryTimer = e.clock.AfterFunc(e.cfg.RetryDelay, func() {
		if _, err := e.syncPending(context.Background(), false); err != nil && !errors.Is(err, ErrSyncInProgress) {
			e.logger.Debug("Follow-up sync skipped", "error", err)
		}
	})
}

// SyncImmediately makes one attempt to sync the entry right after capture.
// A failure leaves the entry to the periodic loop. Synced entries are a
// no-op; exhausted entries need ForceSync.
func (e *Engine) SyncImmediately(ctx context.Context, id string) error {
	entry, err := e.outbox.Get(id)
	if err != nil {
		return err
	}

	switch {
	case entry.IsTerminal():
		return nil
	case entry.Exhausted(e.cfg.MaxRetries):
		return ErrRetriesExhausted
	case entry.Status == models.StatusSyncing:
		return ErrSyncInProgress
	}

	if !e.online() {
		return ErrOffline
	}

	if !e.inFlight.CompareAndSwap(false, true) {
		// Текущий проход подхватит запись
		e.rerun.Store(true)
		return ErrSyncInProgress
	}
	defer e.inFlight.Store(false)

	if err := e.SyncEntry(ctx, id); err != nil {
		return err
	}

	e.outbox.SchedulePurge(e.cfg.PurgeDelay)
	return nil
}

// ForceSync resets the entry to pending and syncs it once
func (e *Engine) ForceSync(ctx context.Context, id string) error {
	if _, err := e.outbox.Reset(ctx, id); err != nil {
		return fmt.Errorf("failed to reset entry: %w", err)
	}
	return e.SyncImmediately(ctx, id)
}

// Run triggers a batch on start, every Interval, when the server comes back
// online and when a start is registered. It returns when ctx is done.
func (e *Engine) Run(ctx context.Context) {
	var registered, online <-chan struct{}
	if e.bus != nil {
		var unsubscribe func()
		registered, unsubscribe = e.bus.Notify(events.TopicStartRegistered)
		defer unsubscribe()
		online, unsubscribe = e.bus.Notify(events.TopicOnline)
		defer unsubscribe()
	}

	ticker := e.clock.NewTicker(e.cfg.Interval)
	defer ticker.Stop()
	defer e.Close()

	e.trigger(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.trigger(ctx, "interval")
		case <-registered:
			e.trigger(ctx, "registered")
		case <-online:
			e.trigger(ctx, "online")
		}
	}
}

func (e *Engine) trigger(ctx context.Context, reason string) {
	_, err := e.SyncPendingStarts(ctx)
	switch {
	case err == nil, errors.Is(err, ErrOffline), errors.Is(err, ErrSyncInProgress):
	case errors.Is(err, context.Canceled):
	default:
		e.logger.Warn("Sync batch failed", "reason", reason, "error", err)
	}
}

// Close stops a scheduled follow-up run
func (e *Engine) Close() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if e.retryTimer != nil {
		e.retryTimer.Stop()
		e.retryTimer = nil
	}
}

func (e *Engine) online() bool {
	return e.conn == nil || e.conn.Online()
}
