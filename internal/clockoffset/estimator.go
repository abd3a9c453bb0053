// Package clockoffset estimates how far the local clock drifts from the
// server clock and corrects captured instants accordingly.
//
// The estimate is NTP-like but simplified: each probe records the local send
// and receive instants around one request and assumes the server stamped its
// response at the midpoint. Several probes are aggregated by median so a
// single slow round trip does not skew the result.
package clockoffset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/client/events"
	"github.com/iudanet/startline/internal/client/storage"
	"github.com/iudanet/startline/internal/metrics"
	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out timesource_mock.go . TimeSource

// ErrNoSamples is returned when every probe of an estimation run failed.
var ErrNoSamples = errors.New("no clock offset sample succeeded")

// TimeSource returns the trusted server time observed in a response.
type TimeSource interface {
	ServerTime(ctx context.Context) (time.Time, error)
}

// Config controls probing and scheduling
type Config struct {
	Samples      int           // количество замеров за одну оценку
	Pause        time.Duration // пауза между замерами
	ProbeTimeout time.Duration // таймаут одного замера
	Interval     time.Duration // период фоновой переоценки
}

// DefaultConfig returns production defaults
func DefaultConfig() Config {
	return Config{
		Samples:      3,
		Pause:        100 * time.Millisecond,
		ProbeTimeout: 5 * time.Second,
		Interval:     5 * time.Minute,
	}
}

// Estimator owns the process-wide clock offset state.
type Estimator struct {
	source  TimeSource
	storage storage.OffsetStorage
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *metrics.Client
	bus     *events.Bus
	state   models.ClockOffsetState
	cfg     Config
	mu      sync.RWMutex
	runMu   sync.Mutex
}

// NewEstimator creates a new estimator. metrics and bus may be nil.
func NewEstimator(
	source TimeSource,
	offsetStorage storage.OffsetStorage,
	clock clockwork.Clock,
	cfg Config,
	logger *slog.Logger,
	m *metrics.Client,
	bus *events.Bus,
) *Estimator {
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultConfig().Samples
	}
	return &Estimator{
		source:  source,
		storage: offsetStorage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		bus:     bus,
	}
}

// Init loads the persisted offset. A missing state means zero offset.
func (e *Estimator) Init(ctx context.Context) error {
	state, err := e.storage.LoadOffset(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrOffsetNotFound) {
			e.logger.Debug("No persisted clock offset, using zero")
			return nil
		}
		return fmt.Errorf("failed to load clock offset: %w", err)
	}

	e.mu.Lock()
	e.state = state
	e.mu.Unlock()

	e.metrics.RecordOffset(state.Offset)
	e.logger.Info("Loaded clock offset", "offset_ms", state.Offset.Milliseconds())
	return nil
}

// EstimateOffset probes the time source and updates the offset.
// When no probe succeeds the previous offset is returned together with
// ErrNoSamples and the persisted state is left untouched.
func (e *Estimator) EstimateOffset(ctx context.Context) (time.Duration, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	samples := make([]time.Duration, 0, e.cfg.Samples)

	for i := 0; i < e.cfg.Samples; i++ {
		if i > 0 && e.cfg.Pause > 0 {
			// Пауза между замерами, чтобы не отправлять запросы пачкой
			select {
			case <-ctx.Done():
				return e.Offset(), ctx.Err()
			case <-e.clock.After(e.cfg.Pause):
			}
		}

		sample, err := e.probe(ctx)
		if err != nil {
			e.metrics.RecordProbeFailure()
			e.logger.Debug("Clock offset probe failed", "attempt", i+1, "error", err)
			continue
		}
		samples = append(samples, sample.Offset())
	}

	if len(samples) == 0 {
		e.metrics.RecordEstimateFailure()
		return e.Offset(), ErrNoSamples
	}

	offset := Median(samples)
	now := e.clock.Now()
	state := models.ClockOffsetState{Offset: offset, LastSyncAt: &now}

	e.mu.Lock()
	e.state = state
	e.mu.Unlock()

	if err := e.storage.SaveOffset(ctx, state); err != nil {
		// Оценка уже применена в памяти, сохранение повторится при следующей оценке
		e.logger.Warn("Failed to persist clock offset", "error", err)
	}

	e.metrics.RecordOffset(offset)
	if e.bus != nil {
		e.bus.Publish(events.TopicOffsetUpdated, offset)
	}

	e.logger.Info("Clock offset estimated",
		"offset_ms", offset.Milliseconds(),
		"samples", len(samples))

	return offset, nil
}

// probe performs one round trip bounded by the probe timeout
func (e *Estimator) probe(ctx context.Context) (models.ClockOffsetSample, error) {
	if e.cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.ProbeTimeout)
		defer cancel()
	}

	t0 := e.clock.Now()
	serverTime, err := e.source.ServerTime(ctx)
	t3 := e.clock.Now()
	if err != nil {
		return models.ClockOffsetSample{}, err
	}

	return models.ClockOffsetSample{
		LocalSendTime:    t0,
		LocalReceiveTime: t3,
		ServerTime:       serverTime,
	}, nil
}

// Offset returns the current local-minus-server offset
func (e *Estimator) Offset() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Offset
}

// State returns a copy of the current offset state
func (e *Estimator) State() models.ClockOffsetState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// CorrectTimestamp converts a local instant to server time.
// A positive offset means the local clock is ahead, so it is subtracted.
func (e *Estimator) CorrectTimestamp(local time.Time) time.Time {
	return local.Add(-e.Offset())
}

// Now returns the corrected current time
func (e *Estimator) Now() time.Time {
	return e.CorrectTimestamp(e.clock.Now())
}

// Run estimates the offset once on start, then re-estimates it every
// Interval and on every receive from triggers (reconnects). Errors are logged and never returned; Run exits
// when ctx is done.
func (e *Estimator) Run(ctx context.Context, triggers <-chan struct{}) {
	interval := e.cfg.Interval
	if interval <= 0 {
		interval = DefaultConfig().Interval
	}

	e.refresh(ctx, "startup")

	ticker := e.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.refresh(ctx, "interval")
		case <-triggers:
			e.refresh(ctx, "reconnect")
		}
	}
}

func (e *Estimator) refresh(ctx context.Context, reason string) {
	if _, err := e.EstimateOffset(ctx); err != nil {
		e.logger.Warn("Clock offset estimation failed, keeping previous offset",
			"reason", reason,
			"offset_ms", e.Offset().Milliseconds(),
			"error", err)
	}
}

// Median returns the median of samples. For an even count it averages the
// two middle values. Median of an empty slice is zero.
func Median(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
