// Package connectivity tracks whether the race server is reachable and
// announces transitions on the event bus.
package connectivity

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/client/events"
	"github.com/iudanet/startline/pkg/api"
)

//go:generate moq -out checker_mock.go . HealthChecker

// HealthChecker probes the server
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// Monitor polls the health endpoint. It starts optimistic: the first
// failed probe publishes TopicOffline.
type Monitor struct {
	checker  HealthChecker
	clock    clockwork.Clock
	logger   *slog.Logger
	bus      *events.Bus
	interval time.Duration
	timeout  time.Duration
	online   atomic.Bool
}

// NewMonitor creates a connectivity monitor. bus may be nil.
func NewMonitor(checker HealthChecker, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, bus *events.Bus) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	m := &Monitor{
		checker:  checker,
		clock:    clock,
		logger:   logger,
		bus:      bus,
		interval: interval,
		timeout:  interval,
	}
	m.online.Store(true)
	return m
}

// Online reports the result of the last probe
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Check probes the server once and publishes a transition if the state changed.
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.checker.Health(ctx)
	online := err == nil

	if m.online.Swap(online) == online {
		return online
	}

	if online {
		m.logger.Info("Server is reachable again")
		m.bus.Publish(events.TopicOnline, nil)
	} else {
		m.logger.Warn("Server is unreachable, working offline", "error", err)
		m.bus.Publish(events.TopicOffline, nil)
	}
	return online
}

// Run probes immediately and then every interval until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.Check(ctx)
		}
	}
}
