// Package broadcast fans accepted tracking points out to live subscribers
// over NATS. Delivery is best effort: the point is already stored when it
// is published.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out conn_mock.go . Conn

// Publisher публикует принятые точки трека
type Publisher interface {
	PublishPoint(ctx context.Context, point *models.TrackingPoint) error
	Close()
}

// Conn подмножество *nats.Conn, используемое издателем
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher публикует точки в subject <prefix>.<kind>.<imei>
type NATSPublisher struct {
	conn   Conn
	logger *slog.Logger
	prefix string
}

// NewNATSPublisher wraps an established connection
func NewNATSPublisher(conn Conn, prefix string, logger *slog.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		logger: logger,
		prefix: prefix,
	}
}

// Connect dials NATS with infinite reconnects and returns a publisher
func Connect(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("startline-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("NATS error", "error", err)
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	logger.Info("Connected to NATS", "url", nc.ConnectedUrl(), "subject_prefix", prefix)
	return NewNATSPublisher(nc, prefix, logger), nil
}

// Subject returns the subject a point is published on
func (p *NATSPublisher) Subject(point *models.TrackingPoint) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, point.Kind, point.IMEI)
}

// PublishPoint serializes the point as JSON and publishes it
func (p *NATSPublisher) PublishPoint(ctx context.Context, point *models.TrackingPoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("marshal tracking point: %w", err)
	}

	subject := p.Subject(point)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	p.logger.Debug("Tracking point published", "subject", subject)
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("Failed to drain NATS connection", "error", err)
	}
}

// NopPublisher используется, когда NATS не настроен
type NopPublisher struct{}

func (NopPublisher) PublishPoint(context.Context, *models.TrackingPoint) error { return nil }

func (NopPublisher) Close() {}
