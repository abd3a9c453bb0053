package storage

import (
	"context"

	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out outbox_mock.go . OutboxStorage

// OutboxStorage defines interface for persisting the start-event outbox.
// The whole outbox is stored as a single value and overwritten on every save.
type OutboxStorage interface {
	// LoadOutbox returns all persisted outbox entries
	// Returns empty slice if nothing was saved yet
	LoadOutbox(ctx context.Context) ([]*models.PendingStartEvent, error)

	// SaveOutbox overwrites the persisted outbox with entries
	SaveOutbox(ctx context.Context, entries []*models.PendingStartEvent) error
}
