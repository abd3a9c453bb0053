package storage

import (
	"context"

	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out offset_mock.go . OffsetStorage

// OffsetStorage defines interface for persisting the clock offset state
type OffsetStorage interface {
	// SaveOffset overwrites the persisted clock offset state
	SaveOffset(ctx context.Context, state models.ClockOffsetState) error

	// LoadOffset retrieves the persisted clock offset state
	// Returns ErrOffsetNotFound if no estimate was saved yet
	LoadOffset(ctx context.Context) (models.ClockOffsetState, error)
}
