package storage

import (
	"context"
	"time"

	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out start_mock.go . StartStorage

// StartStorage defines interface for official start records
type StartStorage interface {
	// GetStartByTarget retrieves the record of a target
	// Returns ErrStartNotFound if the target has no record
	GetStartByTarget(ctx context.Context, targetID string) (*models.StartRecord, error)

	// CreateStart stores a new record
	// Returns ErrStartExists if the target already has one
	CreateStart(ctx context.Context, record *models.StartRecord) error

	// UpdateStartTime changes the start time of an existing record
	// Returns ErrStartNotFound if the record doesn't exist
	UpdateStartTime(ctx context.Context, id string, startTime, updatedAt time.Time) (*models.StartRecord, error)
}
