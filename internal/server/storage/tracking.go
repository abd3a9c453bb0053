package storage

import (
	"context"

	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out tracking_mock.go . TrackingStorage

// TrackingStorage defines interface for runner and moto tracking tables
type TrackingStorage interface {
	// InsertPoint stores the point in the table selected by point.Kind
	// Returns ErrUnknownDeviceKind for any other kind
	InsertPoint(ctx context.Context, point *models.TrackingPoint) error

	// ListPoints returns the points of one bound entity ordered by time
	ListPoints(ctx context.Context, kind models.DeviceKind, boundID string) ([]*models.TrackingPoint, error)
}
