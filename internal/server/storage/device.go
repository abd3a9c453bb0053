package storage

import (
	"context"

	"github.com/iudanet/startline/internal/models"
)

//go:generate moq -out device_mock.go . DeviceStorage

// DeviceStorage defines interface for the GPS tracker registry
type DeviceStorage interface {
	// GetDevice retrieves a tracker by IMEI
	// Returns ErrDeviceNotFound if the tracker is not registered
	GetDevice(ctx context.Context, imei string) (*models.Device, error)

	// UpsertDevice registers a tracker or replaces its binding
	UpsertDevice(ctx context.Context, device *models.Device) error
}
