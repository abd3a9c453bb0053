package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/storage"
)

// GetDevice retrieves a tracker by IMEI
func (s *Storage) GetDevice(ctx context.Context, imei string) (*models.Device, error) {
	query := `
		SELECT imei, kind, bound_id, active, created_at, updated_at
		FROM devices
		WHERE imei = ?
	`

	device := &models.Device{}
	var kind string

	err := s.db.QueryRowContext(ctx, query, imei).Scan(
		&device.IMEI,
		&kind,
		&device.BoundID,
		&device.Active,
		&device.CreatedAt,
		&device.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	device.Kind = models.DeviceKind(kind)
	return device, nil
}

// UpsertDevice registers a tracker or replaces its binding.
// created_at of an existing tracker is kept.
func (s *Storage) UpsertDevice(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (imei, kind, bound_id, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(imei) DO UPDATE SET
			kind = excluded.kind,
			bound_id = excluded.bound_id,
			active = excluded.active,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		device.IMEI,
		string(device.Kind),
		device.BoundID,
		device.Active,
		device.CreatedAt.UTC(),
		device.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert device: %w", err)
	}

	return nil
}
