package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/storage"
)

// trackingTable возвращает таблицу и колонку привязки для типа трекера
func trackingTable(kind models.DeviceKind) (table, boundColumn string, err error) {
	switch kind {
	case models.DeviceKindRunner:
		return "runner_tracking", "runner_id", nil
	case models.DeviceKindMoto:
		return "moto_tracking", "moto_id", nil
	default:
		return "", "", fmt.Errorf("%w: %q", storage.ErrUnknownDeviceKind, kind)
	}
}

// InsertPoint stores the point in runner_tracking or moto_tracking
func (s *Storage) InsertPoint(ctx context.Context, point *models.TrackingPoint) error {
	table, boundColumn, err := trackingTable(point.Kind)
	if err != nil {
		return err
	}

	// Имена таблицы и колонки берутся только из trackingTable
	query := fmt.Sprintf(`
		INSERT INTO %s (id, imei, %s, latitude, longitude, speed, heading, altitude, battery, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, table, boundColumn)

	_, err = s.db.ExecContext(ctx, query,
		point.ID,
		point.IMEI,
		point.BoundID,
		point.Latitude,
		point.Longitude,
		point.Speed,
		point.Heading,
		point.Altitude,
		point.Battery,
		point.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tracking point: %w", err)
	}

	return nil
}

// ListPoints returns the points of one runner or moto ordered by time
func (s *Storage) ListPoints(ctx context.Context, kind models.DeviceKind, boundID string) ([]*models.TrackingPoint, error) {
	table, boundColumn, err := trackingTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, imei, %s, latitude, longitude, speed, heading, altitude, battery, timestamp
		FROM %s
		WHERE %s = ?
		ORDER BY timestamp ASC
	`, boundColumn, table, boundColumn)

	rows, err := s.db.QueryContext(ctx, query, boundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking points: %w", err)
	}
	defer rows.Close()

	var points []*models.TrackingPoint
	for rows.Next() {
		p := &models.TrackingPoint{Kind: kind}
		var speed, heading, altitude, battery sql.NullFloat64

		if err := rows.Scan(
			&p.ID,
			&p.IMEI,
			&p.BoundID,
			&p.Latitude,
			&p.Longitude,
			&speed,
			&heading,
			&altitude,
			&battery,
			&p.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tracking point: %w", err)
		}

		p.Speed = nullFloat(speed)
		p.Heading = nullFloat(heading)
		p.Altitude = nullFloat(altitude)
		p.Battery = nullFloat(battery)
		p.Timestamp = p.Timestamp.UTC()
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracking points: %w", err)
	}

	return points, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
