package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/storage"
)

func TestTrackingStorage_InsertRoutesByKind(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ts := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)

	runnerPoint := &models.TrackingPoint{
		ID:        uuid.New().String(),
		IMEI:      "1234567890",
		Kind:      models.DeviceKindRunner,
		BoundID:   "runner-42",
		Latitude:  40.5678,
		Longitude: -3.1234,
		Speed:     floatPtr(12.5),
		Battery:   floatPtr(87),
		Timestamp: ts,
	}
	require.NoError(t, s.InsertPoint(ctx, runnerPoint))

	motoPoint := &models.TrackingPoint{
		ID:        uuid.New().String(),
		IMEI:      "555000111",
		Kind:      models.DeviceKindMoto,
		BoundID:   "moto-1",
		Latitude:  40.6,
		Longitude: -3.2,
		Timestamp: ts,
	}
	require.NoError(t, s.InsertPoint(ctx, motoPoint))

	runners, err := s.ListPoints(ctx, models.DeviceKindRunner, "runner-42")
	require.NoError(t, err)
	require.Len(t, runners, 1)

	got := runners[0]
	assert.Equal(t, runnerPoint.ID, got.ID)
	assert.Equal(t, 40.5678, got.Latitude)
	assert.Equal(t, -3.1234, got.Longitude)
	assert.True(t, ts.Equal(got.Timestamp))
	require.NotNil(t, got.Speed)
	assert.Equal(t, 12.5, *got.Speed)
	assert.Nil(t, got.Heading)
	assert.Nil(t, got.Altitude)

	// Точка мотоцикла не попала в таблицу бегунов
	var runnerRows, motoRows int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM runner_tracking`).Scan(&runnerRows))
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM moto_tracking`).Scan(&motoRows))
	assert.Equal(t, 1, runnerRows)
	assert.Equal(t, 1, motoRows)

	motos, err := s.ListPoints(ctx, models.DeviceKindMoto, "moto-1")
	require.NoError(t, err)
	require.Len(t, motos, 1)
	assert.Equal(t, "555000111", motos[0].IMEI)
}

func TestTrackingStorage_ListOrdered(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Minute, 0, time.Minute} {
		require.NoError(t, s.InsertPoint(ctx, &models.TrackingPoint{
			ID:        uuid.New().String(),
			IMEI:      "1234567890",
			Kind:      models.DeviceKindRunner,
			BoundID:   "runner-1",
			Latitude:  1,
			Longitude: 2,
			Timestamp: base.Add(offset),
		}))
	}

	points, err := s.ListPoints(ctx, models.DeviceKindRunner, "runner-1")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, base.Equal(points[0].Timestamp))
	assert.True(t, base.Add(time.Minute).Equal(points[1].Timestamp))
	assert.True(t, base.Add(2*time.Minute).Equal(points[2].Timestamp))

	empty, err := s.ListPoints(ctx, models.DeviceKindRunner, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTrackingStorage_UnknownKind(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.InsertPoint(context.Background(), &models.TrackingPoint{
		ID:   uuid.New().String(),
		Kind: models.DeviceKind("bike"),
	})
	assert.ErrorIs(t, err, storage.ErrUnknownDeviceKind)

	_, err = s.ListPoints(context.Background(), models.DeviceKind("bike"), "x")
	assert.ErrorIs(t, err, storage.ErrUnknownDeviceKind)
}
