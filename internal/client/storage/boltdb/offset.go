package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/startline/internal/client/storage"
	"github.com/iudanet/startline/internal/models"
)

const (
	keyClockOffset = "clock_offset"
)

// SaveOffset saves the clock offset state
func (s *Storage) SaveOffset(ctx context.Context, state models.ClockOffsetState) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal offset state: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketClock)
		if bucket == nil {
			return fmt.Errorf("clock bucket not found")
		}

		if err := bucket.Put([]byte(keyClockOffset), data); err != nil {
			return fmt.Errorf("failed to save offset state: %w", err)
		}

		return nil
	})
}

// LoadOffset retrieves the clock offset state
// Returns storage.ErrOffsetNotFound if nothing was saved yet
func (s *Storage) LoadOffset(ctx context.Context) (models.ClockOffsetState, error) {
	var state models.ClockOffsetState

	if s.db == nil {
		return state, storage.ErrStorageClosed
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketClock)
		if bucket == nil {
			return fmt.Errorf("clock bucket not found")
		}

		data := bucket.Get([]byte(keyClockOffset))
		if data == nil {
			return storage.ErrOffsetNotFound
		}

		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("failed to unmarshal offset state: %w", err)
		}

		return nil
	})

	if err != nil {
		return models.ClockOffsetState{}, err
	}

	return state, nil
}
