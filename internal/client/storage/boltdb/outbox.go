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
	keyPendingStarts = "pending_starts"
)

// SaveOutbox overwrites the whole outbox array under a single key
func (s *Storage) SaveOutbox(ctx context.Context, entries []*models.PendingStartEvent) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if entries == nil {
		entries = []*models.PendingStartEvent{}
	}

	// Сериализуем весь outbox в JSON
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketOutbox)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		if err := bucket.Put([]byte(keyPendingStarts), data); err != nil {
			return fmt.Errorf("failed to save outbox: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// LoadOutbox reads the persisted outbox array
func (s *Storage) LoadOutbox(ctx context.Context) ([]*models.PendingStartEvent, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	entries := []*models.PendingStartEvent{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			// Нет bucket - возвращаем пустой outbox
			return nil
		}

		data := bucket.Get([]byte(keyPendingStarts))
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to unmarshal outbox: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load outbox: %w", err)
	}

	return entries, nil
}
