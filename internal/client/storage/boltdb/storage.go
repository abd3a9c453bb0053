package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/startline/internal/client/storage"
)

// lockTimeout ограничивает ожидание файловой блокировки БД
const lockTimeout = time.Second

var (
	// BoltDB bucket names
	bucketOutbox = []byte("outbox")
	bucketClock  = []byte("clock")
)

// Storage represents BoltDB storage implementation for the start-control client.
// It implements both storage.OutboxStorage and storage.OffsetStorage.
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file. The file is locked
// exclusively; if another process holds it, New fails with
// storage.ErrDatabaseLocked after a short wait.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", storage.ErrDatabaseLocked, dbPath)
		}
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Bucket для очереди стартов
		if _, err := tx.CreateBucketIfNotExists(bucketOutbox); err != nil {
			return fmt.Errorf("failed to create outbox bucket: %w", err)
		}

		// Bucket для состояния смещения часов
		if _, err := tx.CreateBucketIfNotExists(bucketClock); err != nil {
			return fmt.Errorf("failed to create clock bucket: %w", err)
		}

		return nil
	})
}
