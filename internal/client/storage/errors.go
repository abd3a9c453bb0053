package storage

import "errors"

// Common client storage errors
var (
	// ErrOffsetNotFound indicates that no clock offset was persisted yet
	ErrOffsetNotFound = errors.New("clock offset state not found")

	// ErrOutboxEntryNotFound indicates that outbox entry was not found
	ErrOutboxEntryNotFound = errors.New("outbox entry not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrDatabaseLocked indicates that another process holds the database file
	ErrDatabaseLocked = errors.New("database is held by another process (is the station daemon running?)")
)
