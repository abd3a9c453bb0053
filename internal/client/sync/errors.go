package sync

import "errors"

// Ошибки синхронизации
var (
	// ErrSyncInProgress indicates that another batch is running
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrOffline indicates that the server is not reachable
	ErrOffline = errors.New("server is offline")

	// ErrRetriesExhausted indicates an entry that needs a forced resync
	ErrRetriesExhausted = errors.New("retry limit reached, use resync")

	// ErrMissingCorrectionTarget indicates a correction entry without a paired record id
	ErrMissingCorrectionTarget = errors.New("no correction target paired with target")
)
