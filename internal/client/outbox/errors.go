package outbox

import "errors"

// Ошибки валидации и состояния outbox
var (
	// ErrNoTargets indicates a registration without any target
	ErrNoTargets = errors.New("at least one target is required")

	// ErrEmptyEventGroup indicates a registration without an event group
	ErrEmptyEventGroup = errors.New("event group id is required")

	// ErrCorrectionTargets indicates that correction targets do not pair with targets
	ErrCorrectionTargets = errors.New("correction targets must pair one-to-one with targets")

	// ErrUnexpectedCorrectionTargets indicates correction targets on a new start
	ErrUnexpectedCorrectionTargets = errors.New("correction targets are only allowed for corrections")

	// ErrAlreadySynced indicates an attempt to reset an entry that is already synced
	ErrAlreadySynced = errors.New("entry is already synced")
)
