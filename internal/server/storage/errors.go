package storage

import "errors"

// Common storage errors
var (
	// ErrDeviceNotFound indicates that the tracker is not registered or inactive
	ErrDeviceNotFound = errors.New("device not found")

	// ErrStartNotFound indicates that start record was not found
	ErrStartNotFound = errors.New("start record not found")

	// ErrStartExists indicates that the target already has a start record
	ErrStartExists = errors.New("start record already exists for target")

	// ErrUnknownDeviceKind indicates a tracking point without a destination table
	ErrUnknownDeviceKind = errors.New("unknown device kind")
)
