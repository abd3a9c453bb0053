package gps

import "errors"

// Ошибки разбора webhook. Все они означают неисправимый запрос (400),
// повтор с тем же телом не поможет.
var (
	// ErrUnrecognizedFormat indicates that the body is neither JSON nor a GTFRI frame
	ErrUnrecognizedFormat = errors.New("unrecognized gps payload format")

	// ErrMissingIMEI indicates that the payload carries no device identifier
	ErrMissingIMEI = errors.New("missing device imei")

	// ErrInvalidIMEI indicates a device identifier with unsupported characters
	ErrInvalidIMEI = errors.New("invalid device imei")

	// ErrInvalidCoordinates indicates missing or out-of-range coordinates
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidTimestamp indicates an unparsable fix time
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
