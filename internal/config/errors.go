package config

import "errors"

// Ошибки валидации конфигурации
var (
	ErrEmptyAddr        = errors.New("addr must not be empty")
	ErrEmptyDBPath      = errors.New("db_path must not be empty")
	ErrEmptyJWTSecret   = errors.New("jwt_secret must not be empty")
	ErrEmptyServerURL   = errors.New("server_url must not be empty")
	ErrInvalidSamples   = errors.New("probe_samples must be positive")
	ErrInvalidRetries   = errors.New("max_retries must be positive")
	ErrInvalidIntervals = errors.New("intervals must be positive")
)
