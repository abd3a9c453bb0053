package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "STARTLINE_"
	envFileVar = "STARTLINE_CONFIG"
)

// LoadServer builds the server configuration.
func LoadServer() (*Server, error) {
	cfg := NewServer()
	if err := load(cfg); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, ErrEmptyAddr
	}
	if cfg.DBPath == "" {
		return nil, ErrEmptyDBPath
	}
	if cfg.JWTSecret == "" {
		return nil, ErrEmptyJWTSecret
	}
	return cfg, nil
}

// LoadClient builds the client configuration.
func LoadClient() (*Client, error) {
	cfg := NewClient()
	if err := load(cfg); err != nil {
		return nil, err
	}

	if cfg.ServerURL == "" {
		return nil, ErrEmptyServerURL
	}
	if cfg.DBPath == "" {
		return nil, ErrEmptyDBPath
	}
	if cfg.ProbeSamples <= 0 {
		return nil, ErrInvalidSamples
	}
	if cfg.MaxRetries <= 0 {
		return nil, ErrInvalidRetries
	}
	if cfg.OffsetInterval <= 0 || cfg.SyncInterval <= 0 || cfg.ConnectivityInterval <= 0 {
		return nil, ErrInvalidIntervals
	}
	return cfg, nil
}

// load layers the YAML file and environment over the defaults already in target.
func load(target any) error {
	k := koanf.New(".")

	// Файл конфигурации, если задан
	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// STARTLINE_SYNC_INTERVAL -> sync_interval, подчеркивания сохраняются
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	// Список origins из окружения приходит строкой через запятую
	if raw, ok := k.Get("cors_origins").(string); ok {
		origins := splitList(raw)
		k.Delete("cors_origins")
		if err := k.Set("cors_origins", origins); err != nil {
			return fmt.Errorf("failed to parse cors_origins: %w", err)
		}
	}

	if err := k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var result []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// ParseLogLevel maps debug, info, warn or error to a slog level.
// Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
