// Package config defines process configuration for the race server and the
// start-control client.
//
// Values are layered: defaults, then an optional YAML file named by
// STARTLINE_CONFIG, then STARTLINE_* environment variables.
package config

import (
	"time"

	"github.com/iudanet/startline/internal/client/sync"
	"github.com/iudanet/startline/internal/clockoffset"
)

// Server contains race server configuration.
type Server struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the sqlite database file.
	DBPath string `koanf:"db_path"`

	// JWTSecret signs organizer access tokens.
	JWTSecret string `koanf:"jwt_secret"`

	// NATSURL enables live tracking fan-out when set.
	NATSURL string `koanf:"nats_url"`

	// NATSSubject is the subject prefix for tracking points.
	NATSSubject string `koanf:"nats_subject"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// JWTTTL is the lifetime of minted tokens.
	JWTTTL time.Duration `koanf:"jwt_ttl"`
}

// Client contains start-control client configuration.
type Client struct {
	ServerURL   string `koanf:"server_url"`
	DBPath      string `koanf:"db_path"`
	AccessToken string `koanf:"access_token"`
	LogLevel    string `koanf:"log_level"`

	// MetricsAddr exposes client metrics when set (unattended kiosks).
	MetricsAddr string `koanf:"metrics_addr"`

	OffsetInterval       time.Duration `koanf:"offset_interval"`
	ProbePause           time.Duration `koanf:"probe_pause"`
	ProbeTimeout         time.Duration `koanf:"probe_timeout"`
	SyncInterval         time.Duration `koanf:"sync_interval"`
	RetryDelay           time.Duration `koanf:"retry_delay"`
	PurgeDelay           time.Duration `koanf:"purge_delay"`
	BaseBackoff          time.Duration `koanf:"base_backoff"`
	ConnectivityInterval time.Duration `koanf:"connectivity_interval"`
	ProbeSamples         int           `koanf:"probe_samples"`
	MaxRetries           int           `koanf:"max_retries"`
}

// NewServer returns server defaults.
func NewServer() *Server {
	return &Server{
		Addr:        ":8080",
		DBPath:      "startline.db",
		NATSSubject: "startline.tracking",
		LogLevel:    "info",
		JWTTTL:      24 * time.Hour,
	}
}

// NewClient returns client defaults.
func NewClient() *Client {
	offset := clockoffset.DefaultConfig()
	engine := sync.DefaultConfig()

	return &Client{
		ServerURL:            "http://localhost:8080",
		DBPath:               "startline-client.db",
		LogLevel:             "info",
		OffsetInterval:       offset.Interval,
		ProbeSamples:         offset.Samples,
		ProbePause:           offset.Pause,
		ProbeTimeout:         offset.ProbeTimeout,
		SyncInterval:         engine.Interval,
		RetryDelay:           engine.RetryDelay,
		PurgeDelay:           engine.PurgeDelay,
		MaxRetries:           engine.MaxRetries,
		BaseBackoff:          engine.BaseBackoff,
		ConnectivityInterval: 5 * time.Second,
	}
}

// Estimator returns the clock offset estimator settings.
func (c *Client) Estimator() clockoffset.Config {
	return clockoffset.Config{
		Samples:      c.ProbeSamples,
		Pause:        c.ProbePause,
		ProbeTimeout: c.ProbeTimeout,
		Interval:     c.OffsetInterval,
	}
}

// Sync returns the sync engine settings.
func (c *Client) Sync() sync.Config {
	return sync.Config{
		MaxRetries:  c.MaxRetries,
		BaseBackoff: c.BaseBackoff,
		RetryDelay:  c.RetryDelay,
		PurgeDelay:  c.PurgeDelay,
		Interval:    c.SyncInterval,
	}
}
