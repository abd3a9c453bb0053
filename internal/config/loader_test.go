package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv(envFileVar, "")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 3, cfg.ProbeSamples)
	assert.Equal(t, 100*time.Millisecond, cfg.ProbePause)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 5*time.Minute, cfg.OffsetInterval)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 10*time.Second, cfg.RetryDelay)
	assert.Equal(t, 3*time.Second, cfg.PurgeDelay)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BaseBackoff)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadClient_EnvOverrides(t *testing.T) {
	t.Setenv(envFileVar, "")
	t.Setenv("STARTLINE_SERVER_URL", "https://race.example.com")
	t.Setenv("STARTLINE_ACCESS_TOKEN", "token-1")
	t.Setenv("STARTLINE_SYNC_INTERVAL", "1m")
	t.Setenv("STARTLINE_MAX_RETRIES", "7")
	t.Setenv("STARTLINE_PROBE_SAMPLES", "5")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "https://race.example.com", cfg.ServerURL)
	assert.Equal(t, "token-1", cfg.AccessToken)
	assert.Equal(t, time.Minute, cfg.SyncInterval)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 5, cfg.ProbeSamples)

	// Производные настройки компонентов
	assert.Equal(t, 5, cfg.Estimator().Samples)
	assert.Equal(t, 7, cfg.Sync().MaxRetries)
	assert.Equal(t, time.Minute, cfg.Sync().Interval)
}

func TestLoadClient_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	content := []byte("server_url: http://10.0.0.2:8080\nretry_delay: 20s\nmetrics_addr: \":9100\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv(envFileVar, path)
	// Окружение перекрывает файл
	t.Setenv("STARTLINE_RETRY_DELAY", "15s")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.2:8080", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.RetryDelay)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoadClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "empty server url", env: map[string]string{"STARTLINE_SERVER_URL": ""}, wantErr: ErrEmptyServerURL},
		{name: "zero samples", env: map[string]string{"STARTLINE_PROBE_SAMPLES": "0"}, wantErr: ErrInvalidSamples},
		{name: "zero retries", env: map[string]string{"STARTLINE_MAX_RETRIES": "0"}, wantErr: ErrInvalidRetries},
		{name: "zero interval", env: map[string]string{"STARTLINE_SYNC_INTERVAL": "0s"}, wantErr: ErrInvalidIntervals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envFileVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadClient()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadClient_MissingFile(t *testing.T) {
	t.Setenv(envFileVar, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadClient()
	assert.Error(t, err)
}

func TestLoadServer(t *testing.T) {
	t.Setenv(envFileVar, "")
	t.Setenv("STARTLINE_JWT_SECRET", "secret")
	t.Setenv("STARTLINE_ADDR", ":9090")
	t.Setenv("STARTLINE_JWT_TTL", "12h")
	t.Setenv("STARTLINE_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "startline.tracking", cfg.NATSSubject)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadServer_RequiresSecret(t *testing.T) {
	t.Setenv(envFileVar, "")
	t.Setenv("STARTLINE_JWT_SECRET", "")

	_, err := LoadServer()
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}
