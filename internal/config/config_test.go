package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"spacexdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "API_PORT",
	"DATA_SOURCE", "DATA_FILE", "DATA_SHEET", "SYNTHETIC_ROWS", "SYNTHETIC_SEED",
	"DATABASE_URL", "DEFAULT_PAYLOAD_LOW", "DEFAULT_PAYLOAD_HIGH",
	"PPROF_PORT", "PPROF_ENABLED", "LOG_LEVEL",
}

// clearEnv blanks every key Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8050", cfg.Server.Port)
	assert.Equal(t, SourceFile, cfg.Data.Source)
	assert.Equal(t, "spacex_launch_dash.csv", cfg.Data.File)
	assert.Equal(t, 500.0, cfg.Dashboard.DefaultPayloadLow)
	assert.Equal(t, 5000.0, cfg.Dashboard.DefaultPayloadHigh)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_SOURCE", "Synthetic")
	t.Setenv("SYNTHETIC_ROWS", "200")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("DEFAULT_PAYLOAD_HIGH", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, SourceSynthetic, cfg.Data.Source)
	assert.Equal(t, 200, cfg.Data.SyntheticRows)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, 5000.0, cfg.Dashboard.DefaultPayloadHigh, "unparsable values keep the default")
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "dash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
  gin_mode: debug
data:
  source: postgres
database:
  url: postgres://file/db
dashboard:
  default_payload_low: 1000
  default_payload_high: 8000
`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Server.Port, "env wins over file")
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.Equal(t, "postgres://file/db", cfg.Database.URL)
	assert.Equal(t, 1000.0, cfg.Dashboard.DefaultPayloadLow)
	assert.Equal(t, "8051", cfg.API.Port, "unset keys keep defaults")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"DATA_SOURCE": "postgres"}},
		{"unknown source", map[string]string{"DATA_SOURCE": "s3"}},
		{"bad gin mode", map[string]string{"GIN_MODE": "loud"}},
		{"inverted payload range", map[string]string{"DEFAULT_PAYLOAD_LOW": "6000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
