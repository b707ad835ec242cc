package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
	assert.Equal(t, "hard", cfg.Game.Difficulty)
	assert.Equal(t, time.Second, cfg.Game.ThinkDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.SelectDelay)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
log-level: debug
http:
  addr: ":9090"
storage:
  path: games.db
telemetry:
  exporter: stdout
game:
  difficulty: easy
  think-delay: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "games.db", cfg.Storage.Path)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)
	assert.Equal(t, "easy", cfg.Game.Difficulty)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.ThinkDelay)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("BOT_DIFFICULTY", "medium")
	t.Setenv("STORAGE_PATH", "ledger.db")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, "medium", cfg.Game.Difficulty)
	assert.Equal(t, "ledger.db", cfg.Storage.Path)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"Unknown difficulty", "BOT_DIFFICULTY", "impossible"},
		{"Unknown exporter", "OTEL_EXPORTER", "zipkin"},
		{"Unknown log level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))

			assert.Error(t, err)
		})
	}
}

func TestLoad_UsesConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: warn\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
