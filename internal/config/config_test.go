package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "calendar"
password = "secret"
dbname = "calendar"

[scheduling]
suggestion_limit = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30, cfg.Scheduling.DefaultSlotIncrementMinutes)
	assert.Equal(t, 730, cfg.Scheduling.RecurrenceHorizonDays)
	assert.Equal(t, 5, cfg.Scheduling.SuggestionLimit)
	assert.Equal(t,
		"host=localhost port=5432 user=calendar password=secret dbname=calendar sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 70000

[database]
host = "localhost"
dbname = "calendar"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
