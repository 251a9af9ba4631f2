package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairing/internal/app"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv(app.HomeEnv, "/tmp/pairing-home")
	cfg := app.DefaultConfig()

	assert.Equal(t, "/tmp/pairing-home", cfg.Home)
	assert.Equal(t, "http://127.0.0.1:8000/", cfg.RelayURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.MaxElapsed)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_OverridesOnlyDefinedKeys(t *testing.T) {
	t.Setenv(app.HomeEnv, "/tmp/pairing-home")
	path := writeConfig(t, `
relay_url = "https://relay.example.com/api/"
request_timeout = "3s"
log_level = "debug"
`)

	cfg, err := app.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pairing-home", cfg.Home)
	assert.Equal(t, "https://relay.example.com/api/", cfg.RelayURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.MaxElapsed)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"bad duration":   `max_elapsed = "soon"`,
		"unknown key":    `relay = "http://x/"`,
		"relative url":   `relay_url = "relay.local"`,
		"bad level":      `log_level = "loud"`,
		"zero timeout":   `request_timeout = "0s"`,
		"not toml":       `relay_url = `,
		"negative limit": `max_elapsed = "-1s"`,
		"unbounded retry": `max_elapsed = "0s"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := app.LoadConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := app.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
