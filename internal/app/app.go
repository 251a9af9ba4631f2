package app

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the default state directory.
const HomeEnv = "PAIRING_HOME"

// DefaultHome returns $PAIRING_HOME, else $HOME/.pairing, else ./.pairing.
func DefaultHome() string {
	if h := os.Getenv(HomeEnv); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".pairing")
	}
	return ".pairing"
}

// ConfigPath is where the CLI looks for a config file inside home.
func ConfigPath(home string) string { return filepath.Join(home, "config.toml") }
