package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pairing/internal/domain"
	"pairing/internal/logging"
	"pairing/internal/relay"
	"pairing/internal/retry"
)

// DefaultRelayURL is the directory base URL used when none is configured.
const DefaultRelayURL = "http://127.0.0.1:8000/"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string        // state directory, e.g. $HOME/.pairing
	RelayURL       string        // directory base URL
	RequestTimeout time.Duration // per-attempt transport timeout
	MaxElapsed     time.Duration // retry ceiling for transport failures
	LogLevel       string

	// NewTransport overrides the HTTP transport; nil uses net/http.
	NewTransport domain.TransportFactory
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Home:           DefaultHome(),
		RelayURL:       DefaultRelayURL,
		RequestTimeout: relay.DefaultTimeout,
		MaxElapsed:     retry.DefaultMaxElapsedTime,
		LogLevel:       "info",
	}
}

type fileConfig struct {
	Home           string `toml:"home"`
	RelayURL       string `toml:"relay_url"`
	RequestTimeout string `toml:"request_timeout"`
	MaxElapsed     string `toml:"max_elapsed"`
	LogLevel       string `toml:"log_level"`
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys absent from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("home") {
		cfg.Home = strings.TrimSpace(raw.Home)
	}
	if meta.IsDefined("relay_url") {
		cfg.RelayURL = strings.TrimSpace(raw.RelayURL)
	}
	if meta.IsDefined("request_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RequestTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if meta.IsDefined("max_elapsed") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.MaxElapsed))
		if err != nil {
			return Config{}, fmt.Errorf("parse max_elapsed: %w", err)
		}
		cfg.MaxElapsed = d
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("config: home is empty")
	}
	u, err := url.Parse(c.RelayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: relay_url %q is not an absolute URL", c.RelayURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxElapsed <= 0 {
		return fmt.Errorf("config: max_elapsed must be positive, got %s", c.MaxElapsed)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
