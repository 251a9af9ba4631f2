package app

import (
	"io"

	"github.com/rs/zerolog"

	"pairing/internal/crypto"
	"pairing/internal/domain"
	"pairing/internal/events"
	"pairing/internal/logging"
	"pairing/internal/relay"
	"pairing/internal/retry"
	sessionsvc "pairing/internal/services/session"
	"pairing/internal/store"
)

// Wire bundles the services, clients and stores the commands use.
type Wire struct {
	Config    Config
	Log       zerolog.Logger
	Hub       *events.Hub
	Directory domain.DirectoryClient
	Sessions  *sessionsvc.Service
	Keys      domain.KeyStore
	Generator domain.KeyGenerator
}

// WireOption customises NewWire.
type WireOption func(*wireOptions)

type wireOptions struct {
	hub     *events.Hub
	console io.Writer
	noColor bool
}

// WithHub routes log lines to hub's log bridge.
func WithHub(h *events.Hub) WireOption { return func(o *wireOptions) { o.hub = h } }

// WithConsole sends human-readable log lines to w.
func WithConsole(w io.Writer, noColor bool) WireOption {
	return func(o *wireOptions) { o.console, o.noColor = w, noColor }
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, opts ...WireOption) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o wireOptions
	for _, opt := range opts {
		opt(&o)
	}

	logCfg := logging.Config{App: "pairing", Level: cfg.LogLevel, Out: o.console, NoColor: o.noColor}
	if o.hub != nil {
		logCfg.Bridge = o.hub.Logs
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	keys, err := store.NewKeyFileStore(cfg.Home)
	if err != nil {
		return nil, err
	}

	policy := retry.DefaultPolicy()
	policy.MaxElapsedTime = cfg.MaxElapsed
	relayOpts := []relay.Option{
		relay.WithTimeout(cfg.RequestTimeout),
		relay.WithPolicy(policy),
		relay.WithLogger(log.With().Str("component", "relay").Logger()),
	}
	if cfg.NewTransport != nil {
		relayOpts = append(relayOpts, relay.WithTransport(cfg.NewTransport))
	}
	rc := relay.NewHTTP(cfg.RelayURL, relayOpts...)

	sessions := sessionsvc.New(rc, sessionsvc.WithLogger(log.With().Str("component", "session").Logger()))

	return &Wire{
		Config:    cfg,
		Log:       log,
		Hub:       o.hub,
		Directory: rc,
		Sessions:  sessions,
		Keys:      keys,
		Generator: crypto.X25519Generator{},
	}, nil
}
