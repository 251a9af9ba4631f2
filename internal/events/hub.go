package events

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pairing/internal/domain"
)

// Hub owns the message and log-record bridges.
type Hub struct {
	Messages *Bridge[string]
	Logs     *Bridge[domain.LogRecord]
}

// NewHub returns a hub with two independent, uninitialized bridges.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Messages: NewBridge[string]("messages", log),
		Logs:     NewBridge[domain.LogRecord]("logs", log),
	}
}

// Close drains and stops both bridges.
func (h *Hub) Close() {
	h.Messages.Close()
	h.Logs.Close()
}

var (
	defaultHub  *Hub
	defaultOnce sync.Once
)

// Default returns the process-wide hub, building it on first use. Its
// bridges report panics to stderr only, never to the log bridge.
func Default() *Hub {
	defaultOnce.Do(func() {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("component", "events").Logger()
		defaultHub = NewHub(log)
	})
	return defaultHub
}
