package interfaces

import (
	"context"
	"net/http"

	domaintypes "pairing/internal/domain/types"
)

// DirectoryClient is how we talk to the remote session directory. Every
// failure is returned as a *domaintypes.NetworkingError.
type DirectoryClient interface {
	JoinSession(ctx context.Context, key domaintypes.SessionKey) (domaintypes.Session, error)
	Ack(ctx context.Context, correlationID string, expectedCount int) (bool, error)
	Participants(ctx context.Context, sessionID domaintypes.SessionID) (domaintypes.Session, error)
	Delete(ctx context.Context, peerID string) error
}

// Transport executes one HTTP request. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportFactory builds the transport for a single call.
type TransportFactory func() Transport
