package mobile

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"pairing/internal/crypto"
	"pairing/internal/domain"
	"pairing/internal/events"
	"pairing/internal/logging"
	"pairing/internal/relay"
	"pairing/internal/retry"
	"pairing/internal/services/session"
)

// DefaultBaseURL is the directory the apps talk to unless told otherwise.
const DefaultBaseURL = "http://127.0.0.1:8000/"

// Client exposes the session operations to the apps. Its log lines go to
// the log callback.
type Client struct {
	sessions *session.Service
	log      zerolog.Logger
}

// NewClient returns a client for the directory at baseURL. An empty baseURL
// selects DefaultBaseURL and an empty logLevel selects info. timeoutMillis
// bounds each attempt; zero keeps the default.
func NewClient(baseURL, logLevel string, timeoutMillis int64) (*Client, error) {
	log, err := logging.New(logging.Config{
		App:    "pairing-mobile",
		Level:  logLevel,
		Out:    io.Discard,
		Bridge: events.Default().Logs,
	})
	if err != nil {
		return nil, domain.Generalf("configure logging: %v", err)
	}
	return newClient(baseURL, log, relay.WithTimeout(timeout(timeoutMillis)))
}

func timeout(ms int64) time.Duration {
	if ms <= 0 {
		return relay.DefaultTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

func newClient(baseURL string, log zerolog.Logger, opts ...relay.Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts = append([]relay.Option{
		relay.WithPolicy(retry.DefaultPolicy()),
		relay.WithLogger(log.With().Str("component", "relay").Logger()),
	}, opts...)
	rc := relay.NewHTTP(baseURL, opts...)
	return &Client{
		sessions: session.New(rc, session.WithLogger(log.With().Str("component", "session").Logger())),
		log:      log,
	}, nil
}

// StartSession creates a session holding key. An empty sessionID asks for a
// fresh one.
func (c *Client) StartSession(sessionID, key string) *SessionResult {
	return sessionResult(c.sessions.StartSession(domain.SessionID(sessionID), domain.NewPublicKey(key)))
}

// JoinSession adds key to an existing session.
func (c *Client) JoinSession(sessionID, key string) *SessionResult {
	return sessionResult(c.sessions.JoinSession(domain.SessionID(sessionID), domain.NewPublicKey(key)))
}

// Ack reports how many participants this device has seen.
func (c *Client) Ack(uuid string, storedParticipants int) *AckResult {
	ready, err := c.sessions.Ack(uuid, storedParticipants)
	return &AckResult{Failure: failure(err), Ready: ready}
}

// Participants fetches the current key list.
func (c *Client) Participants(sessionID string) *SessionResult {
	return sessionResult(c.sessions.Participants(domain.SessionID(sessionID)))
}

// Delete marks a participant deleted.
func (c *Client) Delete(peerID string) *DeleteResult {
	return &DeleteResult{Failure: failure(c.sessions.Delete(peerID))}
}

// Refresh runs one polling round for the participant holding key.
func (c *Client) Refresh(sessionID, key string) *RefreshResult {
	res, err := c.sessions.Refresh(domain.SessionID(sessionID), domain.NewPublicKey(key))
	out := &RefreshResult{Failure: failure(err), Ready: res.Ready, Deleted: res.Deleted}
	if err == nil {
		out.SessionJSON = sessionResult(res.Session, nil).SessionJSON
	}
	return out
}

// ParticipantID returns the id the directory uses for key.
func ParticipantID(key string) string {
	return domain.NewPublicKey(key).ParticipantID().String()
}

// CreateKeyPair returns the key pair from the session facade. The apps
// generate real keys with the platform's crypto; this returns empty
// material.
func (c *Client) CreateKeyPair() *KeyPairResult {
	kp, err := c.sessions.CreateKeyPair()
	if err != nil {
		return &KeyPairResult{Failure: failure(err)}
	}
	return &KeyPairResult{
		Failure: Failure{Status: StatusOK},
		Private: crypto.B64(kp.Private),
		Public:  crypto.B64(kp.Public),
	}
}
