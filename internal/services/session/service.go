package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pairing/internal/domain"
)

// Service is the facade over a DirectoryClient.
type Service struct {
	directory domain.DirectoryClient
	newID     func() string
	log       zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the generator used for fresh session ids.
func WithIDGenerator(f func() string) Option { return func(s *Service) { s.newID = f } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// New returns a Service calling directory.
func New(directory domain.DirectoryClient, opts ...Option) *Service {
	s := &Service{
		directory: directory,
		newID:     uuid.NewString,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession joins a session the caller is creating. An empty id is
// replaced by a fresh one; otherwise this is the same call as JoinSession.
func (s *Service) StartSession(id domain.SessionID, key domain.PublicKey) (domain.Session, error) {
	if strings.TrimSpace(id.String()) == "" {
		id = domain.SessionID(s.newID())
	}
	sess, err := s.JoinSession(id, key)
	s.log.Debug().Str("session_id", id.String()).Err(err).Msg("start session")
	return sess, err
}

// JoinSession adds key to session id and returns the directory's key list.
func (s *Service) JoinSession(id domain.SessionID, key domain.PublicKey) (domain.Session, error) {
	if err := requireID("session id", id.String()); err != nil {
		return domain.Session{}, err
	}
	if key.IsZero() {
		return domain.Session{}, domain.Generalf("public key is empty")
	}
	sess, err := s.directory.JoinSession(context.Background(), domain.SessionKey{SessionID: id, Key: key})
	s.log.Debug().Str("session_id", id.String()).Int("keys", len(sess.Keys)).Err(err).Msg("join session")
	return sess, err
}

// Ack reports expectedCount stored participants for correlationID and returns
// the directory's readiness flag as-is.
func (s *Service) Ack(correlationID string, expectedCount int) (bool, error) {
	if err := requireID("correlation id", correlationID); err != nil {
		return false, err
	}
	if expectedCount < 0 {
		return false, domain.Generalf("expected count must not be negative, got %d", expectedCount)
	}
	ready, err := s.directory.Ack(context.Background(), correlationID, expectedCount)
	s.log.Debug().Str("uuid", correlationID).Bool("ready", ready).Err(err).Msg("ack")
	return ready, err
}

// Participants fetches the current key list of session id.
func (s *Service) Participants(id domain.SessionID) (domain.Session, error) {
	if err := requireID("session id", id.String()); err != nil {
		return domain.Session{}, err
	}
	sess, err := s.directory.Participants(context.Background(), id)
	s.log.Debug().Str("session_id", id.String()).Int("keys", len(sess.Keys)).Err(err).Msg("participants")
	return sess, err
}

// Delete marks peerID deleted on the directory.
func (s *Service) Delete(peerID string) error {
	if err := requireID("peer id", peerID); err != nil {
		return err
	}
	err := s.directory.Delete(context.Background(), peerID)
	s.log.Debug().Str("peer_id", peerID).Err(err).Msg("delete")
	return err
}

// CreateKeyPair returns empty key material. Real keys come from the host
// platform through a domain.KeyGenerator.
func (s *Service) CreateKeyPair() (domain.KeyPair, error) {
	return domain.KeyPair{Private: []byte{}, Public: []byte{}}, nil
}

func requireID(what, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.Generalf("%s is empty", what)
	}
	return nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
