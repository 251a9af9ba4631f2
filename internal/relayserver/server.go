package relayserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pairing/internal/domain"
)

var (
	errSessionFull        = errors.New("session is full")
	errKeyInUse           = errors.New("key is active in another session")
	errUnknownParticipant = errors.New("unknown participant")
)

type participant struct {
	key      domain.PublicKey
	accepted int
	acked    bool
	deleted  bool
}

type session struct {
	participants []*participant
}

func (s *session) keys() []domain.PublicKey {
	out := make([]domain.PublicKey, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p.key)
	}
	return out
}

func (s *session) ready() bool {
	n := len(s.participants)
	if n < 2 {
		return false
	}
	for _, p := range s.participants {
		if !p.acked || p.accepted != n {
			return false
		}
	}
	return true
}

// Server holds every session in memory.
type Server struct {
	mu       sync.Mutex
	sessions map[domain.SessionID]*session
	owners   map[domain.ParticipantID]domain.SessionID

	capacity int
	log      zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCapacity limits how many participants a session accepts. Zero means no
// limit.
func WithCapacity(n int) Option { return func(s *Server) { s.capacity = n } }

// WithLogger sets the access/event logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Server) { s.log = l } }

// New returns an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		sessions: make(map[domain.SessionID]*session),
		owners:   make(map[domain.ParticipantID]domain.SessionID),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the directory protocol.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /key", s.handleJoin)
	mux.HandleFunc("POST /ready", s.handleAck)
	mux.HandleFunc("POST /part", s.handleParticipants)
	mux.HandleFunc("POST /del", s.handleDelete)
	return s.accessLog(mux)
}

// Join appends key to the session unless it is already there.
func (s *Server) Join(id domain.SessionID, key domain.PublicKey) ([]domain.PublicKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ack and delete name a participant by key only, so a key may be live
	// in one session at a time. A key tombstoned elsewhere may move on.
	pid := key.ParticipantID()
	if owner, ok := s.owners[pid]; ok && owner != id {
		if _, p, _ := s.lookup(pid); p != nil && !p.deleted {
			return nil, errKeyInUse
		}
	}

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	if !containsKey(sess, key) {
		if s.capacity > 0 && len(sess.participants) >= s.capacity {
			return nil, errSessionFull
		}
		sess.participants = append(sess.participants, &participant{key: key})
	}
	s.owners[pid] = id
	return sess.keys(), nil
}

// Ack records that the participant stored accepted keys and reports
// readiness.
func (s *Server) Ack(pid domain.ParticipantID, accepted int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, ok := s.lookup(pid)
	if !ok {
		return false, errUnknownParticipant
	}
	p.accepted = accepted
	p.acked = true
	return sess.ready(), nil
}

// Participants returns the keys of a session; unknown sessions are empty.
func (s *Server) Participants(id domain.SessionID) []domain.PublicKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return []domain.PublicKey{}
	}
	return sess.keys()
}

// Delete tombstones the participant and drops the session once all of its
// participants are deleted.
func (s *Server) Delete(pid domain.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, ok := s.lookup(pid)
	if !ok {
		return errUnknownParticipant
	}
	p.deleted = true
	for _, other := range sess.participants {
		if !other.deleted {
			return nil
		}
	}
	id := s.owners[pid]
	for _, other := range sess.participants {
		if opid := other.key.ParticipantID(); s.owners[opid] == id {
			delete(s.owners, opid)
		}
	}
	delete(s.sessions, id)
	s.log.Info().Str("session_id", id.String()).Msg("session removed")
	return nil
}

func (s *Server) lookup(pid domain.ParticipantID) (*session, *participant, bool) {
	id, ok := s.owners[pid]
	if !ok {
		return nil, nil, false
	}
	sess := s.sessions[id]
	for _, p := range sess.participants {
		if p.key.ParticipantID() == pid {
			return sess, p, true
		}
	}
	return nil, nil, false
}

func containsKey(sess *session, key domain.PublicKey) bool {
	for _, p := range sess.participants {
		if p.key == key {
			return true
		}
	}
	return false
}

// ---------- HTTP ----------

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req domain.JoinRequest
	if !decode(w, r, &req) {
		return
	}
	if req.SessionID == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, "session_id and key are required")
		return
	}
	keys, err := s.Join(domain.SessionID(req.SessionID), domain.NewPublicKey(req.Key))
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.KeysResponse{Keys: keys})
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	var req domain.AckRequest
	if !decode(w, r, &req) {
		return
	}
	ready, err := s.Ack(domain.ParticipantID(req.UUID), req.Accepted)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.AckResponse{IsReady: ready})
}

func (s *Server) handleParticipants(w http.ResponseWriter, r *http.Request) {
	var req domain.ParticipantsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, domain.KeysResponse{Keys: s.Participants(domain.SessionID(req.SessionID))})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.Delete(domain.ParticipantID(req.PeerID)); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, domain.ErrorResponse{Status: status, Msg: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
