package mobile

import (
	"encoding/json"

	"pairing/internal/domain"
)

// Outcome codes carried in every result.
const (
	StatusGeneral    = 0
	StatusOK         = 1
	StatusNetworking = 2
)

// Status maps err onto an outcome code.
func Status(err error) int {
	switch domain.Classify(err) {
	case domain.KindNone:
		return StatusOK
	case domain.KindNetworking:
		return StatusNetworking
	default:
		return StatusGeneral
	}
}

// Failure describes why an operation did not succeed. HTTPStatus is zero
// for local failures.
type Failure struct {
	Status     int
	HTTPStatus int
	Message    string
}

func failure(err error) Failure {
	f := Failure{Status: Status(err)}
	if err != nil {
		f.Message = err.Error()
		if status, ok := domain.HTTPStatusOf(err); ok {
			f.HTTPStatus = status
		}
	}
	return f
}

// SessionResult carries a session encoded as {"id": ..., "keys": [...]}.
type SessionResult struct {
	Failure
	SessionJSON string
}

type sessionJSON struct {
	ID   string   `json:"id"`
	Keys []string `json:"keys"`
}

func sessionResult(sess domain.Session, err error) *SessionResult {
	if err != nil {
		return &SessionResult{Failure: failure(err)}
	}
	out := sessionJSON{ID: sess.ID.String(), Keys: make([]string, len(sess.Keys))}
	for i, k := range sess.Keys {
		out.Keys[i] = k.String()
	}
	b, err := json.Marshal(out)
	if err != nil {
		return &SessionResult{Failure: failure(domain.Generalf("encode session: %v", err))}
	}
	return &SessionResult{Failure: Failure{Status: StatusOK}, SessionJSON: string(b)}
}

// AckResult reports whether the session is ready.
type AckResult struct {
	Failure
	Ready bool
}

// DeleteResult carries only the outcome.
type DeleteResult struct {
	Failure
}

// KeyPairResult carries base64 key material.
type KeyPairResult struct {
	Failure
	Private string
	Public  string
}

// RefreshResult reports one polling step of the pairing flow.
type RefreshResult struct {
	Failure
	SessionJSON string
	Ready       bool
	Deleted     bool
}
