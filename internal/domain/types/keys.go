package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// PublicKey is opaque, string-encoded key material. Two keys are equal only
// when their strings match exactly.
type PublicKey struct {
	Str string `json:"str"`
}

// NewPublicKey wraps s as a PublicKey.
func NewPublicKey(s string) PublicKey { return PublicKey{Str: s} }

// String returns the encoded key.
func (k PublicKey) String() string { return k.Str }

// IsZero reports whether the key carries no material.
func (k PublicKey) IsZero() bool { return k.Str == "" }

// ParticipantID returns the hex SHA-256 of the key string. The directory uses
// it to identify a participant in ack and delete requests.
func (k PublicKey) ParticipantID() ParticipantID {
	sum := sha256.Sum256([]byte(k.Str))
	return ParticipantID(hex.EncodeToString(sum[:]))
}

// KeyPair holds raw key material. Generation inside this module is a stub; the
// host platform supplies real keys.
type KeyPair struct {
	Private []byte `json:"private"`
	Public  []byte `json:"public"`
}
