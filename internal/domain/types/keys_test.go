package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantIDIsSHA256Hex(t *testing.T) {
	// sha256("abc")
	assert.Equal(t,
		ParticipantID("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"),
		NewPublicKey("abc").ParticipantID())
}

func TestPublicKeyEquality(t *testing.T) {
	assert.Equal(t, NewPublicKey("K"), PublicKey{Str: "K"})
	assert.NotEqual(t, NewPublicKey("K"), NewPublicKey("k"))
	assert.True(t, PublicKey{}.IsZero())

	s := Session{ID: "S", Keys: []PublicKey{NewPublicKey("A"), NewPublicKey("A")}}
	assert.True(t, s.Contains(NewPublicKey("A")))
	assert.False(t, s.Contains(NewPublicKey("B")))
}
