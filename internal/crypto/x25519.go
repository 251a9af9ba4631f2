package crypto

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/curve25519"

	"pairing/internal/domain"
)

// X25519Generator produces Curve25519 key pairs. A nil Rand uses crypto/rand.
type X25519Generator struct {
	Rand io.Reader
}

// GenerateKeyPair returns a fresh key pair. The private key is clamped per
// RFC 7748.
func (g X25519Generator) GenerateKeyPair() (domain.KeyPair, error) {
	r := g.Rand
	if r == nil {
		r = rand.Reader
	}
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := io.ReadFull(r, priv); err != nil {
		return domain.KeyPair{}, err
	}
	clamp(priv)
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		Wipe(priv)
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{Private: priv, Public: pub}, nil
}

func clamp(k []byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

var _ domain.KeyGenerator = X25519Generator{}
