package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"pairing/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes the key string with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(key domain.PublicKey) string {
	sum := sha256.Sum256([]byte(key.Str))
	return hex.EncodeToString(sum[:10])
}
