package crypto

import (
	"encoding/base64"

	"pairing/internal/domain"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// EncodePublicKey wraps the base64 form of kp.Public as a domain.PublicKey.
func EncodePublicKey(kp domain.KeyPair) domain.PublicKey {
	return domain.NewPublicKey(B64(kp.Public))
}
