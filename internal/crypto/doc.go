// Package crypto holds the host-side key material helpers used by the CLI.
//
// The session service deliberately does not generate keys; hosts plug in a
// domain.KeyGenerator. X25519Generator is the one the CLI uses.
//
// Contents
//
//   - X25519 key generation with RFC 7748 clamping (X25519Generator)
//   - Base64 encoding of public keys into domain.PublicKey (EncodePublicKey)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//   - Best-effort memory wiping for private keys (Wipe)
package crypto
