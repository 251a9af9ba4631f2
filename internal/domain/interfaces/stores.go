package interfaces

import domaintypes "pairing/internal/domain/types"

// KeyStore persists this device's key pair, sealed under a passphrase.
type KeyStore interface {
	SaveKeyPair(passphrase string, kp domaintypes.KeyPair) error
	LoadKeyPair(passphrase string) (domaintypes.KeyPair, bool, error)
}
