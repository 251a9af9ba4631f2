package crypto

import (
	"runtime"

	"pairing/internal/domain"
)

// Wipe zeroes b in place, best effort.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WipeKeyPair zeroes the private half of kp and drops it.
func WipeKeyPair(kp *domain.KeyPair) {
	Wipe(kp.Private)
	kp.Private = nil
}
