// Package store provides file-based persistence for the CLI's device key.
//
// The key pair is serialised as JSON, sealed with ChaCha20-Poly1305 under a
// key derived from the user's passphrase with scrypt, and written atomically
// under the configured home directory. Session state is never stored here;
// the directory is the only source of truth for it.
package store
