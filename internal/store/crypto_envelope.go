package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// envelopeVersion is the sealed key file format.
const envelopeVersion = 2

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// ciphertext was modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")

// ScryptParams tunes key derivation. The parameters are stored with each
// envelope, so files written with other parameters still open.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams are used for new files.
var DefaultScryptParams = ScryptParams{N: 1 << 15, R: 8, P: 1}

// maxScryptN bounds the work a key file can demand when it is opened.
const maxScryptN = 1 << 20

// envelope is the JSON written to disk.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// additionalData binds the header fields to the ciphertext.
func (e envelope) additionalData() []byte {
	return fmt.Appendf(nil, "pairing-key/v%d/%d/%d/%d/%x", e.V, e.N, e.R, e.P, e.Salt)
}

func (e envelope) aead(passphrase string) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), e.Salt, e.N, e.R, e.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

// seal encrypts raw under a key derived from passphrase.
func seal(passphrase string, raw []byte, params ScryptParams) ([]byte, error) {
	env := envelope{
		V:     envelopeVersion,
		Salt:  make([]byte, 16),
		N:     params.N,
		R:     params.R,
		P:     params.P,
		Nonce: make([]byte, chacha20poly1305.NonceSizeX),
	}
	if _, err := rand.Read(env.Salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(env.Nonce); err != nil {
		return nil, err
	}
	aead, err := env.aead(passphrase)
	if err != nil {
		return nil, err
	}
	env.Cipher = aead.Seal(nil, env.Nonce, raw, env.additionalData())
	return json.Marshal(env)
}

// open reverses seal.
func open(passphrase string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	if env.V != envelopeVersion {
		return nil, fmt.Errorf("unsupported key file version %d", env.V)
	}
	if env.N > maxScryptN || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrWrongPassphrase
	}
	aead, err := env.aead(passphrase)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.additionalData())
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
