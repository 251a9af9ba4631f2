package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"pairing/internal/domain"
)

// KeyFileName is the file, relative to the store directory, holding the
// sealed device key pair.
const KeyFileName = "device_key.json.enc"

// KeyFileStore keeps one device key pair in an encrypted file.
type KeyFileStore struct {
	dir    string
	params ScryptParams
	mu     sync.Mutex
}

// Option customises a KeyFileStore.
type Option func(*KeyFileStore)

// WithScryptParams overrides the KDF parameters for newly written files.
func WithScryptParams(p ScryptParams) Option {
	return func(s *KeyFileStore) { s.params = p }
}

// NewKeyFileStore creates dir if needed and returns a store rooted there.
func NewKeyFileStore(dir string, opts ...Option) (*KeyFileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := &KeyFileStore{dir: dir, params: DefaultScryptParams}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the location of the sealed key file.
func (s *KeyFileStore) Path() string { return filepath.Join(s.dir, KeyFileName) }

// SaveKeyPair seals kp under passphrase and replaces any existing key file.
func (s *KeyFileStore) SaveKeyPair(passphrase string, kp domain.KeyPair) error {
	if passphrase == "" {
		return fmt.Errorf("save key pair: empty passphrase")
	}
	raw, err := json.Marshal(kp)
	if err != nil {
		return err
	}
	enc, err := seal(passphrase, raw, s.params)
	if err != nil {
		return fmt.Errorf("seal key pair: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(enc)
}

// LoadKeyPair opens the key file. ok is false when no key was saved yet.
func (s *KeyFileStore) LoadKeyPair(passphrase string) (domain.KeyPair, bool, error) {
	s.mu.Lock()
	b, err := os.ReadFile(s.Path())
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return domain.KeyPair{}, false, nil
	}
	if err != nil {
		return domain.KeyPair{}, false, err
	}

	raw, err := open(passphrase, b)
	if err != nil {
		return domain.KeyPair{}, false, err
	}
	var kp domain.KeyPair
	if err := json.Unmarshal(raw, &kp); err != nil {
		return domain.KeyPair{}, false, fmt.Errorf("decode key pair: %w", err)
	}
	return kp, true, nil
}

// replace writes b to a temp file in the store directory, syncs it and
// renames it over the key file.
func (s *KeyFileStore) replace(b []byte) error {
	f, err := os.CreateTemp(s.dir, KeyFileName+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path())
}

var _ domain.KeyStore = (*KeyFileStore)(nil)
