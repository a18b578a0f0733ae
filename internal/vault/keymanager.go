// Package vault owns the client-local master key and the authenticated
// encryption of private invoice payloads. The key never leaves this package
// except through an explicit export.
package vault

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/storage"
)

const (
	keyLen = 32 // 256-bit AES key
	keyAlg = "AES-256-GCM"
)

// exportedKey is the persisted form of the master key. The same blob is
// handed out verbatim on export and accepted back on import.
type exportedKey struct {
	Alg       string `json:"alg"`
	Key       []byte `json:"key"` // base64 in JSON
	CreatedAt string `json:"createdAt"`
}

// KeyManager produces a usable master key for the Cipher, creating it
// lazily on first use. Exactly one key exists per installation.
type KeyManager struct {
	slot storage.Slot

	mu  sync.Mutex
	key []byte // cached after first load
}

// NewKeyManager returns a manager backed by the given key slot.
func NewKeyManager(slot storage.Slot) *KeyManager {
	return &KeyManager{slot: slot}
}

// GetOrCreateKey reads the persisted key material, generating and persisting
// a fresh 256-bit key if none exists yet. Returns ErrKeyStoreUnavailable if
// the slot cannot be read or written; callers must treat that as fatal for
// any encrypt/decrypt attempt.
//
// The returned slice is the caller's own copy: a later ResetKey or ImportKey
// wipes only the manager's buffer, never bytes already handed out.
func (m *KeyManager) GetOrCreateKey() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return m.keyCopy(), nil
	}

	data, err := m.slot.Read()
	switch {
	case err == nil:
		var ek exportedKey
		if uerr := json.Unmarshal(data, &ek); uerr != nil {
			return nil, fmt.Errorf("%w: malformed key slot: %v", errs.ErrKeyStoreUnavailable, uerr)
		}
		if len(ek.Key) != keyLen {
			return nil, fmt.Errorf("%w: unexpected key length %d", errs.ErrKeyStoreUnavailable, len(ek.Key))
		}
		m.key = ek.Key
		return m.keyCopy(), nil

	case errors.Is(err, fs.ErrNotExist):
		// First use on this installation
		key := make([]byte, keyLen)
		if _, rerr := io.ReadFull(rand.Reader, key); rerr != nil {
			return nil, fmt.Errorf("failed to generate key: %w", rerr)
		}
		blob, merr := json.Marshal(exportedKey{
			Alg:       keyAlg,
			Key:       key,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
		if merr != nil {
			return nil, fmt.Errorf("failed to marshal key: %w", merr)
		}
		if werr := m.slot.Write(blob); werr != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrKeyStoreUnavailable, werr)
		}
		m.key = key
		return m.keyCopy(), nil

	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrKeyStoreUnavailable, err)
	}
}

// keyCopy returns a fresh copy of the cached key. Caller holds m.mu.
func (m *KeyManager) keyCopy() []byte {
	out := make([]byte, len(m.key))
	copy(out, m.key)
	return out
}

// ResetKey deletes the persisted key material unconditionally. All
// previously produced ciphertexts become permanently undecryptable by this
// client. Idempotent: resetting when no key exists is a no-op.
func (m *KeyManager) ResetKey() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.slot.Delete(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrKeyStoreUnavailable, err)
	}
	clear(m.key)
	m.key = nil
	return nil
}

// ExportKey returns the persisted key material verbatim for backup.
// Returns ErrNoKeyInitialized if no key was ever created.
func (m *KeyManager) ExportKey() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.slot.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.ErrNoKeyInitialized
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrKeyStoreUnavailable, err)
	}
	return data, nil
}

// ImportKey restores a previously exported key blob, replacing any current
// key. Ciphertexts produced under the imported key become readable again;
// anything encrypted under the replaced key becomes unreadable.
func (m *KeyManager) ImportKey(blob []byte) error {
	var ek exportedKey
	if err := json.Unmarshal(blob, &ek); err != nil {
		return fmt.Errorf("invalid key backup: %w", err)
	}
	if ek.Alg != keyAlg {
		return fmt.Errorf("invalid key backup: unexpected algorithm %q", ek.Alg)
	}
	if len(ek.Key) != keyLen {
		return fmt.Errorf("invalid key backup: unexpected key length %d", len(ek.Key))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.slot.Write(blob); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrKeyStoreUnavailable, err)
	}
	clear(m.key)
	m.key = ek.Key
	return nil
}
