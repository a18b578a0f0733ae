package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/privacydash/privacydash/internal/errs"
)

const nonceLen = 12 // 96-bit GCM nonce

// Cipher performs authenticated encryption of JSON-serializable payloads
// under the master key. Stateless apart from the key manager; a fresh
// random nonce is generated for every Encrypt call.
type Cipher struct {
	keys *KeyManager
}

// NewCipher returns a Cipher drawing its key from km.
func NewCipher(km *KeyManager) *Cipher {
	return &Cipher{keys: km}
}

// Encrypt serializes v to JSON, encrypts it with AES-GCM and returns
// base64(nonce || ciphertext).
func (c *Cipher) Encrypt(v any) (string, error) {
	key, err := c.keys.GetOrCreateKey()
	if err != nil {
		return "", err
	}
	defer clear(key) // the copy is ours to wipe

	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return "", err
	}

	combined := make([]byte, 0, nonceLen+len(plaintext)+aesGCM.Overhead())
	combined = append(combined, nonce...)
	combined = append(combined, aesGCM.Seal(nil, nonce, plaintext, nil)...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Decrypt reverses Encrypt into v. Any failure - wrong key, corrupted blob,
// authentication-tag mismatch, malformed JSON - is reported as
// ErrDecryptionFailed, meaning "data unreadable with current key".
func (c *Cipher) Decrypt(blob string, v any) error {
	key, err := c.keys.GetOrCreateKey()
	if err != nil {
		return err
	}
	defer clear(key) // the copy is ours to wipe

	combined, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return errs.ErrDecryptionFailed
	}
	if len(combined) < nonceLen {
		return errs.ErrDecryptionFailed
	}
	nonce := combined[:nonceLen]
	ciphertext := combined[nonceLen:]

	aesGCM, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return errs.ErrDecryptionFailed
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	if err := json.Unmarshal(plaintext, v); err != nil {
		return errs.ErrDecryptionFailed
	}
	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
