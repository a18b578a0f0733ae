// Package wallet holds the local signing keypair used to pay requests. The
// keypair lives in an encrypted file; the passphrase is prompted at startup
// and the decrypted key only exists in memory for the duration of a call.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local keypair file.
	// Security is prioritized over performance: N=2^18 (~256MB RAM,
	// 0.5-2s) keeps brute-force expensive while still working on
	// memory-constrained machines.
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	fileExt = ".wallet"
)

// KeyFile represents the on-disk wallet file structure. Address is readable
// without the passphrase; CipherText holds the encrypted KeypairData.
type KeyFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeypairData represents the decrypted keypair payload.
type KeypairData struct {
	PrivateKey []byte `json:"privateKey"` // 64 bytes (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// EncryptKeypair encrypts keypair data and writes the wallet file.
// passphrase must be []byte for security (caller should zero it after use)
func EncryptKeypair(filePath, network, address string, data *KeypairData, passphrase []byte) error {
	if !strings.HasSuffix(filePath, fileExt) {
		return fmt.Errorf("file must have %s extension", fileExt)
	}

	// Refuse to clobber an existing non-empty wallet file
	if info, err := os.Stat(filePath); err == nil && info.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal keypair data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	kf := KeyFile{
		Network:    network,
		Address:    address,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet file: %w", err)
	}

	if err := os.WriteFile(filePath, fileData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// DecryptKeypair reads and decrypts a wallet file.
// passphrase must be []byte for security (caller should zero it after use)
func DecryptKeypair(filePath string, passphrase []byte) (*KeyFile, *KeypairData, error) {
	fileData, err := readKeyFileBytes(filePath)
	if err != nil {
		return nil, nil, err
	}

	var kf KeyFile
	if err := json.Unmarshal(fileData, &kf); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet file: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(kf.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(kf.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(kf.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, errors.New("invalid passphrase")
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var data KeypairData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal keypair data: %w", err)
	}

	return &kf, &data, nil
}

// ReadAddress reads only the address from a wallet file (without decryption)
func ReadAddress(filePath string) (string, error) {
	fileData, err := readKeyFileBytes(filePath)
	if err != nil {
		return "", err
	}

	var kf KeyFile
	if err := json.Unmarshal(fileData, &kf); err != nil {
		return "", fmt.Errorf("failed to unmarshal wallet file: %w", err)
	}
	return kf.Address, nil
}

func readKeyFileBytes(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return fileData, nil
}
