// Command keybackup wraps an exported vault key blob under a passphrase for
// offline backup, and unwraps it again for restore.
//
// Usage:
//
//	keybackup -mode wrap   -in data/master_key.json -out vault-key.backup
//	keybackup -mode unwrap -in vault-key.backup     -out master_key.json
package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/term"
)

const (
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// backupFile is the passphrase-wrapped container format.
type backupFile struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

func main() {
	mode := flag.String("mode", "wrap", "wrap or unwrap")
	in := flag.String("in", "", "input file")
	out := flag.String("out", "", "output file")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "both -in and -out are required")
		os.Exit(1)
	}

	pass, err := readPassphrase()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(pass)

	switch *mode {
	case "wrap":
		err = wrap(*in, *out, pass)
	case "unwrap":
		err = unwrap(*in, *out, pass)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readPassphrase() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Enter backup passphrase: ")
	defer fmt.Fprintln(os.Stderr)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	return raw, nil
}

func wrap(in, out string, pass []byte) error {
	plaintext, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}
	defer clear(plaintext)

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(pass, salt)
	if err != nil {
		return err
	}

	bf := backupFile{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aesGCM.Seal(nil, nonce, plaintext, nil)),
	}
	data, err := json.MarshalIndent(bf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}
	return os.WriteFile(out, data, 0600)
}

func unwrap(in, out string, pass []byte) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}

	var bf backupFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return fmt.Errorf("failed to unmarshal backup: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(bf.Salt)
	if err != nil {
		return fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(bf.Nonce)
	if err != nil {
		return fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(bf.CipherText)
	if err != nil {
		return fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(pass, salt)
	if err != nil {
		return err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("invalid passphrase")
	}
	defer clear(plaintext)

	return os.WriteFile(out, plaintext, 0600)
}

func newGCM(pass, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(pass, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
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
