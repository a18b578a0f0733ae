package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

const networkSolana = "solana"

// TxSender submits a signed transaction to the network.
type TxSender interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// LocalWallet is the payer-side wallet collaborator: it holds the signing
// key decrypted from the wallet file and submits through the injected
// sender.
type LocalWallet struct {
	key    solana.PrivateKey
	sender TxSender
}

// Generate creates a new Solana keypair and writes it to an encrypted
// wallet file. Returns the generated public address on success.
// passphrase must be []byte for security (caller should zero it after use)
func Generate(filePath string, passphrase []byte) (address string, err error) {
	w := solana.NewWallet()
	defer clear(w.PrivateKey)

	address = w.PublicKey().String()

	data := &KeypairData{
		PrivateKey: w.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if err := EncryptKeypair(filePath, networkSolana, address, data, passphrase); err != nil {
		return "", fmt.Errorf("failed to encrypt keypair: %w", err)
	}
	return address, nil
}

// Open decrypts the wallet file and returns a usable wallet.
// passphrase must be []byte for security (caller should zero it after use)
func Open(filePath string, passphrase []byte, sender TxSender) (*LocalWallet, error) {
	kf, data, err := DecryptKeypair(filePath, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}

	if len(data.PrivateKey) != 64 {
		clear(data.PrivateKey)
		return nil, fmt.Errorf("invalid private key length")
	}

	key := solana.PrivateKey(data.PrivateKey)

	// Verify the key matches the public address in the file header
	expected, err := solana.PublicKeyFromBase58(kf.Address)
	if err != nil {
		clear(data.PrivateKey)
		return nil, fmt.Errorf("invalid address in wallet file: %w", err)
	}
	if !key.PublicKey().Equals(expected) {
		clear(data.PrivateKey)
		return nil, fmt.Errorf("private key does not match address")
	}

	return &LocalWallet{key: key, sender: sender}, nil
}

// NewFromKey wraps an in-memory keypair. Used by tests and one-off tools.
func NewFromKey(key solana.PrivateKey, sender TxSender) *LocalWallet {
	return &LocalWallet{key: key, sender: sender}
}

// Address returns the wallet's public key.
func (w *LocalWallet) Address() solana.PublicKey {
	return w.key.PublicKey()
}

// SignMessage signs arbitrary bytes with the wallet key.
func (w *LocalWallet) SignMessage(msg []byte) (solana.Signature, error) {
	sig, err := w.key.Sign(msg)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign message: %w", err)
	}
	return sig, nil
}

// SendTransaction signs tx with the wallet key and submits it.
func (w *LocalWallet) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	_, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(w.key.PublicKey()) {
			return &w.key
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return w.sender.SendTransaction(ctx, tx)
}

// Close wipes the key material from memory. The wallet is unusable after.
func (w *LocalWallet) Close() {
	clear(w.key)
	w.key = nil
}
