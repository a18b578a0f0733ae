// Package client wraps the Solana RPC endpoints the payment flow needs.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient    *rpc.Client
	rpcURL       string
	pollInterval time.Duration
}

// NewSolanaClient creates a new Solana client for the given RPC endpoint.
func NewSolanaClient(rpcURL string, pollInterval time.Duration) *SolanaClient {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &SolanaClient{
		rpcClient:    rpc.New(rpcURL),
		rpcURL:       rpcURL,
		pollInterval: pollInterval,
	}
}

// LatestBlockhash returns a recent blockhash for transaction assembly.
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	return out.Value.Blockhash, nil
}

// SendTransaction submits a signed transaction.
func (c *SolanaClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpcClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// ConfirmSignature polls signature statuses until the transaction reaches
// confirmed (or finalized) commitment, the transaction is reported failed,
// or ctx expires. A ctx error means the outcome is unknown, not failed.
func (c *SolanaClient) ConfirmSignature(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpcClient.GetSignatureStatuses(ctx, true, sig)
		if err == nil && len(out.Value) > 0 && out.Value[0] != nil {
			st := out.Value[0]
			if st.Err != nil {
				return fmt.Errorf("transaction failed on-chain: %v", st.Err)
			}
			switch st.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}
		// Not found yet or transient RPC error: keep polling until the deadline

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Confirmed reports whether a signature is already confirmed on the ledger.
// Used by manual reconciliation; a single status lookup, no polling.
func (c *SolanaClient) Confirmed(ctx context.Context, sig solana.Signature) (bool, error) {
	out, err := c.rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return false, fmt.Errorf("failed to get signature status: %w", err)
	}
	if len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}
	st := out.Value[0]
	if st.Err != nil {
		return false, nil
	}
	return st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
		st.ConfirmationStatus == rpc.ConfirmationStatusFinalized, nil
}

// Balance returns the SOL balance for an address in lamports.
func (c *SolanaClient) Balance(ctx context.Context, address string) (uint64, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid Solana address: %w", err)
	}
	out, err := c.rpcClient.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return out.Value, nil
}
