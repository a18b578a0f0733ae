// Package payment drives a single request from "payer intends to pay" to
// "request marked PAID", coordinating the wallet and ledger collaborators.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/common"
	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/model"
)

// Wallet is the payer-side signing collaborator.
type Wallet interface {
	Address() solana.PublicKey
	SignMessage(msg []byte) (solana.Signature, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Ledger is the RPC collaborator used for assembly and confirmation.
type Ledger interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	ConfirmSignature(ctx context.Context, sig solana.Signature) error
	Confirmed(ctx context.Context, sig solana.Signature) (bool, error)
}

// RequestMarker is what the executor needs from the request store.
type RequestMarker interface {
	Get(id string) (model.PaymentRequest, bool)
	MarkPaid(id, signature, payer string) error
}

// AttemptState tracks one payment attempt.
type AttemptState string

const (
	StateIdle                 AttemptState = "Idle"
	StateSubmitting           AttemptState = "Submitting"
	StateAwaitingConfirmation AttemptState = "AwaitingConfirmation"
	StateConfirmed            AttemptState = "Confirmed"
	StateFailed               AttemptState = "Failed"
)

// Executor orchestrates payments against the request store.
type Executor struct {
	requests       RequestMarker
	ledger         Ledger
	log            *zap.Logger
	confirmTimeout time.Duration
}

// NewExecutor returns an executor confirming within confirmTimeout per attempt.
func NewExecutor(requests RequestMarker, ledger Ledger, confirmTimeout time.Duration, log *zap.Logger) *Executor {
	if confirmTimeout <= 0 {
		confirmTimeout = 90 * time.Second
	}
	return &Executor{
		requests:       requests,
		ledger:         ledger,
		log:            log,
		confirmTimeout: confirmTimeout,
	}
}

type attempt struct {
	id    string
	state AttemptState
	log   *zap.Logger
}

func (a *attempt) transition(to AttemptState) {
	a.log.Debug("payment attempt state",
		zap.String("id", a.id),
		zap.String("from", string(a.state)),
		zap.String("to", string(to)),
	)
	a.state = to
}

// Pay executes one payment attempt for req using the payer wallet w.
//
// Failure semantics: ErrRequestNotPayable, ErrUserRejected and
// ErrSubmissionFailed are local outcomes, safe to retry.
// ErrConfirmationUnknown means the transfer may or may not have landed; the
// request is left PENDING and must be verified manually (see Reconcile) -
// markPaid is never called on that path.
func (e *Executor) Pay(ctx context.Context, req model.PaymentRequest, w Wallet) (model.PayResponse, error) {
	a := &attempt{id: req.ID, state: StateIdle, log: e.log}

	// 1. Only PENDING requests are payable
	if req.Status != model.StatusPending {
		a.transition(StateFailed)
		return model.PayResponse{}, fmt.Errorf("%w: status is %s", errs.ErrRequestNotPayable, req.Status)
	}

	// 2. Build a native transfer from the payer to the creator
	creator, err := solana.PublicKeyFromBase58(req.Creator)
	if err != nil {
		a.transition(StateFailed)
		return model.PayResponse{}, fmt.Errorf("%w: invalid creator address: %v", errs.ErrSubmissionFailed, err)
	}
	lamports, err := common.SOLToLamports(req.Amount)
	if err != nil {
		a.transition(StateFailed)
		return model.PayResponse{}, fmt.Errorf("%w: invalid amount: %v", errs.ErrSubmissionFailed, err)
	}

	payer := w.Address()
	blockhash, err := e.ledger.LatestBlockhash(ctx)
	if err != nil {
		a.transition(StateFailed)
		return model.PayResponse{}, fmt.Errorf("%w: %v", errs.ErrSubmissionFailed, err)
	}

	ix := system.NewTransferInstruction(lamports, payer, creator).Build()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		a.transition(StateFailed)
		return model.PayResponse{}, fmt.Errorf("%w: %v", errs.ErrSubmissionFailed, err)
	}

	// 3. Submit through the wallet
	a.transition(StateSubmitting)
	sig, err := w.SendTransaction(ctx, tx)
	if err != nil {
		a.transition(StateFailed)
		if errors.Is(err, errs.ErrUserRejected) {
			return model.PayResponse{}, err
		}
		return model.PayResponse{}, fmt.Errorf("%w: %v", errs.ErrSubmissionFailed, err)
	}

	e.log.Info("transaction submitted",
		zap.String("id", req.ID),
		zap.String("signature", sig.String()),
	)

	// 4. Await confirmation. On timeout the outcome is unknown: the record
	// must stay PENDING so a manual check against the ledger can settle it.
	a.transition(StateAwaitingConfirmation)
	confirmCtx, cancel := context.WithTimeout(ctx, e.confirmTimeout)
	defer cancel()
	if err := e.ledger.ConfirmSignature(confirmCtx, sig); err != nil {
		a.transition(StateFailed)
		if confirmCtx.Err() != nil {
			return model.PayResponse{}, fmt.Errorf("%w: signature %s: %v", errs.ErrConfirmationUnknown, sig, err)
		}
		return model.PayResponse{}, fmt.Errorf("%w: %v", errs.ErrSubmissionFailed, err)
	}

	// 5. Confirmed: record the transition
	a.transition(StateConfirmed)
	payerStr := payer.String()
	if err := e.requests.MarkPaid(req.ID, sig.String(), payerStr); err != nil {
		// The transfer landed; only the local record is behind. Surface the
		// store error so the caller can retry markPaid via reconciliation.
		return model.PayResponse{}, fmt.Errorf("payment confirmed but record update failed: %w", err)
	}

	return model.PayResponse{Signature: sig.String(), Payer: payerStr}, nil
}

// Reconcile settles a request whose confirmation outcome was unknown: it
// re-checks the signature against the ledger and, if confirmed, marks the
// request paid explicitly.
func (e *Executor) Reconcile(ctx context.Context, id, signature, payer string) error {
	req, ok := e.requests.Get(id)
	if !ok {
		return fmt.Errorf("unknown request %s", id)
	}
	if req.Status == model.StatusPaid {
		return nil
	}

	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	confirmed, err := e.ledger.Confirmed(ctx, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrConfirmationUnknown, err)
	}
	if !confirmed {
		return fmt.Errorf("signature %s not confirmed on ledger", signature)
	}

	e.log.Info("request reconciled", zap.String("id", id), zap.String("signature", signature))
	return e.requests.MarkPaid(id, signature, payer)
}
