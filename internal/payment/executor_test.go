package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/model"
	"github.com/privacydash/privacydash/internal/storage"
	"github.com/privacydash/privacydash/internal/store"
)

type fakeWallet struct {
	key     solana.PrivateKey
	sendErr error
	sig     solana.Signature
	sent    *solana.Transaction
}

func newFakeWallet(t *testing.T) *fakeWallet {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	var sig solana.Signature
	copy(sig[:], []byte("fake-signature"))
	return &fakeWallet{key: key, sig: sig}
}

func (w *fakeWallet) Address() solana.PublicKey { return w.key.PublicKey() }

func (w *fakeWallet) SignMessage(msg []byte) (solana.Signature, error) {
	return w.key.Sign(msg)
}

func (w *fakeWallet) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if w.sendErr != nil {
		return solana.Signature{}, w.sendErr
	}
	w.sent = tx
	return w.sig, nil
}

type fakeLedger struct {
	blockhashErr error
	confirmErr   error
	confirmHangs bool
	confirmed    bool
	confirmedErr error
}

func (l *fakeLedger) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	if l.blockhashErr != nil {
		return solana.Hash{}, l.blockhashErr
	}
	var h solana.Hash
	copy(h[:], []byte("recent-blockhash"))
	return h, nil
}

func (l *fakeLedger) ConfirmSignature(ctx context.Context, sig solana.Signature) error {
	if l.confirmHangs {
		<-ctx.Done()
		return ctx.Err()
	}
	return l.confirmErr
}

func (l *fakeLedger) Confirmed(ctx context.Context, sig solana.Signature) (bool, error) {
	return l.confirmed, l.confirmedErr
}

func newExecutorFixture(t *testing.T, ledger *fakeLedger, timeout time.Duration) (*Executor, *store.RequestStore, model.PaymentRequest) {
	t.Helper()
	requests, err := store.NewRequestStore(&storage.MemSlot{}, zap.NewNop())
	require.NoError(t, err)

	creator := solana.NewWallet().PublicKey().String()
	req, err := requests.Create(model.CreateRequestParams{Amount: "0.25"}, creator)
	require.NoError(t, err)

	return NewExecutor(requests, ledger, timeout, zap.NewNop()), requests, req
}

func TestPay_Success(t *testing.T) {
	e, requests, req := newExecutorFixture(t, &fakeLedger{}, time.Second)
	w := newFakeWallet(t)

	resp, err := e.Pay(context.Background(), req, w)
	require.NoError(t, err)
	assert.Equal(t, w.sig.String(), resp.Signature)
	assert.Equal(t, w.Address().String(), resp.Payer)

	got, ok := requests.Get(req.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusPaid, got.Status)
	assert.Equal(t, w.sig.String(), got.Signature)
	assert.Equal(t, w.Address().String(), got.Payer)
}

func TestPay_NotPayable(t *testing.T) {
	e, requests, req := newExecutorFixture(t, &fakeLedger{}, time.Second)
	require.NoError(t, requests.Cancel(req.ID))
	req, _ = requests.Get(req.ID)

	_, err := e.Pay(context.Background(), req, newFakeWallet(t))
	require.ErrorIs(t, err, errs.ErrRequestNotPayable)
}

func TestPay_UserRejectedPropagates(t *testing.T) {
	e, _, req := newExecutorFixture(t, &fakeLedger{}, time.Second)
	w := newFakeWallet(t)
	w.sendErr = fmt.Errorf("%w: declined in wallet", errs.ErrUserRejected)

	_, err := e.Pay(context.Background(), req, w)
	require.ErrorIs(t, err, errs.ErrUserRejected)
	require.NotErrorIs(t, err, errs.ErrSubmissionFailed)
}

func TestPay_SubmissionFailure(t *testing.T) {
	e, requests, req := newExecutorFixture(t, &fakeLedger{}, time.Second)
	w := newFakeWallet(t)
	w.sendErr = fmt.Errorf("blockhash not found")

	_, err := e.Pay(context.Background(), req, w)
	require.ErrorIs(t, err, errs.ErrSubmissionFailed)

	got, _ := requests.Get(req.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestPay_BlockhashFailure(t *testing.T) {
	e, _, req := newExecutorFixture(t, &fakeLedger{blockhashErr: fmt.Errorf("rpc down")}, time.Second)

	_, err := e.Pay(context.Background(), req, newFakeWallet(t))
	require.ErrorIs(t, err, errs.ErrSubmissionFailed)
}

func TestPay_ConfirmationTimeoutDoesNotMarkPaid(t *testing.T) {
	e, requests, req := newExecutorFixture(t, &fakeLedger{confirmHangs: true}, 50*time.Millisecond)

	_, err := e.Pay(context.Background(), req, newFakeWallet(t))
	require.ErrorIs(t, err, errs.ErrConfirmationUnknown)

	// The transfer may have landed; the local record must stay PENDING
	got, _ := requests.Get(req.ID)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Empty(t, got.Signature)
}

func TestPay_OnChainFailure(t *testing.T) {
	e, requests, req := newExecutorFixture(t, &fakeLedger{confirmErr: fmt.Errorf("transaction failed on-chain")}, time.Second)

	_, err := e.Pay(context.Background(), req, newFakeWallet(t))
	require.ErrorIs(t, err, errs.ErrSubmissionFailed)

	got, _ := requests.Get(req.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}

func testSignature() solana.Signature {
	var sig solana.Signature
	copy(sig[:], []byte("reconcile-test-signature"))
	return sig
}

func TestReconcile_ConfirmedMarksPaid(t *testing.T) {
	ledger := &fakeLedger{confirmed: true}
	e, requests, req := newExecutorFixture(t, ledger, time.Second)

	sig := testSignature()
	require.NoError(t, e.Reconcile(context.Background(), req.ID, sig.String(), "wallet-B"))

	got, _ := requests.Get(req.ID)
	assert.Equal(t, model.StatusPaid, got.Status)
	assert.Equal(t, sig.String(), got.Signature)
	assert.Equal(t, "wallet-B", got.Payer)

	// Already-paid reconcile is a no-op
	require.NoError(t, e.Reconcile(context.Background(), req.ID, sig.String(), "wallet-B"))
}

func TestReconcile_NotConfirmed(t *testing.T) {
	e, requests, req := newExecutorFixture(t, &fakeLedger{confirmed: false}, time.Second)

	sig := testSignature()
	require.Error(t, e.Reconcile(context.Background(), req.ID, sig.String(), "wallet-B"))

	got, _ := requests.Get(req.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestReconcile_LedgerUnreachable(t *testing.T) {
	e, _, req := newExecutorFixture(t, &fakeLedger{confirmedErr: fmt.Errorf("rpc down")}, time.Second)

	sig := testSignature()
	err := e.Reconcile(context.Background(), req.ID, sig.String(), "wallet-B")
	require.ErrorIs(t, err, errs.ErrConfirmationUnknown)
}
