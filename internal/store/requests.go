// Package store holds the persisted payment-request and profile collections.
// Each collection lives in one storage slot and is written back whole on
// every mutation; a failed persist rolls the in-memory view back before the
// caller observes anything.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/common"
	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/model"
	"github.com/privacydash/privacydash/internal/storage"
)

const (
	// NativeMint is the sentinel mint for the native asset (system program id).
	NativeMint = "11111111111111111111111111111111"

	defaultLabel  = "Privacy Dash Invoice"
	defaultIcon   = "https://picsum.photos/200"
	defaultExpiry = 24 * time.Hour

	expiringSoonWindow = time.Hour
)

// RequestStore is the durable collection of payment requests, partitioned
// by creator. All mutations serialize on one mutex: there is a single
// logical writer per installation.
type RequestStore struct {
	slot storage.Slot
	log  *zap.Logger
	now  func() time.Time

	mu       sync.Mutex
	requests []model.PaymentRequest
}

// NewRequestStore loads the persisted collection from slot. An absent slot
// means an empty collection.
func NewRequestStore(slot storage.Slot, log *zap.Logger) (*RequestStore, error) {
	s := &RequestStore{slot: slot, log: log, now: time.Now}

	data, err := slot.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	if err := json.Unmarshal(data, &s.requests); err != nil {
		return nil, fmt.Errorf("%w: malformed request collection: %v", errs.ErrStoreUnavailable, err)
	}
	return s, nil
}

// persistLocked writes the whole collection back. Caller holds s.mu.
func (s *RequestStore) persistLocked() error {
	data, err := json.Marshal(s.requests)
	if err != nil {
		return fmt.Errorf("failed to marshal request collection: %w", err)
	}
	if err := s.slot.Write(data); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

// Create assigns a fresh id and reference, fills defaults, appends the new
// PENDING record, persists and returns it.
func (s *RequestStore) Create(params model.CreateRequestParams, creator string) (model.PaymentRequest, error) {
	if creator == "" {
		return model.PaymentRequest{}, fmt.Errorf("creator is required")
	}

	amount := params.Amount
	if amount == "" {
		amount = "0"
	}
	if _, err := common.SOLToLamports(amount); err != nil {
		return model.PaymentRequest{}, fmt.Errorf("invalid amount: %w", err)
	}

	now := s.now()
	req := model.PaymentRequest{
		ID: uuid.NewString(),
		// A fresh keypair's public key, so the request can be correlated
		// with payment-protocol metadata on the ledger.
		Reference:  solana.NewWallet().PublicKey().String(),
		Amount:     amount,
		TokenMint:  params.TokenMint,
		Label:      params.Label,
		Icon:       params.Icon,
		Ciphertext: params.Ciphertext,
		Status:     model.StatusPending,
		Creator:    creator,
		CreatedAt:  now,
		ExpiresAt:  params.ExpiresAt,
	}
	if req.TokenMint == "" {
		req.TokenMint = NativeMint
	}
	if req.Label == "" {
		req.Label = defaultLabel
	}
	if req.Icon == "" {
		req.Icon = defaultIcon
	}
	if req.ExpiresAt.IsZero() {
		req.ExpiresAt = now.Add(defaultExpiry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if err := s.persistLocked(); err != nil {
		s.requests = s.requests[:len(s.requests)-1]
		return model.PaymentRequest{}, err
	}

	s.log.Info("request created",
		zap.String("id", req.ID),
		zap.String("creator", req.Creator),
		zap.String("amount", req.Amount),
	)
	return req, nil
}

// Get returns the request by id. The second result reports presence.
func (s *RequestStore) Get(id string) (model.PaymentRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID == id {
			return s.requests[i], true
		}
	}
	return model.PaymentRequest{}, false
}

// ListAll returns requests most-recently-created first. If creator is
// non-empty the result is filtered to that partition. Stored order is never
// mutated; the view is computed fresh each call.
func (s *RequestStore) ListAll(creator string) []model.PaymentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PaymentRequest, 0, len(s.requests))
	for i := len(s.requests) - 1; i >= 0; i-- {
		if creator != "" && s.requests[i].Creator != creator {
			continue
		}
		out = append(out, s.requests[i])
	}
	return out
}

// MarkPaid transitions the request to PAID and fills payer/signature.
// No-op if the id is absent or the record is already PAID, so a retry with
// the same signature leaves the record unchanged and a later call with a
// different signature cannot revert or rewrite the first transition.
func (s *RequestStore) MarkPaid(id, signature, payer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		if s.requests[i].Status == model.StatusPaid {
			return nil
		}

		prev := s.requests[i]
		s.requests[i].Status = model.StatusPaid
		s.requests[i].Signature = signature
		s.requests[i].Payer = payer
		if err := s.persistLocked(); err != nil {
			s.requests[i] = prev
			return err
		}

		s.log.Info("request paid",
			zap.String("id", id),
			zap.String("payer", payer),
			zap.String("signature", signature),
		)
		return nil
	}
	return nil
}

// Cancel transitions the request to CANCELLED unconditionally. No-op if the
// id is absent. Cancelled records keep any payer/signature already set.
func (s *RequestStore) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}

		prev := s.requests[i]
		s.requests[i].Status = model.StatusCancelled
		if err := s.persistLocked(); err != nil {
			s.requests[i] = prev
			return err
		}

		s.log.Info("request cancelled", zap.String("id", id))
		return nil
	}
	return nil
}

// Stats aggregates over the creator's partition, computed fresh per call.
func (s *RequestStore) Stats(creator string) (model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var paidAmounts []string
	stats := model.Stats{}

	for i := range s.requests {
		r := &s.requests[i]
		if r.Creator != creator {
			continue
		}
		switch r.Status {
		case model.StatusPaid:
			paidAmounts = append(paidAmounts, r.Amount)
			y1, m1, d1 := r.CreatedAt.Year(), r.CreatedAt.Month(), r.CreatedAt.Day()
			y2, m2, d2 := now.Year(), now.Month(), now.Day()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				stats.PaidToday++
			}
		case model.StatusPending:
			stats.PendingRequests++
			if r.ExpiringSoon(now, expiringSoonWindow) {
				stats.ExpiringSoon++
			}
		}
	}

	total, err := common.SumSOL(paidAmounts...)
	if err != nil {
		return model.Stats{}, err
	}
	stats.TotalCollected = total
	return stats, nil
}
