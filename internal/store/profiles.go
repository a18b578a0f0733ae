package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/common"
	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/model"
	"github.com/privacydash/privacydash/internal/storage"
)

// BalanceFetcher supplies a balance snapshot in lamports for new profiles.
type BalanceFetcher interface {
	Balance(ctx context.Context, address string) (uint64, error)
}

// ProfileStore keeps one UserProfile per wallet address.
type ProfileStore struct {
	slot     storage.Slot
	log      *zap.Logger
	balances BalanceFetcher // optional
	now      func() time.Time

	mu       sync.Mutex
	profiles map[string]model.UserProfile
}

// NewProfileStore loads the persisted profile map from slot. balances may be
// nil, in which case new profiles start with a zero balance snapshot.
func NewProfileStore(slot storage.Slot, balances BalanceFetcher, log *zap.Logger) (*ProfileStore, error) {
	s := &ProfileStore{
		slot:     slot,
		log:      log,
		balances: balances,
		now:      time.Now,
		profiles: make(map[string]model.UserProfile),
	}

	data, err := slot.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	if err := json.Unmarshal(data, &s.profiles); err != nil {
		return nil, fmt.Errorf("%w: malformed profile map: %v", errs.ErrStoreUnavailable, err)
	}
	return s, nil
}

// GetOrCreate returns the existing profile verbatim if present. Otherwise it
// creates one with a balance snapshot and the current timestamp, persists
// and returns it. An existing profile is never overwritten by a read.
func (s *ProfileStore) GetOrCreate(ctx context.Context, pubkey string) (model.UserProfile, error) {
	if pubkey == "" {
		return model.UserProfile{}, fmt.Errorf("pubkey is required")
	}

	s.mu.Lock()
	if p, ok := s.profiles[pubkey]; ok {
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	// Snapshot outside the lock: a slow RPC must not stall every other
	// profile operation
	balance := "0"
	if s.balances != nil {
		lamports, err := s.balances.Balance(ctx, pubkey)
		if err != nil {
			// Snapshot only; a profile must still be usable offline
			s.log.Warn("balance snapshot failed", zap.String("pubkey", pubkey), zap.Error(err))
		} else {
			balance = common.LamportsToSOL(lamports)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A competing caller may have created the profile while the snapshot
	// was in flight; the first write wins
	if p, ok := s.profiles[pubkey]; ok {
		return p, nil
	}

	p := model.UserProfile{
		Pubkey:      pubkey,
		LastLoginAt: s.now(),
		Balance:     balance,
	}
	s.profiles[pubkey] = p
	if err := s.persistLocked(); err != nil {
		delete(s.profiles, pubkey)
		return model.UserProfile{}, err
	}

	s.log.Info("profile created", zap.String("pubkey", pubkey))
	return p, nil
}

func (s *ProfileStore) persistLocked() error {
	data, err := json.Marshal(s.profiles)
	if err != nil {
		return fmt.Errorf("failed to marshal profile map: %w", err)
	}
	if err := s.slot.Write(data); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}
