package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/storage"
)

type fakeBalances struct {
	lamports uint64
	err      error
	calls    int
}

func (f *fakeBalances) Balance(ctx context.Context, address string) (uint64, error) {
	f.calls++
	return f.lamports, f.err
}

type balanceFunc func(ctx context.Context, address string) (uint64, error)

func (f balanceFunc) Balance(ctx context.Context, address string) (uint64, error) {
	return f(ctx, address)
}

func TestGetOrCreate_NewProfile(t *testing.T) {
	balances := &fakeBalances{lamports: 2_500_000_000}
	s, err := NewProfileStore(&storage.MemSlot{}, balances, zap.NewNop())
	require.NoError(t, err)

	p, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, "wallet-A", p.Pubkey)
	assert.Equal(t, "2.500000000", p.Balance)
	assert.False(t, p.LastLoginAt.IsZero())
	assert.Equal(t, 1, balances.calls)
}

func TestGetOrCreate_ExistingReturnedVerbatim(t *testing.T) {
	balances := &fakeBalances{lamports: 1_000_000_000}
	s, err := NewProfileStore(&storage.MemSlot{}, balances, zap.NewNop())
	require.NoError(t, err)

	first, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)

	balances.lamports = 9_000_000_000
	second, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)

	// A read never overwrites: same snapshot, no second fetch
	assert.Equal(t, first, second)
	assert.Equal(t, 1, balances.calls)
}

func TestGetOrCreate_BalanceFetchFailure(t *testing.T) {
	balances := &fakeBalances{err: fmt.Errorf("rpc down")}
	s, err := NewProfileStore(&storage.MemSlot{}, balances, zap.NewNop())
	require.NoError(t, err)

	p, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, "0", p.Balance)
}

func TestGetOrCreate_NilFetcher(t *testing.T) {
	s, err := NewProfileStore(&storage.MemSlot{}, nil, zap.NewNop())
	require.NoError(t, err)

	p, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, "0", p.Balance)
}

func TestGetOrCreate_FetchDoesNotBlockStore(t *testing.T) {
	var s *ProfileStore
	fetch := balanceFunc(func(ctx context.Context, address string) (uint64, error) {
		if address == "wallet-A" {
			// Another profile must remain reachable while this snapshot
			// is in flight; with the lock held this would deadlock
			_, err := s.GetOrCreate(ctx, "wallet-B")
			require.NoError(t, err)
		}
		return 1_000_000_000, nil
	})

	var err error
	s, err = NewProfileStore(&storage.MemSlot{}, fetch, zap.NewNop())
	require.NoError(t, err)

	p, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, "1.000000000", p.Balance)
}

func TestGetOrCreate_FirstWriteWinsDuringFetch(t *testing.T) {
	var s *ProfileStore
	calls := 0
	fetch := balanceFunc(func(ctx context.Context, address string) (uint64, error) {
		calls++
		if calls == 1 {
			// A competing login for the same address lands mid-snapshot
			_, err := s.GetOrCreate(ctx, address)
			require.NoError(t, err)
		}
		return 7_000_000_000, nil
	})

	var err error
	s, err = NewProfileStore(&storage.MemSlot{}, fetch, zap.NewNop())
	require.NoError(t, err)

	p, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)

	// The outer caller observes the record the competing creation wrote
	assert.Equal(t, "7.000000000", p.Balance)
	assert.Equal(t, 2, calls)

	again, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, 2, calls)
}

func TestGetOrCreate_PersistFailureRollsBack(t *testing.T) {
	slot := &storage.MemSlot{FailWrites: true}
	s, err := NewProfileStore(slot, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = s.GetOrCreate(context.Background(), "wallet-A")
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)

	// After the slot recovers, the profile is created fresh, not half-kept
	slot.FailWrites = false
	p, err := s.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, "wallet-A", p.Pubkey)
}

func TestProfiles_SurviveReload(t *testing.T) {
	slot := &storage.MemSlot{}
	s1, err := NewProfileStore(slot, &fakeBalances{lamports: 42}, zap.NewNop())
	require.NoError(t, err)
	p1, err := s1.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)

	s2, err := NewProfileStore(slot, nil, zap.NewNop())
	require.NoError(t, err)
	p2, err := s2.GetOrCreate(context.Background(), "wallet-A")
	require.NoError(t, err)
	assert.Equal(t, p1.Balance, p2.Balance)
	assert.Equal(t, p1.Pubkey, p2.Pubkey)
}
