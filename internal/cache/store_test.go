package cache

import (
	"context"
	"math/big"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/swap-quoter/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewStore(Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutAndGetReserves(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pair := types.ReservePair{
		Reference: new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18)),
		Token:     new(big.Int).Mul(big.NewInt(50), big.NewInt(1e18)),
	}
	require.NoError(t, s.PutReserves(ctx, types.Symbol("SOCKS"), pair, 1700000000000))

	got, tsMs, err := s.Reserves(ctx, types.Symbol("SOCKS"))
	require.NoError(t, err)
	assert.Equal(t, pair.Reference, got.Reference)
	assert.Equal(t, pair.Token, got.Token)
	assert.Equal(t, int64(1700000000000), tsMs)
}

func TestReservesMissingIsNil(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Reserves(context.Background(), types.Symbol("NOPE"))
	assert.ErrorIs(t, err, redis.Nil)
}

func TestPutOverwritesAndBumpsActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pair := types.ReservePair{Reference: big.NewInt(10), Token: big.NewInt(20)}
	require.NoError(t, s.PutReserves(ctx, types.Symbol("SOCKS"), pair, 100))

	pair.Reference = big.NewInt(11)
	require.NoError(t, s.PutReserves(ctx, types.Symbol("SOCKS"), pair, 200))

	got, tsMs, err := s.Reserves(ctx, types.Symbol("SOCKS"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(11), got.Reference)
	assert.Equal(t, int64(200), tsMs)

	active, err := s.ActiveSymbols(ctx, 150)
	require.NoError(t, err)
	assert.Equal(t, []string{"SOCKS"}, active)
}

func TestActiveSymbolsFiltersByFreshness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pair := types.ReservePair{Reference: big.NewInt(1), Token: big.NewInt(2)}
	require.NoError(t, s.PutReserves(ctx, types.Symbol("ABC"), pair, 100))
	require.NoError(t, s.PutReserves(ctx, types.Symbol("XYZ"), pair, 300))

	active, err := s.ActiveSymbols(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, []string{"XYZ"}, active)

	active, err = s.ActiveSymbols(ctx, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ABC", "XYZ"}, active)
}
