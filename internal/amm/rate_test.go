package amm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	// 1000 ETH / 50 SOCKS: one ETH buys 0.05 SOCKS at spot.
	r, ok := Rate(reserveRef, reserveTok, false)
	require.True(t, ok)
	assert.Equal(t, bi("50000000000000000"), r)

	r, ok = Rate(reserveRef, reserveTok, true)
	require.True(t, ok)
	assert.Equal(t, bi("20000000000000000000"), r)
}

func TestRateUnavailable(t *testing.T) {
	_, ok := Rate(new(big.Int), reserveTok, false)
	assert.False(t, ok, "zero reserve must degrade, not divide by zero")

	_, ok = Rate(reserveRef, nil, false)
	assert.False(t, ok)

	_, ok = Rate(nil, nil, true)
	assert.False(t, ok)
}

func TestRateInversionConsistency(t *testing.T) {
	fwd, ok := Rate(big.NewInt(3), big.NewInt(7), false)
	require.True(t, ok)
	inv, ok := Rate(big.NewInt(7), big.NewInt(3), false)
	require.True(t, ok)

	also, ok := Rate(big.NewInt(3), big.NewInt(7), true)
	require.True(t, ok)
	assert.Equal(t, inv, also)
	assert.NotEqual(t, fwd, inv)
}
