package swap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/swap-quoter/internal/amm"
	"github.com/you/swap-quoter/internal/types"
)

const (
	weth  = types.Symbol("WETH")
	socks = types.Symbol("SOCKS")
	abc   = types.Symbol("ABC")
	xyz   = types.Symbol("XYZ")
)

func bi(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test literal: " + s)
	}
	return v
}

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), bi("1000000000000000000"))
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Reference:   weth,
		FeeBps:      30,
		SlippageBps: 200,
		GasFloor:    bi("10000000000000000"), // 0.01 ether
		Balances:    map[types.Symbol]*big.Int{},
		Allowances:  map[types.Symbol]*big.Int{},
		Reserves: map[types.Symbol]types.ReservePair{
			socks: {Reference: eth(1000), Token: eth(50)},
			abc:   {Reference: eth(1000), Token: eth(400)},
			xyz:   {Reference: eth(500), Token: eth(200)},
		},
	}
}

func TestResolveDirectBuy(t *testing.T) {
	snap := testSnapshot()
	in, out, err := Resolve(types.Buy, socks, weth, eth(1), snap)
	require.NoError(t, err)
	assert.Equal(t, bi("20469571981249872066"), in)
	assert.Equal(t, eth(1), out)
}

func TestResolveDirectSell(t *testing.T) {
	snap := testSnapshot()
	in, out, err := Resolve(types.Sell, socks, weth, eth(2), snap)
	require.NoError(t, err)
	assert.Equal(t, eth(2), in)
	assert.Equal(t, bi("38350578912951494403"), out)
}

func TestResolveBuyReferenceWithToken(t *testing.T) {
	// Buying WETH itself, paid in SOCKS: single hop over the SOCKS pool in
	// the token->reference orientation.
	snap := testSnapshot()
	in, out, err := Resolve(types.Buy, weth, socks, eth(1), snap)
	require.NoError(t, err)
	assert.Equal(t, eth(1), out)

	want, werr := amm.InputGivenOutput(eth(1), eth(50), eth(1000), 30)
	require.NoError(t, werr)
	assert.Equal(t, want, in)
}

func TestResolveRoutedBuy(t *testing.T) {
	snap := testSnapshot()
	in, out, err := Resolve(types.Buy, xyz, abc, eth(2), snap)
	require.NoError(t, err)
	assert.Equal(t, eth(2), out)
	assert.Equal(t, bi("2042725837461673740"), in)
}

func TestResolveRoutedBuyComposition(t *testing.T) {
	// Routing through the reference asset must equal the two underlying
	// reverse quotes chained by hand: composition adds no rounding.
	snap := testSnapshot()
	in, _, err := Resolve(types.Buy, xyz, abc, eth(2), snap)
	require.NoError(t, err)

	refNeeded, err := amm.InputGivenOutput(eth(2), eth(500), eth(200), 30)
	require.NoError(t, err)
	assert.Equal(t, bi("5065702156975978441"), refNeeded)

	srcNeeded, err := amm.InputGivenOutput(refNeeded, eth(400), eth(1000), 30)
	require.NoError(t, err)
	assert.Equal(t, srcNeeded, in)
}

func TestResolveRoutedSell(t *testing.T) {
	snap := testSnapshot()
	in, out, err := Resolve(types.Sell, abc, xyz, eth(3), snap)
	require.NoError(t, err)
	assert.Equal(t, eth(3), in)
	assert.Equal(t, bi("2916728350299346098"), out)
}

func TestResolveSameAsset(t *testing.T) {
	snap := testSnapshot()
	_, _, err := Resolve(types.Buy, socks, socks, eth(1), snap)
	require.Error(t, err)
	assert.Equal(t, KindInvalidTrade, ErrorKind(err))
}

func TestResolveUnknownOrDegeneratePair(t *testing.T) {
	snap := testSnapshot()
	_, _, err := Resolve(types.Buy, types.Symbol("NOPE"), weth, eth(1), snap)
	assert.Equal(t, KindInvalidTrade, ErrorKind(err))

	snap.Reserves[socks] = types.ReservePair{Reference: new(big.Int), Token: eth(50)}
	_, _, err = Resolve(types.Sell, socks, weth, eth(1), snap)
	assert.Equal(t, KindInvalidTrade, ErrorKind(err))
}

func TestResolveFailsAtEitherHop(t *testing.T) {
	// Asking for the destination pool's whole reserve breaks the second
	// reverse quote; the route must fail as a unit.
	snap := testSnapshot()
	_, _, err := Resolve(types.Buy, xyz, abc, eth(200), snap)
	require.Error(t, err)
	assert.Equal(t, KindInvalidTrade, ErrorKind(err))

	// A first-hop failure: selling more ABC than its pool can absorb still
	// quotes (forward quotes cannot exceed the reserve), so break the hop by
	// emptying the source pool instead.
	snap.Reserves[abc] = types.ReservePair{Reference: eth(1000), Token: new(big.Int)}
	_, _, err = Resolve(types.Sell, abc, xyz, eth(3), snap)
	assert.Equal(t, KindInvalidTrade, ErrorKind(err))
}
