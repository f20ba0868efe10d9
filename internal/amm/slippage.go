package amm

import (
	"math/big"

	"github.com/you/swap-quoter/internal/fixedmath"
)

// Band brackets an exact amount by a slippage tolerance. Buys care about
// Max (the most they will pay), sells about Min (the least they will
// accept).
type Band struct {
	Min *big.Int
	Max *big.Int
}

var zero = new(big.Int)

// Bound expands amount by toleranceBps in both directions, clamping each
// endpoint into the valid range. It is total: any amount yields a band.
func Bound(amount *big.Int, toleranceBps uint32) Band {
	if amount == nil {
		amount = zero
	}
	offset := new(big.Int).Mul(amount, big.NewInt(int64(toleranceBps)))
	offset.Quo(offset, big.NewInt(FeeDenominator))

	return Band{
		Min: fixedmath.Clamp(new(big.Int).Sub(amount, offset), zero, fixedmath.MaxAmount),
		Max: fixedmath.Clamp(new(big.Int).Add(amount, offset), zero, fixedmath.MaxAmount),
	}
}
