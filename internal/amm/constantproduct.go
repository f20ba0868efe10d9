// Package amm prices trades against constant-product liquidity pools. The
// math is integer-only and must match on-chain settlement bit for bit: a
// one-unit difference changes what a swap actually delivers.
package amm

import (
	"errors"
	"math/big"

	"github.com/you/swap-quoter/internal/fixedmath"
)

// ErrInvalidTrade marks a degenerate quote: empty reserves, a requested
// output at or above pool capacity, or a result outside the valid amount
// range.
var ErrInvalidTrade = errors.New("amm: invalid trade")

// FeeDenominator is the basis-point scale shared by fee and slippage math.
const FeeDenominator = 10000

var one = big.NewInt(1)

// OutputGivenInput quotes the pool output for a fixed input, fee-adjusted:
//
//	out = floor(in*(10000-fee)*rOut / (rIn*10000 + in*(10000-fee)))
//
// The division truncates, exactly as the pair contract does. A zero input
// quotes a zero output.
func OutputGivenInput(amountIn, reserveIn, reserveOut *big.Int, feeBps uint32) (*big.Int, error) {
	if err := checkReserves(reserveIn, reserveOut); err != nil {
		return nil, err
	}
	if amountIn == nil || amountIn.Sign() < 0 || feeBps >= FeeDenominator {
		return nil, ErrInvalidTrade
	}

	inWithFee := new(big.Int).Mul(amountIn, big.NewInt(int64(FeeDenominator-feeBps)))
	num := new(big.Int).Mul(inWithFee, reserveOut)
	den := new(big.Int).Mul(reserveIn, big.NewInt(FeeDenominator))
	den.Add(den, inWithFee)

	out := num.Quo(num, den)
	if out.Cmp(fixedmath.MaxAmount) >= 0 {
		return nil, ErrInvalidTrade
	}
	return out, nil
}

// InputGivenOutput quotes the input required to withdraw a fixed output:
//
//	in = floor(rIn*out*10000 / ((rOut-out)*(10000-fee))) + 1
//
// The +1 is unconditional, even when the division is exact. Settlement
// rounds in the pool's favor and the quote must never under-charge relative
// to it, so the occasional extra unit stays.
func InputGivenOutput(amountOut, reserveIn, reserveOut *big.Int, feeBps uint32) (*big.Int, error) {
	if err := checkReserves(reserveIn, reserveOut); err != nil {
		return nil, err
	}
	if amountOut == nil || amountOut.Sign() <= 0 || feeBps >= FeeDenominator {
		return nil, ErrInvalidTrade
	}
	// At or above the reserve the denominator stops being positive; the pool
	// cannot be drained.
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, ErrInvalidTrade
	}

	num := new(big.Int).Mul(reserveIn, amountOut)
	num.Mul(num, big.NewInt(FeeDenominator))
	den := new(big.Int).Sub(reserveOut, amountOut)
	den.Mul(den, big.NewInt(int64(FeeDenominator-feeBps)))

	in := num.Quo(num, den)
	in.Add(in, one)
	if in.Sign() <= 0 || in.Cmp(fixedmath.MaxAmount) >= 0 {
		return nil, ErrInvalidTrade
	}
	return in, nil
}

func checkReserves(reserveIn, reserveOut *big.Int) error {
	if reserveIn == nil || reserveOut == nil ||
		reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return ErrInvalidTrade
	}
	return nil
}
