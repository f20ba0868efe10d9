// Package fixedmath implements integer arithmetic over fixed-point token
// amounts. Amounts are non-negative big.Ints scaled by a fixed number of
// decimals (18 on mainnet); every operation that could leave the valid
// range fails loudly instead of wrapping.
package fixedmath

import (
	"errors"
	"math/big"

	ethmath "github.com/ethereum/go-ethereum/common/math"
)

var (
	ErrUnderflow    = errors.New("fixedmath: underflow")
	ErrDivideByZero = errors.New("fixedmath: divide by zero")
	ErrOutOfRange   = errors.New("fixedmath: amount out of range")
)

// MaxAmount is the largest representable amount, one full EVM word. Results
// above it cannot settle on chain.
var MaxAmount = new(big.Int).Set(ethmath.MaxBig256)

var ten = big.NewInt(10)

// Add returns x+y, failing with ErrOutOfRange above MaxAmount.
func Add(x, y *big.Int) (*big.Int, error) {
	z := new(big.Int).Add(x, y)
	if z.Cmp(MaxAmount) > 0 {
		return nil, ErrOutOfRange
	}
	return z, nil
}

// Sub returns x-y, failing with ErrUnderflow when the result would be
// negative.
func Sub(x, y *big.Int) (*big.Int, error) {
	if x.Cmp(y) < 0 {
		return nil, ErrUnderflow
	}
	return new(big.Int).Sub(x, y), nil
}

// Mul returns x*y. big.Int keeps full precision for the intermediate
// product; only the final result is range-checked.
func Mul(x, y *big.Int) (*big.Int, error) {
	z := new(big.Int).Mul(x, y)
	if z.Cmp(MaxAmount) > 0 {
		return nil, ErrOutOfRange
	}
	return z, nil
}

// Div returns x/y truncated toward zero, failing with ErrDivideByZero on a
// zero divisor.
func Div(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	return new(big.Int).Quo(x, y), nil
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi *big.Int) *big.Int {
	if v.Cmp(lo) < 0 {
		return new(big.Int).Set(lo)
	}
	if v.Cmp(hi) > 0 {
		return new(big.Int).Set(hi)
	}
	return new(big.Int).Set(v)
}

// ScalePow10 rescales v by 10^exp: positive exponents multiply, negative
// exponents divide with truncation. Used to move amounts between asset
// decimal precisions.
func ScalePow10(v *big.Int, exp int) (*big.Int, error) {
	if exp == 0 {
		return new(big.Int).Set(v), nil
	}
	p := new(big.Int).Exp(ten, big.NewInt(int64(abs(exp))), nil)
	if exp > 0 {
		return Mul(v, p)
	}
	return Div(v, p)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
