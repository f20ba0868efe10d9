package amm

import "math/big"

// RateScale is the fixed-point scale of spot rates: 18 decimals.
var RateScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Rate derives the spot exchange rate implied by a reserve pair, as an
// 18-decimal ratio of reserveOut to reserveIn (or the reciprocal when
// invert is set). It feeds display conversion only, so missing or empty
// reserves degrade to ok=false instead of failing the pricing path.
func Rate(reserveIn, reserveOut *big.Int, invert bool) (*big.Int, bool) {
	if reserveIn == nil || reserveOut == nil ||
		reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, false
	}
	num, den := reserveOut, reserveIn
	if invert {
		num, den = reserveIn, reserveOut
	}
	r := new(big.Int).Mul(num, RateScale)
	return r.Quo(r, den), true
}
