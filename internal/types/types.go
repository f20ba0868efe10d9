package types

import "math/big"

type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Symbol identifies a tradable asset. The reference asset (the pool
// counter-currency every other asset is paired against) is just another
// symbol; which one it is comes from configuration.
type Symbol string

// ReservePair is the liquidity backing one asset against the reference
// asset: the reference-side reserve and the asset-side reserve of its pool.
type ReservePair struct {
	Reference *big.Int
	Token     *big.Int
}

// Ready reports whether both reserves are present and positive. A pair that
// is not ready is degenerate and cannot price anything.
func (p ReservePair) Ready() bool {
	return p.Reference != nil && p.Token != nil &&
		p.Reference.Sign() > 0 && p.Token.Sign() > 0
}
