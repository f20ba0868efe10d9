package swap

import (
	"math/big"

	"github.com/you/swap-quoter/internal/types"
)

// Quote is the validated outcome of a trade request. Amounts are always
// populated, even when validation kinds accumulated: "you would receive X,
// but the allowance is short" is more useful than a bare failure.
type Quote struct {
	Direction types.Direction
	Target    types.Symbol
	Counter   types.Symbol

	// Input is what the trade consumes, Output what it delivers, both exact.
	// Limit is the slippage-adjusted bound the submission layer passes on
	// verbatim: maximum acceptable input for buys, minimum acceptable output
	// for sells.
	Input  *big.Int
	Output *big.Int
	Limit  *big.Int

	// Kinds holds the accumulated validation failures in check order, at
	// most one of each kind.
	Kinds []Kind
}

func (q *Quote) addKind(k Kind) {
	for _, have := range q.Kinds {
		if have == k {
			return
		}
	}
	q.Kinds = append(q.Kinds, k)
}

// Err returns the first accumulated failure as an error, or nil for a clean
// quote. Check order is fixed (gas, balance, allowance), so "first" is
// deterministic.
func (q *Quote) Err() error {
	if len(q.Kinds) == 0 {
		return nil
	}
	return newError(q.Kinds[0])
}

// Valid reports whether the quote can be submitted as-is.
func (q *Quote) Valid() bool { return len(q.Kinds) == 0 }
