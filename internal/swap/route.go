package swap

import (
	"math/big"

	"github.com/you/swap-quoter/internal/amm"
	"github.com/you/swap-quoter/internal/types"
)

// leg is one pool hop, oriented from the reserve being paid into toward the
// reserve being drawn from.
type leg struct {
	reserveIn  *big.Int
	reserveOut *big.Int
}

// Resolve decomposes a trade between target and counter into pool legs and
// quotes them. For a buy, amount is the fixed output of the target asset and
// the returned input is what must be supplied; for a sell, amount is the
// fixed input of the target asset and the returned output is the proceeds.
// Either every leg quotes cleanly or the whole route fails: there is no
// partial result.
func Resolve(dir types.Direction, target, counter types.Symbol, amount *big.Int, snap *Snapshot) (input, output *big.Int, err error) {
	if target == counter {
		return nil, nil, newError(KindInvalidTrade)
	}

	// Orient the route source -> destination. Buying acquires the target,
	// selling disposes of it.
	src, dst := counter, target
	if dir == types.Sell {
		src, dst = target, counter
	}

	legs, err := legsFor(src, dst, snap)
	if err != nil {
		return nil, nil, err
	}

	switch dir {
	case types.Buy:
		// Walk the legs backwards with reverse quotes: each hop's required
		// input is the previous hop's required output.
		need := amount
		for i := len(legs) - 1; i >= 0; i-- {
			need, err = amm.InputGivenOutput(need, legs[i].reserveIn, legs[i].reserveOut, snap.FeeBps)
			if err != nil {
				return nil, nil, newError(KindInvalidTrade)
			}
		}
		return need, amount, nil

	case types.Sell:
		got := amount
		for i := range legs {
			got, err = amm.OutputGivenInput(got, legs[i].reserveIn, legs[i].reserveOut, snap.FeeBps)
			if err != nil {
				return nil, nil, newError(KindInvalidTrade)
			}
		}
		return amount, got, nil
	}
	return nil, nil, newError(KindInvalidTrade)
}

// legsFor builds the hop sequence between two assets. Trades touching the
// reference asset are a single hop over the other asset's pool; anything
// else routes through the reference asset in two hops.
func legsFor(src, dst types.Symbol, snap *Snapshot) ([]leg, error) {
	switch {
	case src == snap.Reference:
		p, ok := snap.reserves(dst)
		if !ok {
			return nil, newError(KindInvalidTrade)
		}
		return []leg{{p.Reference, p.Token}}, nil

	case dst == snap.Reference:
		p, ok := snap.reserves(src)
		if !ok {
			return nil, newError(KindInvalidTrade)
		}
		return []leg{{p.Token, p.Reference}}, nil

	default:
		ps, oks := snap.reserves(src)
		pd, okd := snap.reserves(dst)
		if !oks || !okd {
			return nil, newError(KindInvalidTrade)
		}
		return []leg{
			{ps.Token, ps.Reference},
			{pd.Reference, pd.Token},
		}, nil
	}
}
