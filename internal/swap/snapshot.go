package swap

import (
	"math/big"

	"github.com/you/swap-quoter/internal/types"
)

// Snapshot is one consistent view of everything a validation pass needs:
// account balances and allowances, pool reserves, and the pricing policy in
// force. It is assembled by the caller (chain reads, cache, or a test) and
// never mutated by the engine; price movement between snapshot and
// submission is the caller's race to re-run, not the engine's to detect.
type Snapshot struct {
	Reference   types.Symbol
	FeeBps      uint32
	SlippageBps uint32

	// GasFloor is the minimum native balance required to fund the swap
	// transaction itself. GasBalance is the account's native balance.
	GasFloor   *big.Int
	GasBalance *big.Int

	Balances   map[types.Symbol]*big.Int
	Allowances map[types.Symbol]*big.Int
	Reserves   map[types.Symbol]types.ReservePair
}

var zeroAmount = new(big.Int)

func (s *Snapshot) balance(sym types.Symbol) *big.Int {
	if v := s.Balances[sym]; v != nil {
		return v
	}
	return zeroAmount
}

func (s *Snapshot) allowance(sym types.Symbol) *big.Int {
	if v := s.Allowances[sym]; v != nil {
		return v
	}
	return zeroAmount
}

func (s *Snapshot) gasBalance() *big.Int {
	if s.GasBalance != nil {
		return s.GasBalance
	}
	return zeroAmount
}

func (s *Snapshot) reserves(sym types.Symbol) (types.ReservePair, bool) {
	p, ok := s.Reserves[sym]
	return p, ok && p.Ready()
}
