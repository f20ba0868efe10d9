// Package swap turns a desired trade into exact reserve-based amounts with
// slippage bounds, and classifies everything that could block submission
// into a fixed error taxonomy. All of it is pure computation over an
// explicit Snapshot; nothing here talks to the chain.
package swap

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/you/swap-quoter/internal/amm"
	"github.com/you/swap-quoter/internal/fixedmath"
	"github.com/you/swap-quoter/internal/types"
)

// AmountDecimals is the fixed-point scale of user-entered amounts.
const AmountDecimals = 18

type Validator struct {
	log *zap.Logger
}

func NewValidator(log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log}
}

// ValidateBuy quotes acquiring a fixed amount of target paid for with
// counter. Parse and route failures abort with a typed error and no quote;
// gas, balance and allowance shortfalls accumulate on a fully populated
// quote instead. The payment checks run against the slippage maximum, since
// that is what the account may actually be charged.
func (v *Validator) ValidateBuy(amount string, target, counter types.Symbol, snap *Snapshot) (*Quote, error) {
	out, err := parsePositive(amount)
	if err != nil {
		return nil, err
	}

	input, output, err := Resolve(types.Buy, target, counter, out, snap)
	if err != nil {
		return nil, err
	}

	band := amm.Bound(input, snap.SlippageBps)
	q := &Quote{
		Direction: types.Buy,
		Target:    target,
		Counter:   counter,
		Input:     input,
		Output:    output,
		Limit:     band.Max,
	}

	v.checkFunding(q, counter, band.Max, snap)

	v.log.Debug("buy validated",
		zap.String("target", string(target)),
		zap.String("counter", string(counter)),
		zap.String("input", input.String()),
		zap.String("output", output.String()),
		zap.Int("kinds", len(q.Kinds)),
	)
	return q, nil
}

// ValidateSell quotes disposing of a fixed amount of target for counter.
// The selling asset is checked against the exact input: slippage moves the
// proceeds, not what leaves the account.
func (v *Validator) ValidateSell(amount string, target, counter types.Symbol, snap *Snapshot) (*Quote, error) {
	in, err := parsePositive(amount)
	if err != nil {
		return nil, err
	}

	input, output, err := Resolve(types.Sell, target, counter, in, snap)
	if err != nil {
		return nil, err
	}

	band := amm.Bound(output, snap.SlippageBps)
	q := &Quote{
		Direction: types.Sell,
		Target:    target,
		Counter:   counter,
		Input:     input,
		Output:    output,
		Limit:     band.Min,
	}

	v.checkFunding(q, target, input, snap)

	v.log.Debug("sell validated",
		zap.String("target", string(target)),
		zap.String("counter", string(counter)),
		zap.String("input", input.String()),
		zap.String("output", output.String()),
		zap.Int("kinds", len(q.Kinds)),
	)
	return q, nil
}

// checkFunding accumulates the non-aborting conditions in fixed order:
// gas, then balance, then allowance. The reference asset is spent natively
// through the router, so it is exempt from the allowance check.
func (v *Validator) checkFunding(q *Quote, spending types.Symbol, required *big.Int, snap *Snapshot) {
	if snap.GasFloor != nil && snap.gasBalance().Cmp(snap.GasFloor) < 0 {
		q.addKind(KindInsufficientGas)
	}
	if snap.balance(spending).Cmp(required) < 0 {
		q.addKind(KindInsufficientBalance)
	}
	if spending != snap.Reference && snap.allowance(spending).Cmp(required) < 0 {
		q.addKind(KindInsufficientAllowance)
	}
}

func parsePositive(amount string) (*big.Int, error) {
	v, err := fixedmath.ParseDecimal(amount, AmountDecimals)
	if err != nil || v.Sign() <= 0 {
		return nil, newError(KindInvalidAmount)
	}
	return v, nil
}
