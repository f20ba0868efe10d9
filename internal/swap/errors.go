package swap

import (
	"errors"

	"github.com/you/swap-quoter/internal/amm"
	"github.com/you/swap-quoter/internal/fixedmath"
)

// Kind is the closed set of validation failure conditions. Callers branch
// on kinds, never on error strings.
type Kind string

const (
	KindInvalidAmount         Kind = "INVALID_AMOUNT"
	KindInvalidTrade          Kind = "INVALID_TRADE"
	KindInsufficientGas       Kind = "INSUFFICIENT_ETH_GAS"
	KindInsufficientBalance   Kind = "INSUFFICIENT_TOKEN_BALANCE"
	KindInsufficientAllowance Kind = "INSUFFICIENT_ALLOWANCE"
	KindUnderflow             Kind = "UNDERFLOW"
	KindDivideByZero          Kind = "DIVIDE_BY_ZERO"
)

// Error tags a validation failure with its Kind. It carries no payload: the
// kind alone identifies the condition.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string { return "swap: " + string(e.Kind) }

func newError(k Kind) *Error { return &Error{Kind: k} }

// ErrorKind extracts the taxonomy kind from any error produced inside the
// engine. Arithmetic guard violations map to their own kinds so an upstream
// input-range defect is distinguishable from a plain degenerate trade.
func ErrorKind(err error) Kind {
	var se *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return se.Kind
	case errors.Is(err, fixedmath.ErrUnderflow):
		return KindUnderflow
	case errors.Is(err, fixedmath.ErrDivideByZero):
		return KindDivideByZero
	case errors.Is(err, fixedmath.ErrBadAmount), errors.Is(err, fixedmath.ErrOutOfRange):
		return KindInvalidAmount
	case errors.Is(err, amm.ErrInvalidTrade):
		return KindInvalidTrade
	default:
		return KindInvalidTrade
	}
}
