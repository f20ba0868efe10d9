package fixedmath

import (
	"errors"
	"math/big"
	"strings"
)

var ErrBadAmount = errors.New("fixedmath: malformed amount")

// ParseDecimal converts a human-entered decimal string into an amount scaled
// by the given number of decimals. "1.5" with 18 decimals becomes
// 1500000000000000000. Negative values, non-numeric input and fractions with
// more digits than the scale allows are rejected.
func ParseDecimal(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || decimals < 0 {
		return nil, ErrBadAmount
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return nil, ErrBadAmount
		}
	}
	if whole == "" && frac == "" {
		return nil, ErrBadAmount
	}
	if len(frac) > decimals {
		return nil, ErrBadAmount
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return nil, ErrBadAmount
	}

	// Pad the fraction out to the full scale and parse the concatenation as
	// one integer.
	padded := whole + frac + strings.Repeat("0", decimals-len(frac))
	v, ok := new(big.Int).SetString(strings.TrimLeft(padded, "0"), 10)
	if !ok {
		// All zeros trims to the empty string.
		if strings.Trim(padded, "0") == "" {
			return new(big.Int), nil
		}
		return nil, ErrBadAmount
	}
	if v.Cmp(MaxAmount) > 0 {
		return nil, ErrOutOfRange
	}
	return v, nil
}

// digitsOnly accepts the empty string: "5." and ".5" are both valid input.
func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatDecimal renders a scaled amount back into a decimal string with
// trailing zeros trimmed, for logs and API responses.
func FormatDecimal(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	s := v.String()
	if decimals <= 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	whole, frac := s[:len(s)-decimals], s[len(s)-decimals:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
