package tx

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// EGLDDecimals is the number of decimals of the native token.
const EGLDDecimals = 18

// ErrInvalidAmount is returned for amounts that cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseValue parses a non-negative integer amount in the smallest
// denomination. An empty string is zero.
func ParseValue(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParseEGLD parses a decimal EGLD amount (up to 18 decimals) into the
// smallest denomination.
func ParseEGLD(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	if -d.Exponent() > EGLDDecimals {
		return nil, fmt.Errorf("%w: more than %d decimals", ErrInvalidAmount, EGLDDecimals)
	}
	return d.Shift(EGLDDecimals).BigInt(), nil
}

// FormatEGLD renders a smallest-denomination amount as EGLD, without
// trailing zeros.
func FormatEGLD(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -EGLDDecimals).String()
}
