package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrBadAmount = errors.New("amount is not a valid money value")

var hundred = decimal.NewFromInt(100)

// ParseCents converts an operator-entered decimal string ("47.50") into
// minor units. Negative, sub-cent and non-numeric input is rejected.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrBadAmount
	}
	if d.IsNegative() {
		return 0, ErrBadAmount
	}

	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, ErrBadAmount
	}
	return cents.IntPart(), nil
}

// FormatCents renders minor units as a two-decimal string for wire output.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
