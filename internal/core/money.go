// Package core provides the budget model and the pure computations over it.
//
// This file contains the coercion of user-typed amounts into numbers.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// maxExponent bounds the decimal exponent of a parsed amount.
const maxExponent = 400

// Numeric converts a raw amount to a decimal.
//
// It never fails: blank or unparsable text counts as zero, and so does a
// value outside float64 range. Only a dot separates decimals; exponent
// notation is accepted.
//
// Examples:
//
//	Numeric("12.34") -> 12.34
//	Numeric(" 12.5 ") -> 12.5
//	Numeric("12,5") -> 0
//	Numeric("-3") -> -3
//	Numeric("") -> 0
//	Numeric("abc") -> 0
func Numeric(s string) decimal.Decimal {
	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseIncome parses a persisted or user-supplied income value. Unlike
// Numeric it reports malformed input so the caller can fall back.
func ParseIncome(s string) (decimal.Decimal, error) {
	return parseAmount(s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrCorruptRecord
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrCorruptRecord
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, ErrCorruptRecord
	}
	if f, err := strconv.ParseFloat(s, 64); err != nil && math.IsInf(f, 0) {
		return decimal.Zero, ErrCorruptRecord
	}
	return d, nil
}
