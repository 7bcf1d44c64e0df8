// Package types provides common numeric types.
//
// Quantities and prices are decimal, not float64. Balance reconstruction
// re-sums long event histories, and binary floats accumulate visible
// drift over thousands of additions. decimal.Decimal matches the
// NUMERIC columns the store uses.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity is a stock quantity. Signed: adjustments and balances may go
// below zero.
type Quantity = decimal.Decimal

// Money is a monetary value (unit price, stock value) with full precision.
type Money = decimal.Decimal

// Zero returns the zero decimal value.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// FromFloat builds a decimal from a float.
// WARNING: prefer FromString for values that arrive as text.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FromInt builds a decimal from an integer.
func FromInt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

// FromString parses a decimal from text.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustDecimal parses a decimal from text, panics on error.
// Use only for constants and tests.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
