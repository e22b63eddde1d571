// Package types provides common types used across Farebox.
package types

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// TokenDecimals is the number of decimal places of the settlement token.
// Fare amounts are always expressed in base units (1 token = 10^9 units).
const TokenDecimals = 9

// Amount represents a token value in base units of a specific mint.
// All arithmetic is unsigned integer-only — no floating point.
//
// Examples:
//   - Tokens("So111...", 50_000_000) = 0.050000000 of the mint
//   - Tokens("So111...", 1_000_000_000) = 1 whole token
type Amount struct {
	Value uint64 `json:"value"` // Base units (10^-9 of a token)
	Mint  string `json:"mint"`  // Asset identifier of the accepted currency
}

// Tokens creates an Amount in base units of the given mint.
func Tokens(mint string, value uint64) Amount { return Amount{Value: value, Mint: mint} }

// Zero returns a zero Amount in the specified mint.
func Zero(mint string) Amount { return Amount{Value: 0, Mint: mint} }

// Arithmetic operations

// Add adds two Amounts. Panics if mints don't match or the sum overflows.
func (a Amount) Add(other Amount) Amount {
	a.assertSameMint(other)
	sum, carry := bits.Add64(a.Value, other.Value, 0)
	if carry != 0 {
		panic("amount: addition overflow")
	}
	return Amount{Value: sum, Mint: a.Mint}
}

// Sub subtracts another Amount. Panics if mints don't match or the result
// would be negative.
func (a Amount) Sub(other Amount) Amount {
	a.assertSameMint(other)
	diff, borrow := bits.Sub64(a.Value, other.Value, 0)
	if borrow != 0 {
		panic("amount: subtraction underflow")
	}
	return Amount{Value: diff, Mint: a.Mint}
}

// SaturatingSub subtracts another Amount, clamping at zero instead of
// panicking. Panics if mints don't match.
func (a Amount) SaturatingSub(other Amount) Amount {
	a.assertSameMint(other)
	if other.Value > a.Value {
		return Amount{Value: 0, Mint: a.Mint}
	}
	return Amount{Value: a.Value - other.Value, Mint: a.Mint}
}

// Prorate scales the Amount by remaining/total using a 128-bit
// intermediate product, so the multiplication never overflows and the
// division floors. The result is always in [0, a] when remaining <= total.
func (a Amount) Prorate(remaining, total uint64) Amount {
	return Amount{Value: Prorate(a.Value, remaining, total), Mint: a.Mint}
}

// Prorate computes value * remaining / total with multiply-before-divide
// ordering over a 128-bit intermediate. Returns 0 when total is 0, and
// clamps remaining to total so the result never exceeds value.
func Prorate(value, remaining, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	if remaining > total {
		remaining = total
	}
	hi, lo := bits.Mul64(value, remaining)
	quot, _ := bits.Div64(hi, lo, total)
	return quot
}

// Comparison methods

// IsZero returns true if the value is zero.
func (a Amount) IsZero() bool { return a.Value == 0 }

// IsPositive returns true if the value is greater than zero.
func (a Amount) IsPositive() bool { return a.Value > 0 }

// Equal returns true if both Amounts are equal (same value and mint).
func (a Amount) Equal(other Amount) bool {
	return a.Value == other.Value && a.Mint == other.Mint
}

// LessThan returns true if this Amount is less than other. Panics if mints
// don't match.
func (a Amount) LessThan(other Amount) bool {
	a.assertSameMint(other)
	return a.Value < other.Value
}

// GreaterThan returns true if this Amount is greater than other. Panics if
// mints don't match.
func (a Amount) GreaterThan(other Amount) bool {
	a.assertSameMint(other)
	return a.Value > other.Value
}

// Min returns the smaller of two Amounts. Panics if mints don't match.
func (a Amount) Min(other Amount) Amount {
	a.assertSameMint(other)
	if a.Value < other.Value {
		return a
	}
	return other
}

// Formatting methods

// FormatMajor returns the whole-token string without the mint:
// "0.050000000" for Tokens(mint, 50_000_000).
func (a Amount) FormatMajor() string {
	divisor := uint64(1)
	for i := 0; i < TokenDecimals; i++ {
		divisor *= 10
	}
	major := a.Value / divisor
	minor := a.Value % divisor
	return fmt.Sprintf("%d.%09d", major, minor)
}

// String returns a human-readable string with a shortened mint suffix.
// Example: "0.050000000 So11..1112".
func (a Amount) String() string {
	return a.FormatMajor() + " " + shortMint(a.Mint)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value   uint64 `json:"value"`
		Mint    string `json:"mint"`
		Display string `json:"display"`
	}{
		Value:   a.Value,
		Mint:    a.Mint,
		Display: a.String(),
	})
}

// Helper functions

// assertSameMint panics if mints don't match.
func (a Amount) assertSameMint(other Amount) {
	if a.Mint != other.Mint {
		panic(fmt.Sprintf("amount: mint mismatch: %s != %s", a.Mint, other.Mint))
	}
}

// shortMint abbreviates long mint identifiers for display.
func shortMint(mint string) string {
	if len(mint) <= 10 {
		return mint
	}
	return mint[:4] + ".." + mint[len(mint)-4:]
}

// Sum calculates the sum of multiple Amounts. All must have the same mint.
func Sum(values ...Amount) Amount {
	if len(values) == 0 {
		return Amount{}
	}
	result := values[0]
	for i := 1; i < len(values); i++ {
		result = result.Add(values[i])
	}
	return result
}
