// Package shared holds the rounding, time-grid, and statistical helpers
// that every planning stage is built on.
package shared

import "github.com/shopspring/decimal"

// Round4 rounds a quantity or cost to 4 fractional digits, half-away-from-zero.
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// Round2 rounds a percentage to 2 fractional digits, half-away-from-zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round4F is a float64 convenience wrapper around Round4 for call sites
// that work in floats (statistics, capacity hours) before handing the
// result back to the decimal world.
func Round4F(f float64) float64 {
	return decimal.NewFromFloat(f).Round(4).InexactFloat64()
}

// Round2F is the float64 counterpart of Round2.
func Round2F(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// MaxDecimal returns the larger of two decimals.
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ZeroFloor clamps a decimal at zero from below.
func ZeroFloor(d decimal.Decimal) decimal.Decimal {
	return MaxDecimal(d, decimal.Zero)
}
