// Package money provides fixed-point-style monetary rounding on top of
// shopspring/decimal so that currency values never drift through binary
// floating point arithmetic.
package money

import "github.com/shopspring/decimal"

// Places is the number of decimal places all persisted/returned monetary
// values are rounded to.
const Places = 2

// Round rounds v to two decimal places, half away from zero, matching the
// "round half-up at boundaries, never mid-formula" rule.
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(Places)
}

// FromFloat builds a decimal from a float64 input (API boundary only) and
// rounds it to two places.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// ToFloat converts back to float64 for JSON payloads that the rest of the
// platform (outside this core) expects as plain numbers.
func ToFloat(v decimal.Decimal) float64 {
	f, _ := v.Round(Places).Float64()
	return f
}

// PercentOf returns v * pct/100, unrounded (callers round at the boundary
// once all chained operations are complete).
func PercentOf(v decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	return v.Mul(pct).Div(decimal.NewFromInt(100))
}

// SafeDiv returns num/den, or zero when den is zero, avoiding a panic on
// degenerate margin-percent style divisions.
func SafeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
