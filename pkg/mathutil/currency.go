// Package mathutil provides common decimal helpers for currency arithmetic.
package mathutil

import (
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(constants.PercentageMultiplier)

// NonNegative clamps a value at zero.
func NonNegative(val decimal.Decimal) decimal.Decimal {
	if val.IsNegative() {
		return decimal.Zero
	}
	return val
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// ApplyPercentage applies a percentage (0-100 scale) to a value
func ApplyPercentage(value, percentage decimal.Decimal) decimal.Decimal {
	return value.Mul(percentage).Div(hundred)
}

// Prorate scales a full-period amount to the given number of days against a
// baseline, i.e. amount / baseline * days.
func Prorate(amount decimal.Decimal, baseline int64, days decimal.Decimal) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(baseline)).Mul(days)
}

// MustRate parses a constant rate string and panics on error. Only used for
// package-level constants known to be valid.
func MustRate(rate string) decimal.Decimal {
	return decimal.RequireFromString(rate)
}
