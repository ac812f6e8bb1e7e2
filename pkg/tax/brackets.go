// Package tax applies the progressive personal-income-tax schedule.
package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one step of a progressive schedule. Limit is the cumulative
// taxable-income ceiling of the step; the final step is Unbounded and has no
// ceiling.
type Bracket struct {
	Limit     decimal.Decimal
	Unbounded bool
	Rate      decimal.Decimal
}

// DefaultBrackets returns the monthly personal-income-tax schedule:
//
//	up to  5,000,000   5%
//	up to 10,000,000  10%
//	up to 18,000,000  15%
//	up to 32,000,000  20%
//	up to 52,000,000  25%
//	up to 80,000,000  30%
//	above 80,000,000  35%
//
// A fresh slice is returned on every call so callers cannot alter the schedule.
func DefaultBrackets() []Bracket {
	return []Bracket{
		{Limit: decimal.NewFromInt(5_000_000), Rate: decimal.RequireFromString("0.05")},
		{Limit: decimal.NewFromInt(10_000_000), Rate: decimal.RequireFromString("0.10")},
		{Limit: decimal.NewFromInt(18_000_000), Rate: decimal.RequireFromString("0.15")},
		{Limit: decimal.NewFromInt(32_000_000), Rate: decimal.RequireFromString("0.20")},
		{Limit: decimal.NewFromInt(52_000_000), Rate: decimal.RequireFromString("0.25")},
		{Limit: decimal.NewFromInt(80_000_000), Rate: decimal.RequireFromString("0.30")},
		{Unbounded: true, Rate: decimal.RequireFromString("0.35")},
	}
}

// ComputeTax walks the schedule in order, taxing each slice of income at its
// bracket's rate, and stops once the income is exhausted. Taxable income must
// already be clamped at zero.
func ComputeTax(taxableIncome decimal.Decimal, brackets []Bracket) decimal.Decimal {
	remaining := taxableIncome
	previousLimit := decimal.Zero
	total := decimal.Zero

	for _, bracket := range brackets {
		if !remaining.IsPositive() {
			break
		}
		slice := remaining
		if !bracket.Unbounded {
			slice = decimal.Min(remaining, bracket.Limit.Sub(previousLimit))
			previousLimit = bracket.Limit
		}
		total = total.Add(slice.Mul(bracket.Rate))
		remaining = remaining.Sub(slice)
	}

	return total
}

// MarginalRate returns the rate applied to the next unit of income above
// taxableIncome.
func MarginalRate(taxableIncome decimal.Decimal, brackets []Bracket) decimal.Decimal {
	for _, bracket := range brackets {
		if bracket.Unbounded || taxableIncome.LessThan(bracket.Limit) {
			return bracket.Rate
		}
	}
	return decimal.Zero
}

// ValidateBrackets checks that limits strictly increase, rates lie in [0,1]
// and only the final bracket is unbounded.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return errors.New("tax schedule has no brackets")
	}

	previousLimit := decimal.Zero
	for i, bracket := range brackets {
		if bracket.Rate.IsNegative() || bracket.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d rate %s is outside [0, 1]", i+1, bracket.Rate)
		}
		last := i == len(brackets)-1
		if bracket.Unbounded != last {
			if last {
				return fmt.Errorf("final bracket %d must be unbounded", i+1)
			}
			return fmt.Errorf("bracket %d is unbounded but is not the final bracket", i+1)
		}
		if bracket.Unbounded {
			continue
		}
		if !bracket.Limit.GreaterThan(previousLimit) {
			return fmt.Errorf("bracket %d limit %s does not exceed previous limit %s", i+1, bracket.Limit, previousLimit)
		}
		previousLimit = bracket.Limit
	}

	return nil
}
