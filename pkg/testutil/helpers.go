// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Amount builds a decimal from a literal and fails the test on a bad literal.
func Amount(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// AssertDecimalEqual asserts that two decimals are numerically equal,
// ignoring trailing zeros in the exponent.
func AssertDecimalEqual(t testing.TB, want, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	if want.Equal(got) {
		return true
	}
	return assert.Fail(t, "decimals not equal", append([]interface{}{"want %s, got %s", want, got}, msgAndArgs...)...)
}

// AssertAmountNear asserts that got rounds to want at the given number of
// decimal places.
func AssertAmountNear(t testing.TB, want string, got decimal.Decimal, places int32) bool {
	t.Helper()
	return AssertDecimalEqual(t, Amount(t, want), got.Round(places))
}
