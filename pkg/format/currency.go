// Package format converts between user-facing numeral strings and decimal
// amounts. Parsing never fails: input that cannot be read as a number
// collapses to zero.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// locale drives thousands grouping for every formatted numeral.
var locale = language.Vietnamese

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// Grouped renders an amount as a whole number with thousands grouping
// (e.g., "1.234.567").
func Grouped(amount decimal.Decimal) string {
	whole := amount.Round(0)
	if whole.LessThan(minInt64) || whole.GreaterThan(maxInt64) {
		return groupDigits(whole.BigInt().String())
	}
	p := message.NewPrinter(locale)
	return p.Sprintf("%d", whole.IntPart())
}

// groupDigits inserts the group separator into a signed digit string. It
// covers values the locale printer cannot take as an int64.
func groupDigits(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(constants.GroupSeparator)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// Currency returns a whole-unit currency string (e.g., "22.000.000 ₫").
func Currency(amount decimal.Decimal) string {
	return Grouped(amount) + " " + constants.CurrencySymbol
}

// CurrencyCode is Currency with the ISO code instead of the symbol, for
// renderers limited to Latin-1 fonts.
func CurrencyCode(amount decimal.Decimal) string {
	return Grouped(amount) + " " + constants.CurrencyCode
}

// GroupedFloat is Grouped for float callers; NaN and infinities format as 0.
func GroupedFloat(value float64) string {
	return Grouped(fromFloat(value))
}

// CurrencyFloat is Currency for float callers; NaN and infinities format as 0.
func CurrencyFloat(value float64) string {
	return Currency(fromFloat(value))
}

func fromFloat(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}
