package format

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

var maxCount = decimal.NewFromInt(constants.MaxCount)

// ErrNotPlainNumber is returned by ParsePlain for anything other than an
// optionally signed run of digits with at most one decimal point.
var ErrNotPlainNumber = errors.New("not a plain number")

// Exponent forms ("1e9") are excluded: they let a short input expand into an
// arbitrarily large value.
var plainNumber = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)$`)

// ParsePlain parses an already normalized numeral such as "-1500.5".
func ParsePlain(s string) (decimal.Decimal, error) {
	if !plainNumber.MatchString(s) {
		return decimal.Zero, ErrNotPlainNumber
	}
	return decimal.NewFromString(s)
}

// ParseGrouped reads a grouped amount such as "1.000.000" or "1.500,5".
// Whitespace, grouping dots and a trailing currency symbol are ignored and a
// comma is read as the decimal mark.
func ParseGrouped(s string) decimal.Decimal {
	value, _ := ParseGroupedOK(s)
	return value
}

// ParseGroupedOK is ParseGrouped that also reports whether the input was
// readable. Blank input is readable and yields zero.
func ParseGroupedOK(s string) (decimal.Decimal, bool) {
	cleaned := StripSpaces(s)
	cleaned = strings.TrimSuffix(cleaned, constants.CurrencySymbol)
	cleaned = strings.ReplaceAll(cleaned, constants.GroupSeparator, "")
	cleaned = strings.ReplaceAll(cleaned, constants.DecimalMark, ".")
	if cleaned == "" {
		return decimal.Zero, true
	}
	value, err := ParsePlain(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// ParseDecimal reads an ungrouped real number such as a day count ("22.5" or
// "22,5").
func ParseDecimal(s string) decimal.Decimal {
	cleaned := strings.ReplaceAll(StripSpaces(s), constants.DecimalMark, ".")
	return parseOrZero(cleaned)
}

// ParseCount reads a whole count, discarding any fractional part. The result
// is clamped to ±constants.MaxCount.
func ParseCount(s string) int {
	value := ParseDecimal(s).Truncate(0)
	if value.GreaterThan(maxCount) {
		return constants.MaxCount
	}
	if value.LessThan(maxCount.Neg()) {
		return -constants.MaxCount
	}
	return int(value.IntPart())
}

// StripSpaces removes every whitespace rune, including non-breaking spaces.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func parseOrZero(s string) decimal.Decimal {
	value, err := ParsePlain(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}
