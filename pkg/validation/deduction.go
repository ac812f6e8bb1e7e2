package validation

import (
	"strings"

	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/shopspring/decimal"
)

// Messages reported for an invalid other-deductions value.
const (
	MsgPercentNotNumber  = "value must be a number"
	MsgPercentNegative   = "percentage must be ≥ 0"
	MsgPercentAboveLimit = "percentage must be ≤ 100"
	MsgAmountInvalid     = "amount is invalid"
	MsgAmountNegative    = "amount must be ≥ 0"
)

var maxPercentage = decimal.NewFromInt(constants.MaxPercentage)

// DeductionMode says how the other-deductions value is interpreted.
type DeductionMode int

const (
	// DeductionUnknown is any mode value that was not recognised.
	DeductionUnknown DeductionMode = iota
	// DeductionPercent is a percentage of the insurance base.
	DeductionPercent
	// DeductionAmount is an absolute currency amount.
	DeductionAmount
)

// ParseDeductionMode maps a configuration or API mode value to its variant.
// A blank value selects the default amount mode.
func ParseDeductionMode(s string) DeductionMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ParseDeductionMode(constants.DefaultDeductionMode)
	case constants.DeductionModePercent, "percentage", "%":
		return DeductionPercent
	case constants.DeductionModeAmount, "amount":
		return DeductionAmount
	default:
		return DeductionUnknown
	}
}

// String returns the configuration spelling of the mode.
func (m DeductionMode) String() string {
	switch m {
	case DeductionPercent:
		return constants.DeductionModePercent
	case DeductionAmount:
		return constants.DeductionModeAmount
	default:
		return "unknown"
	}
}

// MarshalText lets the mode appear by name in JSON and YAML.
func (m DeductionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts any spelling understood by ParseDeductionMode.
func (m *DeductionMode) UnmarshalText(text []byte) error {
	*m = ParseDeductionMode(string(text))
	return nil
}

// DeductionResult is the outcome of validating the other-deductions field.
// Value is in [0,100] for percentages and non-negative for amounts; it is
// zero whenever Valid is false.
type DeductionResult struct {
	Valid bool            `json:"valid"`
	Mode  DeductionMode   `json:"mode"`
	Value decimal.Decimal `json:"value"`
	Error string          `json:"error,omitempty"`
}

// ValidateDeduction checks the raw other-deductions input against its mode.
// A blank field means no deduction. Callers must not run the payroll
// calculation unless the result is valid.
func ValidateDeduction(mode DeductionMode, raw string) DeductionResult {
	if strings.TrimSpace(raw) == "" {
		return validDeduction(mode, decimal.Zero)
	}

	switch mode {
	case DeductionPercent:
		normalized := strings.ReplaceAll(format.StripSpaces(raw), constants.DecimalMark, ".")
		value, err := format.ParsePlain(normalized)
		if err != nil {
			return invalidDeduction(mode, MsgPercentNotNumber)
		}
		if value.IsNegative() {
			return invalidDeduction(mode, MsgPercentNegative)
		}
		if value.GreaterThan(maxPercentage) {
			return invalidDeduction(mode, MsgPercentAboveLimit)
		}
		return validDeduction(mode, value)

	case DeductionAmount:
		normalized := strings.ReplaceAll(raw, constants.GroupSeparator, "")
		normalized = strings.ReplaceAll(normalized, constants.DecimalMark, ".")
		normalized = format.StripSpaces(normalized)
		value, err := format.ParsePlain(normalized)
		if err != nil {
			return invalidDeduction(mode, MsgAmountInvalid)
		}
		if value.IsNegative() {
			return invalidDeduction(mode, MsgAmountNegative)
		}
		return validDeduction(mode, value)

	default:
		return validDeduction(mode, decimal.Zero)
	}
}

func validDeduction(mode DeductionMode, value decimal.Decimal) DeductionResult {
	return DeductionResult{Valid: true, Mode: mode, Value: value}
}

func invalidDeduction(mode DeductionMode, msg string) DeductionResult {
	return DeductionResult{Valid: false, Mode: mode, Value: decimal.Zero, Error: msg}
}
