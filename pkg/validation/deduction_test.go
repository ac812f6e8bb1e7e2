package validation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeduction(t *testing.T) {
	tests := []struct {
		name      string
		mode      DeductionMode
		raw       string
		wantValid bool
		wantValue string
		wantError string
	}{
		{name: "Percent empty is no deduction", mode: DeductionPercent, raw: "", wantValid: true, wantValue: "0"},
		{name: "Percent whitespace is no deduction", mode: DeductionPercent, raw: "   ", wantValid: true, wantValue: "0"},
		{name: "Percent whole number", mode: DeductionPercent, raw: "10", wantValid: true, wantValue: "10"},
		{name: "Percent dot decimal", mode: DeductionPercent, raw: "1.5", wantValid: true, wantValue: "1.5"},
		{name: "Percent comma decimal", mode: DeductionPercent, raw: "1,5", wantValid: true, wantValue: "1.5"},
		{name: "Percent inner whitespace", mode: DeductionPercent, raw: " 2 ,5 ", wantValid: true, wantValue: "2.5"},
		{name: "Percent lower bound", mode: DeductionPercent, raw: "0", wantValid: true, wantValue: "0"},
		{name: "Percent upper bound", mode: DeductionPercent, raw: "100", wantValid: true, wantValue: "100"},
		{name: "Percent above 100", mode: DeductionPercent, raw: "150", wantError: MsgPercentAboveLimit},
		{name: "Percent just above 100", mode: DeductionPercent, raw: "100.01", wantError: MsgPercentAboveLimit},
		{name: "Percent negative", mode: DeductionPercent, raw: "-1", wantError: MsgPercentNegative},
		{name: "Percent not a number", mode: DeductionPercent, raw: "abc", wantError: MsgPercentNotNumber},
		{name: "Percent exponent form", mode: DeductionPercent, raw: "1e1", wantError: MsgPercentNotNumber},
		{name: "Amount empty is no deduction", mode: DeductionAmount, raw: "", wantValid: true, wantValue: "0"},
		{name: "Amount zero", mode: DeductionAmount, raw: "0", wantValid: true, wantValue: "0"},
		{name: "Amount grouped", mode: DeductionAmount, raw: "1.000.000", wantValid: true, wantValue: "1000000"},
		{name: "Amount grouped with decimal comma", mode: DeductionAmount, raw: "1.500,5", wantValid: true, wantValue: "1500.5"},
		{name: "Amount surrounding whitespace", mode: DeductionAmount, raw: " 250.000 ", wantValid: true, wantValue: "250000"},
		{name: "Amount has no upper bound", mode: DeductionAmount, raw: "999.999.999.999", wantValid: true, wantValue: "999999999999"},
		{name: "Amount negative", mode: DeductionAmount, raw: "-500", wantError: MsgAmountNegative},
		{name: "Amount invalid", mode: DeductionAmount, raw: "five hundred", wantError: MsgAmountInvalid},
		{name: "Amount exponent form", mode: DeductionAmount, raw: "1e20000000", wantError: MsgAmountInvalid},
		{name: "Unknown mode is treated as no deduction", mode: DeductionUnknown, raw: "garbage", wantValid: true, wantValue: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDeduction(tt.mode, tt.raw)
			assert.Equal(t, tt.mode, result.Mode)
			if tt.wantError != "" {
				assert.False(t, result.Valid)
				assert.Equal(t, tt.wantError, result.Error)
				assert.True(t, result.Value.IsZero())
				return
			}
			require.True(t, result.Valid, "unexpected error %q", result.Error)
			assert.Empty(t, result.Error)
			assert.True(t, result.Value.Equal(decimal.RequireFromString(tt.wantValue)),
				"value = %s, expected %s", result.Value, tt.wantValue)
		})
	}
}

func TestValidateDeductionNeverValidWhenNegative(t *testing.T) {
	for _, mode := range []DeductionMode{DeductionPercent, DeductionAmount} {
		for _, raw := range []string{"-0.01", "-1", "-100", "-1.000"} {
			result := ValidateDeduction(mode, raw)
			assert.False(t, result.Valid, "mode %s raw %q", mode, raw)
		}
	}
}

func TestParseDeductionMode(t *testing.T) {
	tests := []struct {
		input    string
		expected DeductionMode
	}{
		{"percent", DeductionPercent},
		{"Percentage", DeductionPercent},
		{"%", DeductionPercent},
		{"vnd", DeductionAmount},
		{"AMOUNT", DeductionAmount},
		{"", DeductionAmount},
		{"  ", DeductionAmount},
		{"usd", DeductionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDeductionMode(tt.input))
		})
	}
}

func TestDeductionModeText(t *testing.T) {
	assert.Equal(t, "percent", DeductionPercent.String())
	assert.Equal(t, "vnd", DeductionAmount.String())
	assert.Equal(t, "unknown", DeductionUnknown.String())

	var payload struct {
		Mode DeductionMode `json:"mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"percent"}`), &payload))
	assert.Equal(t, DeductionPercent, payload.Mode)

	encoded, err := json.Marshal(ValidateDeduction(DeductionAmount, "1.000"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true,"mode":"vnd","value":"1000"}`, string(encoded))
}
