package validation

import (
	"testing"

	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateAttendance(t *testing.T) {
	tests := []struct {
		name         string
		actual       string
		leave        string
		wantWarnings int
		wantContains string
	}{
		{name: "Regular month", actual: "22", leave: "0"},
		{name: "Whole day inside band", actual: "24", leave: "2"},
		{name: "Fraction below band", actual: "21.5", leave: "0"},
		{name: "Fraction inside band", actual: "22.5", leave: "0", wantWarnings: 1, wantContains: "full-month band"},
		{name: "Fraction at band top", actual: "25.5", leave: "0", wantWarnings: 1, wantContains: "22-26"},
		{name: "Fraction above band", actual: "26.5", leave: "0"},
		{name: "Too many days", actual: "28", leave: "4", wantWarnings: 1, wantContains: "exceed 31 days"},
		{name: "Negative workdays", actual: "-1", leave: "0", wantWarnings: 1, wantContains: "negative"},
		{name: "Negative leave", actual: "22", leave: "-2", wantWarnings: 1, wantContains: "Paid leave days are negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateAttendance(days(tt.actual), days(tt.leave))
			require.Len(t, warnings, tt.wantWarnings, "warnings: %v", warnings)
			if tt.wantContains != "" {
				assert.Contains(t, warnings[0], tt.wantContains)
			}
		})
	}
}

func TestValidateExpenseAmount(t *testing.T) {
	assert.Empty(t, ValidateExpenseAmount(1, "Rent", "3.000.000"))
	assert.Empty(t, ValidateExpenseAmount(1, "Rent", ""))
	assert.Equal(t, `Expense 2 'Rent' amount "three" is not a number and counts as 0`, ValidateExpenseAmount(2, "Rent", "three"))
	assert.Equal(t, `Expense 4 amount "x" is not a number and counts as 0`, ValidateExpenseAmount(4, "", "x"))
}

func TestValidateSingleFields(t *testing.T) {
	assert.Empty(t, ValidateAmount("Opening cash", decimal.Zero))
	assert.Contains(t, ValidateAmount("Opening cash", decimal.NewFromInt(-5000)), "Opening cash is negative")
	assert.Empty(t, ValidateDependents(0))
	assert.Contains(t, ValidateDependents(-1), "negative")
	assert.Empty(t, ValidateBalance(decimal.NewFromInt(1)))
	assert.Contains(t, ValidateBalance(decimal.NewFromInt(-500000)), "exceed available funds")
}

func TestWorksheetValidatorValidateAll(t *testing.T) {
	clean := WorksheetValidator{
		AgreedSalary:     decimal.NewFromInt(20000000),
		ActualWorkdays:   days("22"),
		PaidLeaveDays:    days("0"),
		Dependents:       1,
		Expenses:         []cashflow.Expense{{Description: "Rent", Amount: "3.000.000"}},
		RemainingBalance: decimal.NewFromInt(17900000),
	}
	assert.Empty(t, clean.ValidateAll())

	messy := WorksheetValidator{
		AgreedSalary:    decimal.NewFromInt(20000000),
		InsuranceSalary: decimal.NewFromInt(-1),
		ActualWorkdays:  days("23.5"),
		PaidLeaveDays:   days("0"),
		Dependents:      -2,
		Expenses: []cashflow.Expense{
			{Description: "Rent", Amount: "3.000.000"},
			{Description: "Gift", Amount: "lots"},
		},
		RemainingBalance: decimal.NewFromInt(-10),
	}
	warnings := messy.ValidateAll()
	require.Len(t, warnings, 5, "warnings: %v", warnings)
	assert.Contains(t, warnings[0], "Insurance salary is negative")
	assert.Contains(t, warnings[1], "full-month band")
	assert.Contains(t, warnings[2], "Dependents")
	assert.Contains(t, warnings[3], "Expense 2 'Gift'")
	assert.Contains(t, warnings[4], "exceed available funds")
}
