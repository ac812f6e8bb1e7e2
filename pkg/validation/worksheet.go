package validation

import (
	"fmt"

	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/shopspring/decimal"
)

var (
	standardWorkdays = decimal.NewFromInt(constants.StandardWorkdays)
	extendedWorkdays = decimal.NewFromInt(constants.ExtendedWorkdays)
	maxDaysPerMonth  = decimal.NewFromInt(constants.MaxDaysPerMonth)
)

// ValidateAttendance checks day counts and returns warnings. Attendance in
// the full-month band pays the contracted salary regardless of fractions, so
// a fractional count there is reported rather than silently flattened.
func ValidateAttendance(actualWorkdays, paidLeaveDays decimal.Decimal) []string {
	var warnings []string

	if actualWorkdays.IsNegative() {
		warnings = append(warnings, fmt.Sprintf("Actual workdays are negative (%s)", actualWorkdays))
	}
	if paidLeaveDays.IsNegative() {
		warnings = append(warnings, fmt.Sprintf("Paid leave days are negative (%s)", paidLeaveDays))
	}

	if !actualWorkdays.Equal(actualWorkdays.Truncate(0)) &&
		actualWorkdays.GreaterThanOrEqual(standardWorkdays) &&
		actualWorkdays.LessThanOrEqual(extendedWorkdays) {
		warnings = append(warnings, fmt.Sprintf("Actual workdays %s fall in the full-month band (%d-%d days); the fraction does not change pay",
			actualWorkdays, constants.StandardWorkdays, constants.ExtendedWorkdays))
	}

	if total := actualWorkdays.Add(paidLeaveDays); total.GreaterThan(maxDaysPerMonth) {
		warnings = append(warnings, fmt.Sprintf("Workdays plus paid leave exceed %d days (%s)", constants.MaxDaysPerMonth, total))
	}

	return warnings
}

// ValidateAmount returns a warning when a currency input is negative.
func ValidateAmount(field string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return fmt.Sprintf("%s is negative (%s)", field, format.Currency(amount))
	}
	return ""
}

// ValidateDependents returns a warning when the dependent count is negative.
func ValidateDependents(dependents int) string {
	if dependents < 0 {
		return fmt.Sprintf("Dependents count is negative (%d)", dependents)
	}
	return ""
}

// ValidateExpenseAmount returns a warning when an expense amount cannot be
// read and will be counted as zero. number is the 1-based row label.
func ValidateExpenseAmount(number int, description, raw string) string {
	if _, ok := format.ParseGroupedOK(raw); ok {
		return ""
	}
	if description == "" {
		return fmt.Sprintf("Expense %d amount %q is not a number and counts as 0", number, raw)
	}
	return fmt.Sprintf("Expense %d '%s' amount %q is not a number and counts as 0", number, description, raw)
}

// ValidateBalance returns a warning when planned expenses exceed the funds.
func ValidateBalance(remaining decimal.Decimal) string {
	if remaining.IsNegative() {
		return fmt.Sprintf("Planned expenses exceed available funds by %s", format.Currency(remaining.Abs()))
	}
	return ""
}

// WorksheetValidator gathers every soft check for one worksheet.
type WorksheetValidator struct {
	AgreedSalary     decimal.Decimal
	InsuranceSalary  decimal.Decimal
	OtherAllowances  decimal.Decimal
	OpeningCash      decimal.Decimal
	ActualWorkdays   decimal.Decimal
	PaidLeaveDays    decimal.Decimal
	Dependents       int
	Expenses         []cashflow.Expense
	RemainingBalance decimal.Decimal
}

// ValidateAll validates the entire worksheet and returns warnings
func (wv *WorksheetValidator) ValidateAll() []string {
	var warnings []string

	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{
		{"Agreed salary", wv.AgreedSalary},
		{"Insurance salary", wv.InsuranceSalary},
		{"Other allowances", wv.OtherAllowances},
		{"Opening cash", wv.OpeningCash},
	}
	for _, a := range amounts {
		if warning := ValidateAmount(a.field, a.amount); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	warnings = append(warnings, ValidateAttendance(wv.ActualWorkdays, wv.PaidLeaveDays)...)

	if warning := ValidateDependents(wv.Dependents); warning != "" {
		warnings = append(warnings, warning)
	}

	for i, row := range wv.Expenses {
		if warning := ValidateExpenseAmount(cashflow.Number(i), row.Description, row.Amount); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if warning := ValidateBalance(wv.RemainingBalance); warning != "" {
		warnings = append(warnings, warning)
	}

	return warnings
}
