package config

import (
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/iwvelando/payroll-forecast/pkg/payroll"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/shopspring/decimal"
)

// ToInputs normalizes the raw salary strings into calculator inputs.
func (s SalaryConfig) ToInputs() payroll.Inputs {
	return payroll.Inputs{
		AgreedSalary:        format.ParseGrouped(s.AgreedSalary),
		InsuranceSalary:     format.ParseGrouped(s.InsuranceSalary),
		ActualWorkdays:      format.ParseDecimal(s.ActualWorkdays),
		PaidLeaveDays:       format.ParseDecimal(s.PaidLeaveDays),
		Dependents:          format.ParseCount(s.Dependents),
		OtherAllowances:     format.ParseGrouped(s.OtherAllowances),
		OtherDeductionsMode: validation.ParseDeductionMode(s.OtherDeductions.Mode),
		OtherDeductionsRaw:  s.OtherDeductions.Value,
	}
}

// Deduction validates the other-deductions input under its mode.
func (s SalaryConfig) Deduction() validation.DeductionResult {
	return validation.ValidateDeduction(validation.ParseDeductionMode(s.OtherDeductions.Mode), s.OtherDeductions.Value)
}

// OpeningCashValue returns the normalized opening cash.
func (c CashConfig) OpeningCashValue() decimal.Decimal {
	return format.ParseGrouped(c.OpeningCash)
}
