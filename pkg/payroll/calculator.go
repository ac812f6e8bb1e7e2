// Package payroll turns compensation and attendance inputs into a monthly
// payroll breakdown: prorated salary, paid leave, statutory insurance,
// personal income tax and net salary.
package payroll

import (
	"errors"
	"fmt"

	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/mathutil"
	"github.com/iwvelando/payroll-forecast/pkg/tax"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidDeduction is returned when Calculate is asked to run with a
// deduction that failed validation.
var ErrInvalidDeduction = errors.New("invalid other deductions")

var (
	socialInsuranceRate       = mathutil.MustRate(constants.SocialInsuranceRate)
	healthInsuranceRate       = mathutil.MustRate(constants.HealthInsuranceRate)
	unemploymentInsuranceRate = mathutil.MustRate(constants.UnemploymentInsuranceRate)
	personalDeduction         = decimal.NewFromInt(constants.PersonalDeduction)
	dependentDeduction        = decimal.NewFromInt(constants.DependentDeduction)
	standardWorkdays          = decimal.NewFromInt(constants.StandardWorkdays)
	extendedWorkdays          = decimal.NewFromInt(constants.ExtendedWorkdays)
)

// Inputs holds the normalized salary inputs for one month.
type Inputs struct {
	AgreedSalary        decimal.Decimal
	InsuranceSalary     decimal.Decimal
	ActualWorkdays      decimal.Decimal
	PaidLeaveDays       decimal.Decimal
	Dependents          int
	OtherAllowances     decimal.Decimal
	OtherDeductionsMode validation.DeductionMode
	OtherDeductionsRaw  string
}

// Result is the payroll breakdown for one month.
type Result struct {
	InsuranceBase         decimal.Decimal `json:"insuranceBase"`
	WorkdaySalary         decimal.Decimal `json:"workdaySalary"`
	PaidLeaveSalary       decimal.Decimal `json:"paidLeaveSalary"`
	OtherAllowances       decimal.Decimal `json:"otherAllowances"`
	TotalIncome           decimal.Decimal `json:"totalIncome"`
	SocialInsurance       decimal.Decimal `json:"bhxh"`
	HealthInsurance       decimal.Decimal `json:"bhyt"`
	UnemploymentInsurance decimal.Decimal `json:"bhtn"`
	TotalInsurance        decimal.Decimal `json:"totalInsurance"`
	OtherDeductions       decimal.Decimal `json:"otherDeductions"`
	TotalDeductions       decimal.Decimal `json:"totalDeductions"`
	TaxableIncome         decimal.Decimal `json:"taxableIncome"`
	PersonalIncomeTax     decimal.Decimal `json:"personalIncomeTax"`
	NetSalary             decimal.Decimal `json:"netSalary"`
}

// Calculator runs the payroll pipeline. It holds no state besides its
// logger, so one Calculator may be shared between goroutines.
type Calculator struct {
	logger   *zap.Logger
	brackets []tax.Bracket
}

// NewCalculator creates a calculator using the default tax schedule.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, brackets: tax.DefaultBrackets()}
}

// Calculate computes the payroll breakdown. deduction must be the result of
// validating in.OtherDeductionsRaw under in.OtherDeductionsMode; an invalid
// deduction aborts the calculation with ErrInvalidDeduction.
func (c *Calculator) Calculate(in Inputs, deduction validation.DeductionResult) (Result, error) {
	if !deduction.Valid {
		c.logger.Debug("refusing to calculate with invalid deduction",
			zap.String("op", "payroll.Calculate"),
			zap.String("mode", deduction.Mode.String()),
			zap.String("reason", deduction.Error),
		)
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidDeduction, deduction.Error)
	}

	var r Result

	r.InsuranceBase = InsuranceBase(in)
	r.WorkdaySalary = WorkdaySalary(in.AgreedSalary, in.ActualWorkdays)
	r.PaidLeaveSalary = PaidLeaveSalary(r.InsuranceBase, in.PaidLeaveDays)
	r.OtherAllowances = in.OtherAllowances
	r.TotalIncome = mathutil.Sum(r.WorkdaySalary, r.PaidLeaveSalary, r.OtherAllowances)
	c.logger.Debug("computed gross income",
		zap.String("op", "payroll.Calculate"),
		zap.String("workdaySalary", r.WorkdaySalary.String()),
		zap.String("paidLeaveSalary", r.PaidLeaveSalary.String()),
		zap.String("totalIncome", r.TotalIncome.String()),
	)

	r.SocialInsurance = r.InsuranceBase.Mul(socialInsuranceRate)
	r.HealthInsurance = r.InsuranceBase.Mul(healthInsuranceRate)
	r.UnemploymentInsurance = r.InsuranceBase.Mul(unemploymentInsuranceRate)
	r.TotalInsurance = mathutil.Sum(r.SocialInsurance, r.HealthInsurance, r.UnemploymentInsurance)

	r.OtherDeductions = OtherDeductions(r.InsuranceBase, deduction)
	r.TotalDeductions = r.TotalInsurance.Add(r.OtherDeductions)
	c.logger.Debug("computed deductions",
		zap.String("op", "payroll.Calculate"),
		zap.String("insuranceBase", r.InsuranceBase.String()),
		zap.String("totalInsurance", r.TotalInsurance.String()),
		zap.String("otherDeductions", r.OtherDeductions.String()),
	)

	r.TaxableIncome = TaxableIncome(r.TotalIncome, r.TotalInsurance, in.Dependents)
	r.PersonalIncomeTax = tax.ComputeTax(r.TaxableIncome, c.brackets)
	r.NetSalary = r.TotalIncome.Sub(r.TotalDeductions)
	c.logger.Debug("computed net salary",
		zap.String("op", "payroll.Calculate"),
		zap.String("taxableIncome", r.TaxableIncome.String()),
		zap.String("personalIncomeTax", r.PersonalIncomeTax.String()),
		zap.String("netSalary", r.NetSalary.String()),
	)

	return r, nil
}

// InsuranceBase returns the insurance salary, or the agreed salary when no
// positive insurance salary was given.
func InsuranceBase(in Inputs) decimal.Decimal {
	if in.InsuranceSalary.IsPositive() {
		return in.InsuranceSalary
	}
	return in.AgreedSalary
}

// WorkdaySalary prorates the agreed salary by attendance. Below the standard
// month it is paid per day on a 22-day basis, above the extended month on a
// 26-day basis, and anywhere in between the full salary is paid.
func WorkdaySalary(agreedSalary, actualWorkdays decimal.Decimal) decimal.Decimal {
	switch {
	case actualWorkdays.LessThan(standardWorkdays):
		return mathutil.Prorate(agreedSalary, constants.StandardWorkdays, actualWorkdays)
	case actualWorkdays.GreaterThan(extendedWorkdays):
		return mathutil.Prorate(agreedSalary, constants.ExtendedWorkdays, actualWorkdays)
	default:
		return agreedSalary
	}
}

// PaidLeaveSalary pays leave days on a 26-day basis of the insurance base.
func PaidLeaveSalary(insuranceBase, paidLeaveDays decimal.Decimal) decimal.Decimal {
	if !paidLeaveDays.IsPositive() {
		return decimal.Zero
	}
	return mathutil.Prorate(insuranceBase, constants.ExtendedWorkdays, paidLeaveDays)
}

// OtherDeductions resolves a validated deduction to an amount. Percentages
// apply to the insurance base.
func OtherDeductions(insuranceBase decimal.Decimal, deduction validation.DeductionResult) decimal.Decimal {
	switch deduction.Mode {
	case validation.DeductionPercent:
		return mathutil.ApplyPercentage(insuranceBase, deduction.Value)
	case validation.DeductionAmount:
		return deduction.Value
	default:
		return decimal.Zero
	}
}

// TaxableIncome subtracts insurance and the family allowances from income,
// clamped at zero.
func TaxableIncome(totalIncome, totalInsurance decimal.Decimal, dependents int) decimal.Decimal {
	allowances := personalDeduction.Add(dependentDeduction.Mul(decimal.NewFromInt(int64(dependents))))
	return mathutil.NonNegative(totalIncome.Sub(totalInsurance).Sub(allowances))
}
