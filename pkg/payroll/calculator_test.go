package payroll

import (
	"errors"
	"testing"

	"github.com/iwvelando/payroll-forecast/pkg/testutil"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWorkdaySalary(t *testing.T) {
	tests := []struct {
		name   string
		agreed string
		days   string
		want   string
	}{
		{name: "Standard month", agreed: "22000000", days: "22", want: "22000000"},
		{name: "Half month", agreed: "22000000", days: "11", want: "11000000"},
		{name: "No attendance", agreed: "22000000", days: "0", want: "0"},
		{name: "Fraction below band", agreed: "22000000", days: "21.5", want: "21500000"},
		{name: "Fraction inside band pays full salary", agreed: "22000000", days: "22.5", want: "22000000"},
		{name: "Top of band", agreed: "22000000", days: "26", want: "22000000"},
		{name: "Above band", agreed: "22000000", days: "27", want: "22846153.85"},
		{name: "Thirty days", agreed: "22000000", days: "30", want: "25384615.38"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkdaySalary(amt(tt.agreed), amt(tt.days))
			testutil.AssertAmountNear(t, tt.want, got, 2)
		})
	}
}

func TestWorkdaySalaryPlateau(t *testing.T) {
	agreed := amt("18000000")
	base := WorkdaySalary(agreed, amt("22"))
	for _, days := range []string{"22.25", "23", "24.5", "25.75", "26"} {
		testutil.AssertDecimalEqual(t, base, WorkdaySalary(agreed, amt(days)), "days %s", days)
	}
}

func TestPaidLeaveSalary(t *testing.T) {
	testutil.AssertDecimalEqual(t, amt("2000000"), PaidLeaveSalary(amt("26000000"), amt("2")))
	testutil.AssertDecimalEqual(t, amt("500000"), PaidLeaveSalary(amt("26000000"), amt("0.5")))
	assert.True(t, PaidLeaveSalary(amt("26000000"), decimal.Zero).IsZero())
	assert.True(t, PaidLeaveSalary(amt("26000000"), amt("-1")).IsZero())
}

func TestInsuranceBase(t *testing.T) {
	tests := []struct {
		name      string
		agreed    string
		insurance string
		want      string
	}{
		{name: "Explicit insurance salary", agreed: "20000000", insurance: "10000000", want: "10000000"},
		{name: "Zero falls back to agreed", agreed: "20000000", insurance: "0", want: "20000000"},
		{name: "Negative falls back to agreed", agreed: "20000000", insurance: "-1", want: "20000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Inputs{AgreedSalary: amt(tt.agreed), InsuranceSalary: amt(tt.insurance)}
			testutil.AssertDecimalEqual(t, amt(tt.want), InsuranceBase(in))
			testutil.AssertDecimalEqual(t, amt(tt.insurance), in.InsuranceSalary)
		})
	}
}

func TestTaxableIncome(t *testing.T) {
	testutil.AssertDecimalEqual(t, amt("2500000"), TaxableIncome(amt("20000000"), amt("2100000"), 1))
	testutil.AssertDecimalEqual(t, amt("6900000"), TaxableIncome(amt("20000000"), amt("2100000"), 0))
	assert.True(t, TaxableIncome(amt("10000000"), amt("1050000"), 2).IsZero())
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		inputs        Inputs
		wantIncome    string
		wantInsurance string
		wantOther     string
		wantTaxable   string
		wantTax       string
		wantNet       string
	}{
		{
			name: "Standard month with one dependent",
			inputs: Inputs{
				AgreedSalary:        amt("20000000"),
				ActualWorkdays:      amt("22"),
				Dependents:          1,
				OtherDeductionsMode: validation.DeductionAmount,
				OtherDeductionsRaw:  "0",
			},
			wantIncome:    "20000000",
			wantInsurance: "2100000",
			wantOther:     "0",
			wantTaxable:   "2500000",
			wantTax:       "125000",
			wantNet:       "17900000",
		},
		{
			name: "Percentage deduction on explicit insurance salary",
			inputs: Inputs{
				AgreedSalary:        amt("20000000"),
				InsuranceSalary:     amt("10000000"),
				ActualWorkdays:      amt("22"),
				OtherDeductionsMode: validation.DeductionPercent,
				OtherDeductionsRaw:  "10",
			},
			wantIncome:    "20000000",
			wantInsurance: "1050000",
			wantOther:     "1000000",
			wantTaxable:   "7950000",
			wantTax:       "545000",
			wantNet:       "17950000",
		},
		{
			name: "Grouped amount deduction",
			inputs: Inputs{
				AgreedSalary:        amt("20000000"),
				ActualWorkdays:      amt("22"),
				Dependents:          1,
				OtherDeductionsMode: validation.DeductionAmount,
				OtherDeductionsRaw:  "1.500.000",
			},
			wantIncome:    "20000000",
			wantInsurance: "2100000",
			wantOther:     "1500000",
			wantTaxable:   "2500000",
			wantTax:       "125000",
			wantNet:       "16400000",
		},
		{
			name: "Paid leave and allowances",
			inputs: Inputs{
				AgreedSalary:        amt("26000000"),
				ActualWorkdays:      amt("24"),
				PaidLeaveDays:       amt("2"),
				OtherAllowances:     amt("1000000"),
				OtherDeductionsMode: validation.DeductionAmount,
			},
			wantIncome:    "29000000",
			wantInsurance: "2730000",
			wantOther:     "0",
			wantTaxable:   "15270000",
			wantTax:       "1540500",
			wantNet:       "26270000",
		},
		{
			name: "Unknown deduction mode deducts nothing",
			inputs: Inputs{
				AgreedSalary:        amt("20000000"),
				ActualWorkdays:      amt("22"),
				Dependents:          1,
				OtherDeductionsMode: validation.DeductionUnknown,
				OtherDeductionsRaw:  "999",
			},
			wantIncome:    "20000000",
			wantInsurance: "2100000",
			wantOther:     "0",
			wantTaxable:   "2500000",
			wantTax:       "125000",
			wantNet:       "17900000",
		},
		{
			name: "No salary",
			inputs: Inputs{
				OtherDeductionsMode: validation.DeductionAmount,
			},
			wantIncome:    "0",
			wantInsurance: "0",
			wantOther:     "0",
			wantTaxable:   "0",
			wantTax:       "0",
			wantNet:       "0",
		},
	}

	calculator := NewCalculator(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deduction := validation.ValidateDeduction(tt.inputs.OtherDeductionsMode, tt.inputs.OtherDeductionsRaw)
			require.True(t, deduction.Valid, deduction.Error)

			got, err := calculator.Calculate(tt.inputs, deduction)
			require.NoError(t, err)

			testutil.AssertDecimalEqual(t, amt(tt.wantIncome), got.TotalIncome, "TotalIncome")
			testutil.AssertDecimalEqual(t, amt(tt.wantInsurance), got.TotalInsurance, "TotalInsurance")
			testutil.AssertDecimalEqual(t, amt(tt.wantOther), got.OtherDeductions, "OtherDeductions")
			testutil.AssertDecimalEqual(t, amt(tt.wantTaxable), got.TaxableIncome, "TaxableIncome")
			testutil.AssertDecimalEqual(t, amt(tt.wantTax), got.PersonalIncomeTax, "PersonalIncomeTax")
			testutil.AssertDecimalEqual(t, amt(tt.wantNet), got.NetSalary, "NetSalary")

			testutil.AssertDecimalEqual(t, got.WorkdaySalary.Add(got.PaidLeaveSalary).Add(got.OtherAllowances), got.TotalIncome)
			testutil.AssertDecimalEqual(t, got.TotalInsurance.Add(got.OtherDeductions), got.TotalDeductions)
			testutil.AssertDecimalEqual(t, got.TotalIncome.Sub(got.TotalDeductions), got.NetSalary)
		})
	}
}

func TestCalculateInsuranceBreakdown(t *testing.T) {
	in := Inputs{
		AgreedSalary:        amt("20000000"),
		ActualWorkdays:      amt("22"),
		OtherDeductionsMode: validation.DeductionAmount,
	}
	got, err := NewCalculator(nil).Calculate(in, validation.ValidateDeduction(in.OtherDeductionsMode, ""))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, amt("20000000"), got.InsuranceBase)
	testutil.AssertDecimalEqual(t, amt("1600000"), got.SocialInsurance)
	testutil.AssertDecimalEqual(t, amt("300000"), got.HealthInsurance)
	testutil.AssertDecimalEqual(t, amt("200000"), got.UnemploymentInsurance)
}

func TestCalculateIsIdempotent(t *testing.T) {
	in := Inputs{
		AgreedSalary:        amt("31500000"),
		InsuranceSalary:     amt("15000000"),
		ActualWorkdays:      amt("19.5"),
		PaidLeaveDays:       amt("1"),
		Dependents:          2,
		OtherAllowances:     amt("730000"),
		OtherDeductionsMode: validation.DeductionPercent,
		OtherDeductionsRaw:  "2,5",
	}
	deduction := validation.ValidateDeduction(in.OtherDeductionsMode, in.OtherDeductionsRaw)
	calculator := NewCalculator(zap.NewNop())

	first, err := calculator.Calculate(in, deduction)
	require.NoError(t, err)
	second, err := calculator.Calculate(in, deduction)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateRejectsInvalidDeduction(t *testing.T) {
	in := Inputs{
		AgreedSalary:        amt("20000000"),
		ActualWorkdays:      amt("22"),
		OtherDeductionsMode: validation.DeductionPercent,
		OtherDeductionsRaw:  "150",
	}
	deduction := validation.ValidateDeduction(in.OtherDeductionsMode, in.OtherDeductionsRaw)
	require.False(t, deduction.Valid)

	_, err := NewCalculator(zap.NewNop()).Calculate(in, deduction)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDeduction))
	assert.Contains(t, err.Error(), validation.MsgPercentAboveLimit)
}
