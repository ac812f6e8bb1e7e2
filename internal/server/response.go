package server

import (
	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/iwvelando/payroll-forecast/pkg/output"
	"github.com/iwvelando/payroll-forecast/pkg/payroll"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Error   string                  `json:"error"`
	Details validation.StructErrors `json:"details,omitempty"`
}

// amount carries the exact decimal (encoded as a string) and its display form.
type amount struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

func newAmount(d decimal.Decimal) amount {
	return amount{Value: d, Formatted: format.Currency(d)}
}

type payrollResponse struct {
	InsuranceBase         amount `json:"insuranceBase"`
	WorkdaySalary         amount `json:"workdaySalary"`
	PaidLeaveSalary       amount `json:"paidLeaveSalary"`
	OtherAllowances       amount `json:"otherAllowances"`
	TotalIncome           amount `json:"totalIncome"`
	SocialInsurance       amount `json:"bhxh"`
	HealthInsurance       amount `json:"bhyt"`
	UnemploymentInsurance amount `json:"bhtn"`
	TotalInsurance        amount `json:"totalInsurance"`
	OtherDeductions       amount `json:"otherDeductions"`
	TotalDeductions       amount `json:"totalDeductions"`
	TaxableIncome         amount `json:"taxableIncome"`
	PersonalIncomeTax     amount `json:"personalIncomeTax"`
	NetSalary             amount `json:"netSalary"`
}

func newPayrollResponse(r payroll.Result) payrollResponse {
	return payrollResponse{
		InsuranceBase:         newAmount(r.InsuranceBase),
		WorkdaySalary:         newAmount(r.WorkdaySalary),
		PaidLeaveSalary:       newAmount(r.PaidLeaveSalary),
		OtherAllowances:       newAmount(r.OtherAllowances),
		TotalIncome:           newAmount(r.TotalIncome),
		SocialInsurance:       newAmount(r.SocialInsurance),
		HealthInsurance:       newAmount(r.HealthInsurance),
		UnemploymentInsurance: newAmount(r.UnemploymentInsurance),
		TotalInsurance:        newAmount(r.TotalInsurance),
		OtherDeductions:       newAmount(r.OtherDeductions),
		TotalDeductions:       newAmount(r.TotalDeductions),
		TaxableIncome:         newAmount(r.TaxableIncome),
		PersonalIncomeTax:     newAmount(r.PersonalIncomeTax),
		NetSalary:             newAmount(r.NetSalary),
	}
}

type expenseRow struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Value       amount `json:"value"`
}

type cashFlowResponse struct {
	Expenses         []expenseRow `json:"expenses"`
	TotalFunds       amount       `json:"totalFunds"`
	TotalExpenses    amount       `json:"totalExpenses"`
	RemainingBalance amount       `json:"remainingBalance"`
}

func newCashFlowResponse(r cashflow.Result, expenses []cashflow.Expense) cashFlowResponse {
	rows := make([]expenseRow, 0, len(expenses))
	for i, expense := range expenses {
		rows = append(rows, expenseRow{
			Number:      cashflow.Number(i),
			Description: expense.Description,
			Amount:      expense.Amount,
			Value:       newAmount(expense.Value()),
		})
	}
	return cashFlowResponse{
		Expenses:         rows,
		TotalFunds:       newAmount(r.TotalFunds),
		TotalExpenses:    newAmount(r.TotalExpenses),
		RemainingBalance: newAmount(r.RemainingBalance),
	}
}

type cashFlowResultResponse struct {
	CashFlow cashFlowResponse `json:"cashFlow"`
	Warnings []string         `json:"warnings,omitempty"`
}

type worksheetResponse struct {
	Deduction            validation.DeductionResult `json:"deduction"`
	OtherDeductionsLabel string                     `json:"otherDeductionsLabel"`
	Payroll              payrollResponse            `json:"payroll"`
	CashFlow             cashFlowResponse           `json:"cashFlow"`
	Warnings             []string                   `json:"warnings,omitempty"`
	Duration             string                     `json:"duration"`
}

func newWorksheetResponse(ws *worksheet.Worksheet) worksheetResponse {
	return worksheetResponse{
		Deduction:            ws.Deduction,
		OtherDeductionsLabel: output.OtherDeductionsLabel(ws, format.Currency),
		Payroll:              newPayrollResponse(ws.Payroll),
		CashFlow:             newCashFlowResponse(ws.CashFlow, ws.Expenses),
		Warnings:             ws.Warnings,
		Duration:             ws.Duration.String(),
	}
}
