// Package output renders a computed worksheet as console text, CSV sheets or
// a PDF payslip.
package output

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/shopspring/decimal"
)

// Sheet is a titled table. A nil row separates sections.
type Sheet struct {
	Name  string
	Title string
	Rows  [][]string
}

// Money formats an amount for a particular output medium.
type Money func(decimal.Decimal) string

// SelectSheets validates the requested sheet names and returns them in
// report order without duplicates.
func SelectSheets(requested []string) ([]string, error) {
	if err := validation.ValidateSheets(requested); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(requested))
	for _, name := range requested {
		wanted[name] = true
	}

	var sheets []string
	for _, name := range []string{constants.SheetSalary, constants.SheetExpenses} {
		if wanted[name] {
			sheets = append(sheets, name)
		}
	}
	return sheets, nil
}

// BuildSheets builds the selected sheets in report order.
func BuildSheets(ws *worksheet.Worksheet, requested []string, money Money) ([]Sheet, error) {
	names, err := SelectSheets(requested)
	if err != nil {
		return nil, err
	}

	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		switch name {
		case constants.SheetSalary:
			sheets = append(sheets, SalarySheet(ws, money))
		case constants.SheetExpenses:
			sheets = append(sheets, ExpenseSheet(ws, money))
		}
	}
	return sheets, nil
}

// SalarySheet lists the salary inputs followed by the payroll results.
func SalarySheet(ws *worksheet.Worksheet, money Money) Sheet {
	in := ws.Inputs
	r := ws.Payroll

	rows := [][]string{
		{"Field", "Value"},
		{"Agreed salary (gross)", money(in.AgreedSalary)},
		{"Insurance salary", money(in.InsuranceSalary)},
		{"Actual workdays", in.ActualWorkdays.String()},
		{"Paid leave days", in.PaidLeaveDays.String()},
		{"Dependents", strconv.Itoa(in.Dependents)},
		{"Other allowances", money(in.OtherAllowances)},
		{"Other deductions", OtherDeductionsLabel(ws, money)},
		nil,
		{"Result", "Amount"},
		{"Workday salary", money(r.WorkdaySalary)},
		{"Paid leave salary", money(r.PaidLeaveSalary)},
		{"Allowances", money(r.OtherAllowances)},
		{"Total income (gross)", money(r.TotalIncome)},
		{"Social insurance (8%)", money(r.SocialInsurance)},
		{"Health insurance (1.5%)", money(r.HealthInsurance)},
		{"Unemployment insurance (1%)", money(r.UnemploymentInsurance)},
		{"Other deductions", money(r.OtherDeductions)},
		{"Total deductions", money(r.TotalDeductions)},
		{"Taxable income", money(r.TaxableIncome)},
		{"Personal income tax", money(r.PersonalIncomeTax)},
		{"Net salary", money(r.NetSalary)},
	}

	return Sheet{Name: constants.SheetSalary, Title: "Salary", Rows: rows}
}

// OtherDeductionsLabel shows a percentage deduction together with the amount
// it resolved to, and an amount deduction as the amount alone.
func OtherDeductionsLabel(ws *worksheet.Worksheet, money Money) string {
	if pct, ok := ws.PercentDeduction(); ok {
		return fmt.Sprintf("%s%% (%s)", pct.String(), money(ws.Payroll.OtherDeductions))
	}
	return money(ws.Payroll.OtherDeductions)
}

// ExpenseSheet lists the numbered expenses followed by the cash summary.
// Amounts are shown as entered.
func ExpenseSheet(ws *worksheet.Worksheet, money Money) Sheet {
	rows := [][]string{{"#", "Description", "Amount"}}
	for i, expense := range ws.Expenses {
		rows = append(rows, []string{strconv.Itoa(cashflow.Number(i)), expense.Description, expense.Amount})
	}

	rows = append(rows,
		nil,
		[]string{"Total funds", money(ws.CashFlow.TotalFunds)},
		[]string{"Total expenses", money(ws.CashFlow.TotalExpenses)},
		[]string{"Remaining balance", money(ws.CashFlow.RemainingBalance)},
	)

	return Sheet{Name: constants.SheetExpenses, Title: "Expenses", Rows: rows}
}
