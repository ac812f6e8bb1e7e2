// Package cashflow reconciles a net salary and opening cash against a list of
// planned expenses.
package cashflow

import (
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/shopspring/decimal"
)

// Expense is one planned expense row. Amount is kept as entered; it is read
// with format.ParseGrouped when the list is summed.
type Expense struct {
	Description string `json:"description" yaml:"description" validate:"max=200"`
	Amount      string `json:"amount" yaml:"amount" validate:"max=32"`
}

// Value returns the parsed amount, zero when unreadable.
func (e Expense) Value() decimal.Decimal {
	return format.ParseGrouped(e.Amount)
}

// Number returns the display label of the row at index i (1-based).
func Number(i int) int {
	return i + 1
}

// Result holds the reconciled funds for one period.
type Result struct {
	TotalFunds       decimal.Decimal `json:"totalFunds"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// TotalExpenses sums every expense amount. Unreadable amounts count as 0 and
// never fail the sum.
func TotalExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Value())
	}
	return total
}

// Reconcile combines the opening cash and the latest net salary into total
// funds and subtracts the planned expenses. The net salary must be the one
// from the most recent payroll calculation; it is recomputed in full on
// every call.
func Reconcile(openingCash, netSalary decimal.Decimal, expenses []Expense) Result {
	totalFunds := openingCash.Add(netSalary)
	totalExpenses := TotalExpenses(expenses)
	return Result{
		TotalFunds:       totalFunds,
		TotalExpenses:    totalExpenses,
		RemainingBalance: totalFunds.Sub(totalExpenses),
	}
}
