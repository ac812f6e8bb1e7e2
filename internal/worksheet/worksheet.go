// Package worksheet runs the full recalculation of one payroll worksheet:
// normalize the raw inputs, validate the deduction, calculate payroll,
// reconcile cash flow and collect warnings.
package worksheet

import (
	"fmt"
	"time"

	"github.com/iwvelando/payroll-forecast/internal/config"
	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/iwvelando/payroll-forecast/pkg/payroll"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Worksheet holds every input and result of one recalculation.
type Worksheet struct {
	Inputs      payroll.Inputs
	Deduction   validation.DeductionResult
	Payroll     payroll.Result
	OpeningCash decimal.Decimal
	Expenses    []cashflow.Expense
	CashFlow    cashflow.Result
	Warnings    []string
	Duration    time.Duration
}

// Compute recalculates the worksheet from the raw salary and cash inputs.
// The net salary of the payroll result is handed to the cash-flow
// reconciliation of the same call. An invalid deduction returns an error
// wrapping payroll.ErrInvalidDeduction and no worksheet.
func Compute(logger *zap.Logger, salary config.SalaryConfig, cash config.CashConfig) (*Worksheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	ws := &Worksheet{
		Inputs:      salary.ToInputs(),
		OpeningCash: cash.OpeningCashValue(),
		Expenses:    cash.Expenses,
	}

	ws.Deduction = validation.ValidateDeduction(ws.Inputs.OtherDeductionsMode, ws.Inputs.OtherDeductionsRaw)

	result, err := payroll.NewCalculator(logger).Calculate(ws.Inputs, ws.Deduction)
	if err != nil {
		logger.Warn("payroll calculation rejected",
			zap.String("op", "worksheet.Compute"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to calculate payroll: %w", err)
	}
	ws.Payroll = result

	ws.CashFlow = cashflow.Reconcile(ws.OpeningCash, ws.Payroll.NetSalary, ws.Expenses)

	wv := validation.WorksheetValidator{
		AgreedSalary:     ws.Inputs.AgreedSalary,
		InsuranceSalary:  ws.Inputs.InsuranceSalary,
		OtherAllowances:  ws.Inputs.OtherAllowances,
		OpeningCash:      ws.OpeningCash,
		ActualWorkdays:   ws.Inputs.ActualWorkdays,
		PaidLeaveDays:    ws.Inputs.PaidLeaveDays,
		Dependents:       ws.Inputs.Dependents,
		Expenses:         ws.Expenses,
		RemainingBalance: ws.CashFlow.RemainingBalance,
	}
	ws.Warnings = wv.ValidateAll()

	ws.Duration = time.Since(start)
	logger.Debug("worksheet computed",
		zap.String("op", "worksheet.Compute"),
		zap.String("netSalary", ws.Payroll.NetSalary.String()),
		zap.String("remainingBalance", ws.CashFlow.RemainingBalance.String()),
		zap.Int("warnings", len(ws.Warnings)),
		zap.Duration("duration", ws.Duration),
	)

	return ws, nil
}

// PercentDeduction reports whether the other deductions were entered as a
// percentage, and the percentage itself.
func (ws *Worksheet) PercentDeduction() (decimal.Decimal, bool) {
	if ws.Deduction.Mode != validation.DeductionPercent {
		return decimal.Zero, false
	}
	return ws.Deduction.Value, true
}
