// Package validation provides input validation for the payroll worksheet:
// the other-deductions field, report selection and soft worksheet warnings.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/payroll-forecast/pkg/constants"
)

// ErrNoSheetSelected is returned when an export selects no report at all.
var ErrNoSheetSelected = errors.New("select at least one report to export")

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatPDF:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatPDF, format)
}

// ValidateSheets checks a report selection. An empty selection is an error;
// unknown sheet names are reported by name.
func ValidateSheets(sheets []string) error {
	if len(sheets) == 0 {
		return ErrNoSheetSelected
	}
	var unknown []string
	for _, sheet := range sheets {
		if sheet != constants.SheetSalary && sheet != constants.SheetExpenses {
			unknown = append(unknown, sheet)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown report sheet(s) %s, expected %s or %s",
			strings.Join(unknown, ", "), constants.SheetSalary, constants.SheetExpenses)
	}
	return nil
}
