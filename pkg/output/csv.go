package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/format"
)

// CsvFormat writes the selected sheets as CSV. Each sheet starts with a
// one-field title record and sheets are separated by an empty line.
func CsvFormat(w io.Writer, ws *worksheet.Worksheet, sheetNames []string) error {
	sheets, err := BuildSheets(ws, sheetNames, format.Currency)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	for i, sheet := range sheets {
		if i > 0 {
			if err := writer.Write(nil); err != nil {
				return fmt.Errorf("failed to write sheet separator: %w", err)
			}
		}
		if err := writer.Write([]string{sheet.Title}); err != nil {
			return fmt.Errorf("failed to write %s title: %w", sheet.Name, err)
		}
		for _, row := range sheet.Rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write %s row: %w", sheet.Name, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
