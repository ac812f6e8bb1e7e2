package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table
// of every sheet.
func PrettyFormat(w io.Writer, ws *worksheet.Worksheet) error {
	sheets, err := BuildSheets(ws, []string{constants.SheetSalary, constants.SheetExpenses}, format.Currency)
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- %s ---\n", sheet.Title); err != nil {
			return err
		}
		for _, section := range splitSections(sheet.Rows) {
			widths := columnWidths(section)
			for _, row := range section {
				if _, err := fmt.Fprintln(w, alignRow(row, widths)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// splitSections splits rows at nil separators, keeping each separator as the
// first row of the following section.
func splitSections(rows [][]string) [][][]string {
	var sections [][][]string
	start := 0
	for i, row := range rows {
		if row == nil && i > start {
			sections = append(sections, rows[start:i])
			start = i
		}
	}
	return append(sections, rows[start:])
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// alignRow pads every cell but the last to its column width.
func alignRow(row []string, widths []int) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		if i == len(row)-1 {
			cells[i] = cell
			continue
		}
		cells[i] = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
	}
	return strings.TrimRight(strings.Join(cells, " | "), " ")
}
