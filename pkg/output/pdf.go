package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfLineHeight = 7.0
	pdfPageWidth  = 180.0
)

// WritePayslipPDF renders the selected sheets as an A4 payslip. Core PDF
// fonts cannot show the currency sign, so amounts carry the currency code.
func WritePayslipPDF(w io.Writer, ws *worksheet.Worksheet, sheetNames []string) error {
	sheets, err := BuildSheets(ws, sheetNames, format.CurrencyCode)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Payslip", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	for _, sheet := range sheets {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 9, tr(sheet.Title))
		pdf.Ln(10)

		header := true
		for _, row := range sheet.Rows {
			if row == nil {
				pdf.Ln(pdfLineHeight / 2)
				header = true
				continue
			}
			style := ""
			if header {
				style = "B"
				header = false
			}
			pdf.SetFont("Helvetica", style, 11)
			widths := pdfColumnWidths(len(row))
			for i, cell := range row {
				align := "L"
				if i == len(row)-1 && len(row) > 1 {
					align = "R"
				}
				pdf.CellFormat(widths[i], pdfLineHeight, tr(cell), "B", 0, align, false, 0, "")
			}
			pdf.Ln(pdfLineHeight)
		}
		pdf.Ln(pdfLineHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return nil
}

func pdfColumnWidths(columns int) []float64 {
	switch columns {
	case 1:
		return []float64{pdfPageWidth}
	case 2:
		return []float64{110, pdfPageWidth - 110}
	default:
		first := 15.0
		last := 60.0
		widths := []float64{first}
		middle := (pdfPageWidth - first - last) / float64(columns-2)
		for i := 1; i < columns-1; i++ {
			widths = append(widths, middle)
		}
		return append(widths, last)
	}
}
