package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var registerColumns = []struct {
	title string
	width float64
	align string
}{
	{"Employee", 60, "L"},
	{"Basic Pay", 30, "R"},
	{"Bonus", 30, "R"},
	{"Deductions", 30, "R"},
	{"Net Salary", 30, "R"},
}

// WritePDF renders the payroll register with one row per record and a total line.
func WritePDF(w io.Writer, sheet Sheet, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payroll Register", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Register")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	for _, col := range registerColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range sheet.Register() {
		values := []string{
			row.EmployeeName,
			row.Record.BasicPay.String(),
			row.Record.Bonus.String(),
			row.Record.Deductions.String(),
			row.Record.NetSalary.String(),
		}
		for i, col := range registerColumns {
			pdf.CellFormat(col.width, 7, values[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	labelWidth := 0.0
	for _, col := range registerColumns[:len(registerColumns)-1] {
		labelWidth += col.width
	}
	pdf.CellFormat(labelWidth, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(registerColumns[len(registerColumns)-1].width, 8, sheet.Total().String(), "1", 0, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render payroll register: %w", err)
	}
	return nil
}
