package attendance

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

var exportHeaders = []string{"Employee ID", "Employee", "Status", "Time Slot", "Check In", "Check Out", "Duration"}

// WriteXLSX renders one row per employee for the sheet date.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range sheet.Rows() {
		checkIn, checkOut := notApplicable, notApplicable
		if rec := row.Entry.Record; rec != nil {
			checkIn, checkOut = orNA(ShortTime(rec.CheckInTime)), orNA(ShortTime(rec.CheckOut()))
		}
		values := []any{row.Employee.ID, row.Employee.Name, string(row.Entry.Status), slotLabel(row.Entry.TimeSlot), checkIn, checkOut, row.Duration.String()}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportFilename is the download name for a day's sheet.
func ExportFilename(date string) string {
	return "attendance-" + dayOf(date) + ".xlsx"
}

func slotLabel(slot TimeSlot) string {
	if p, ok := PresetFor(slot); ok {
		return p.Label
	}
	return ""
}
