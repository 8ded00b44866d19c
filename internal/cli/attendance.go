package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hrmsconsole/internal/domain/attendance"
)

func newAttendanceCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Mark and review daily attendance",
	}

	sheet := &cobra.Command{
		Use:   "sheet",
		Short: "Show the marking grid for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := rt.dateFlag(cmd)
			if err != nil {
				return err
			}
			s, err := rt.loadAttendance(cmd.Context(), date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Attendance for %s\n\n", s.Date)
			tw := newTable(out, "ID", "EMPLOYEE", "STATUS", "SLOT", "CHECK IN", "CHECK OUT", "DURATION")
			for _, r := range s.Rows() {
				checkIn, checkOut := "N/A", "N/A"
				if r.Entry.Record != nil {
					checkIn = orDash(attendance.ShortTime(r.Entry.Record.CheckInTime))
					checkOut = orDash(attendance.ShortTime(r.Entry.Record.CheckOut()))
				}
				row(tw, r.Employee.ID, r.Employee.Name, r.Entry.Status, orDash(string(r.Entry.TimeSlot)), checkIn, checkOut, r.Duration)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPresent: %d of %d\n", s.PresentCount(), len(s.Employees))
			return nil
		},
	}
	addDateFlag(sheet)

	var form attendance.Form
	mark := &cobra.Command{
		Use:   "mark [employee-id]",
		Short: "Mark an employee present or absent",
		Long: `Mark an employee present or absent on a date.

Present uses the full day preset unless --slot or --check-in/--check-out is given.
Absent deletes any record for that employee and date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			date, err := rt.dateFlag(cmd)
			if err != nil {
				return err
			}
			form.EmployeeID, form.Date = id, date
			m, err := attendance.Compose(form)
			if err != nil {
				return err
			}
			outcome, err := rt.services.Attendance.Save(cmd.Context(), m)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
	addDateFlag(mark)
	mark.Flags().StringVar((*string)(&form.Status), "status", string(attendance.StatusPresent), "present or absent")
	mark.Flags().StringVar((*string)(&form.TimeSlot), "slot", "", "fullDay, morning, afternoon, halfDay or custom")
	mark.Flags().StringVar(&form.CheckIn, "check-in", "", "Custom check-in HH:MM")
	mark.Flags().StringVar(&form.CheckOut, "check-out", "", "Custom check-out HH:MM")

	remove := &cobra.Command{
		Use:     "delete [record-id]",
		Aliases: []string{"rm"},
		Short:   "Delete an attendance record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, fmt.Sprintf("Delete attendance record %d?", id))
			if err != nil || !ok {
				return err
			}
			outcome, err := rt.services.Attendance.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
	addYesFlag(remove)

	var output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the day's sheet to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := rt.dateFlag(cmd)
			if err != nil {
				return err
			}
			s, err := rt.loadAttendance(cmd.Context(), date)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = attendance.ExportFilename(s.Date)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := attendance.WriteXLSX(f, s); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	addDateFlag(export)
	export.Flags().StringVarP(&output, "output", "o", "", "Output file (default attendance-<date>.xlsx)")

	cmd.AddCommand(sheet, mark, remove, export)
	return cmd
}

func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Day as YYYY-MM-DD (default today)")
}

func (rt *runtime) dateFlag(cmd *cobra.Command) (string, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		return rt.today(), nil
	}
	if _, err := time.Parse(attendance.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return date, nil
}

func (rt *runtime) loadAttendance(ctx context.Context, date string) (attendance.Sheet, error) {
	employees, err := rt.services.Employees.List(ctx)
	if err != nil {
		return attendance.Sheet{}, err
	}
	return rt.services.Attendance.Sheet(ctx, date, employees)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
