package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hrmsconsole/internal/domain/payroll"
	"hrmsconsole/internal/domain/upsert"
)

const registerFilename = "payroll-register.pdf"

func newPayrollCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Manage payroll records",
	}

	sheet := &cobra.Command{
		Use:   "sheet",
		Short: "Show the payroll entry grid and the saved register",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.loadPayroll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tw := newTable(out, "ID", "EMPLOYEE", "BASIC PAY", "BONUS", "DEDUCTIONS", "NET")
			for _, r := range s.Rows() {
				row(tw, r.Employee.ID, r.Employee.Name, orDash(r.Entry.BasicPay), r.Entry.Bonus, r.Entry.Deductions, r.Net)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nPayroll Records")
			register := s.Register()
			if len(register) == 0 {
				fmt.Fprintln(out, "No payroll records found.")
				return nil
			}
			tw = newTable(out, "RECORD", "EMPLOYEE", "BASIC PAY", "BONUS", "DEDUCTIONS", "NET SALARY")
			for _, r := range register {
				row(tw, r.Record.ID, r.EmployeeName, r.Record.BasicPay, r.Record.Bonus, r.Record.Deductions, r.Record.NetSalary)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %s\n", s.Total())
			return nil
		},
	}

	var useSalary bool
	save := &cobra.Command{
		Use:   "save [employee-id]",
		Short: "Save an employee's payroll, updating the existing record if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := rt.loadPayroll(ctx)
			if err != nil {
				return err
			}
			draft := s.Draft(id)
			if useSalary {
				emp, err := rt.services.Employees.Get(ctx, id)
				if err != nil {
					return err
				}
				if draft, err = payroll.ApplySalary(draft, emp); err != nil {
					return err
				}
			}
			outcome, err := rt.services.Payroll.Save(ctx, draftInput(cmd, draft))
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			fmt.Fprintf(cmd.OutOrStdout(), "Net salary: %s\n", outcome.Record.NetSalary)
			return nil
		},
	}
	addDraftFlags(save)
	save.Flags().BoolVar(&useSalary, "use-salary", false, "Fill basic pay from the employee's salary")

	edit := &cobra.Command{
		Use:   "edit [record-id]",
		Short: "Edit a saved payroll record; omitted amounts keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			records, err := rt.services.Payroll.List(ctx)
			if err != nil {
				return err
			}
			rec, ok := upsert.First(records, func(r payroll.Record) bool { return r.ID == id })
			if !ok {
				return fmt.Errorf("payroll record %d not found", id)
			}
			outcome, err := rt.services.Payroll.Edit(ctx, id, draftInput(cmd, payroll.DraftFrom(rec)))
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			fmt.Fprintf(cmd.OutOrStdout(), "Net salary: %s\n", outcome.Record.NetSalary)
			return nil
		},
	}
	addDraftFlags(edit)

	remove := &cobra.Command{
		Use:     "delete [record-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a payroll record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, fmt.Sprintf("Delete payroll record %d?", id))
			if err != nil || !ok {
				return err
			}
			outcome, err := rt.services.Payroll.Delete(cmd.Context(), id)
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
		Short: "Write the payroll register to a PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.loadPayroll(cmd.Context())
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = registerFilename
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := payroll.WritePDF(f, s, rt.now()); err != nil {
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
	export.Flags().StringVarP(&output, "output", "o", "", "Output file (default "+registerFilename+")")

	preview := &cobra.Command{
		Use:   "preview",
		Short: "Compute a net salary without saving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := draftInput(cmd, payroll.Draft{})
			fmt.Fprintln(cmd.OutOrStdout(), payroll.ComputeNetSalary(draft.BasicPay, draft.Bonus, draft.Deductions))
			return nil
		},
	}
	addDraftFlags(preview)

	cmd.AddCommand(sheet, save, edit, remove, export, preview)
	return cmd
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().String("basic-pay", "", "Basic pay")
	cmd.Flags().String("bonus", "", "Bonus")
	cmd.Flags().String("deductions", "", "Deductions")
}

// draftInput overlays the amounts the operator set on base.
func draftInput(cmd *cobra.Command, base payroll.Draft) payroll.Draft {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	set("basic-pay", &base.BasicPay)
	set("bonus", &base.Bonus)
	set("deductions", &base.Deductions)
	return base
}

func (rt *runtime) loadPayroll(ctx context.Context) (payroll.Sheet, error) {
	employees, err := rt.services.Employees.List(ctx)
	if err != nil {
		return payroll.Sheet{}, err
	}
	return rt.services.Payroll.Sheet(ctx, employees)
}
