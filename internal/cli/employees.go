package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hrmsconsole/internal/domain/employee"
)

func newEmployeesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "Manage employees",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			employees, err := rt.services.Employees.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(employees) == 0 {
				fmt.Fprintln(out, "No employees found.")
				return nil
			}
			tw := newTable(out, "ID", "NAME", "DESIGNATION", "DEPARTMENT", "SALARY")
			for _, emp := range employees {
				row(tw, emp.ID, emp.Name, emp.Designation, emp.Department, emp.Salary)
			}
			return tw.Flush()
		},
	}

	get := &cobra.Command{
		Use:   "get [employee-id]",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			emp, err := rt.services.Employees.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "FIELD", "VALUE")
			row(tw, "ID", emp.ID)
			row(tw, "Name", emp.Name)
			row(tw, "Designation", emp.Designation)
			row(tw, "Department", emp.Department)
			row(tw, "Salary", emp.Salary)
			return tw.Flush()
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := rt.services.Employees.Create(cmd.Context(), employeeInput(cmd, employee.Input{}))
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\n", outcome.Record.ID)
			return nil
		},
	}
	addEmployeeFlags(create)

	update := &cobra.Command{
		Use:   "update [employee-id]",
		Short: "Edit an employee; omitted fields keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := rt.services.Employees.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			outcome, err := rt.services.Employees.Update(cmd.Context(), id, employeeInput(cmd, employee.InputFrom(current)))
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
	addEmployeeFlags(update)

	remove := &cobra.Command{
		Use:     "delete [employee-id]",
		Aliases: []string{"rm"},
		Short:   "Delete an employee",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, fmt.Sprintf("Delete employee %d?", id))
			if err != nil || !ok {
				return err
			}
			outcome, err := rt.services.Employees.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
	addYesFlag(remove)

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}

func addEmployeeFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("designation", "", "Job title")
	cmd.Flags().String("department", "", "Department")
	cmd.Flags().String("salary", "", "Salary")
}

// employeeInput overlays the flags the operator set on base.
func employeeInput(cmd *cobra.Command, base employee.Input) employee.Input {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	set("name", &base.Name)
	set("designation", &base.Designation)
	set("department", &base.Department)
	set("salary", &base.Salary)
	return base
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}
