package payroll

import "hrmsconsole/internal/platform/validate"

var (
	ErrInvalidID       = validate.Fail("payroll id must be a positive integer", "id", "must be greater than 0")
	ErrInvalidEmployee = validate.Fail("Please select an employee", "employeeId", "must be greater than 0")
	ErrNoSalary        = validate.Fail("Employee has no salary on file", "salary", "is required")
)
