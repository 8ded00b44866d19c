package payroll

import "hrmsconsole/internal/domain/upsert"

// FindExisting returns the first payroll record of employeeID in fetch order.
func FindExisting(records []Record, employeeID int64) (Record, bool) {
	return upsert.First(records, func(r Record) bool { return r.EmployeeID == employeeID })
}
