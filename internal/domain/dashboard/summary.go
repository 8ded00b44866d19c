package dashboard

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"hrmsconsole/internal/domain/attendance"
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/payroll"
	"hrmsconsole/internal/platform/money"
)

const (
	SourceEmployees  = "employees"
	SourceAttendance = "attendance"
	SourcePayroll    = "payroll"
)

type Summary struct {
	EmployeeCount   int          `json:"employeeCount"`
	AttendanceCount int          `json:"attendanceCount"`
	PayrollCount    int          `json:"payrollCount"`
	TotalNetSalary  money.Amount `json:"totalNetSalary"`
	Failures        []string     `json:"failures,omitempty"`
	RefreshedAt     time.Time    `json:"refreshedAt,omitempty"`
}

// Aggregate counts each collection and sums the payroll net salaries.
func Aggregate(employees []employee.Employee, records []attendance.Record, payrolls []payroll.Record) Summary {
	total := money.Zero
	for _, p := range payrolls {
		total = total.Add(p.NetSalary)
	}
	return Summary{
		EmployeeCount:   len(employees),
		AttendanceCount: len(records),
		PayrollCount:    len(payrolls),
		TotalNetSalary:  total.Round(),
	}
}

// Degraded reports whether any source failed during the refresh.
func (s Summary) Degraded() bool {
	return len(s.Failures) > 0
}

var thousand = decimal.NewFromInt(1000)

// ShortTotal renders the total in thousands with one decimal, e.g. "$5.2K".
func (s Summary) ShortTotal() string {
	return "$" + s.TotalNetSalary.Decimal().Div(thousand).StringFixed(1) + "K"
}

// FullTotal renders the total with cents, e.g. "$5150.00".
func (s Summary) FullTotal() string {
	return "$" + s.TotalNetSalary.String()
}

// Card is one dashboard tile.
type Card struct {
	Title     string `json:"title"`
	Value     string `json:"value"`
	FullValue string `json:"fullValue,omitempty"`
}

func (s Summary) Cards() []Card {
	return []Card{
		{Title: "Total Employees", Value: strconv.Itoa(s.EmployeeCount)},
		{Title: "Attendance Records", Value: strconv.Itoa(s.AttendanceCount)},
		{Title: "Payroll Records", Value: strconv.Itoa(s.PayrollCount)},
		{Title: "Total Salary", Value: s.ShortTotal(), FullValue: s.FullTotal()},
	}
}
