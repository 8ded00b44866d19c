package payroll

import (
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/platform/money"
)

type Field string

const (
	FieldBasicPay   Field = "basicPay"
	FieldBonus      Field = "bonus"
	FieldDeductions Field = "deductions"
)

// Entry is the payroll form for one employee. Record is the listed payroll
// row this form would update, when there is one.
type Entry struct {
	EmployeeID int64   `json:"employeeId"`
	BasicPay   string  `json:"basicPay"`
	Bonus      string  `json:"bonus"`
	Deductions string  `json:"deductions"`
	Record     *Record `json:"record,omitempty"`
}

// Net is the live preview of the entry's net salary.
func (e Entry) Net() money.Amount {
	return ComputeNetSalary(e.BasicPay, e.Bonus, e.Deductions)
}

type Sheet struct {
	Employees []employee.Employee
	Records   []Record
	Entries   map[int64]Entry
}

type Action interface {
	apply(Sheet) Sheet
}

func Reduce(s Sheet, action Action) Sheet {
	if action == nil {
		return s
	}
	return action.apply(s)
}

type Loaded struct {
	Employees []employee.Employee
	Records   []Record
}

func (a Loaded) apply(Sheet) Sheet {
	entries := make(map[int64]Entry, len(a.Employees))
	for _, emp := range a.Employees {
		entry := Entry{EmployeeID: emp.ID, Bonus: "0", Deductions: "0"}
		rec, found := FindExisting(a.Records, emp.ID)
		switch {
		case found && !rec.BasicPay.IsZero():
			entry.BasicPay = rec.BasicPay.Raw()
		case !emp.Salary.IsZero():
			entry.BasicPay = emp.Salary.Raw()
		}
		if found {
			rec := rec
			entry.Record = &rec
			if !rec.Bonus.IsZero() {
				entry.Bonus = rec.Bonus.Raw()
			}
			if !rec.Deductions.IsZero() {
				entry.Deductions = rec.Deductions.Raw()
			}
		}
		entries[emp.ID] = entry
	}
	return Sheet{
		Employees: append([]employee.Employee(nil), a.Employees...),
		Records:   append([]Record(nil), a.Records...),
		Entries:   entries,
	}
}

type FieldChanged struct {
	EmployeeID int64
	Field      Field
	Value      string
}

func (a FieldChanged) apply(s Sheet) Sheet {
	entry := s.Entry(a.EmployeeID)
	switch a.Field {
	case FieldBasicPay:
		entry.BasicPay = a.Value
	case FieldBonus:
		entry.Bonus = a.Value
	case FieldDeductions:
		entry.Deductions = a.Value
	default:
		return s
	}
	return s.withEntry(entry)
}

// SalaryApplied copies the employee's salary into basic pay. A zero or
// unknown salary leaves the entry as is.
type SalaryApplied struct {
	EmployeeID int64
}

func (a SalaryApplied) apply(s Sheet) Sheet {
	emp, ok := employee.Lookup(s.Employees, a.EmployeeID)
	if !ok || emp.Salary.IsZero() {
		return s
	}
	entry := s.Entry(a.EmployeeID)
	entry.BasicPay = emp.Salary.Raw()
	return s.withEntry(entry)
}

func (s Sheet) Entry(employeeID int64) Entry {
	if entry, ok := s.Entries[employeeID]; ok {
		return entry
	}
	return Entry{EmployeeID: employeeID, Bonus: "0", Deductions: "0"}
}

func (s Sheet) withEntry(entry Entry) Sheet {
	entries := make(map[int64]Entry, len(s.Entries)+1)
	for id, e := range s.Entries {
		entries[id] = e
	}
	entries[entry.EmployeeID] = entry
	s.Entries = entries
	return s
}

func (s Sheet) Draft(employeeID int64) Draft {
	entry := s.Entry(employeeID)
	return Draft{
		EmployeeID: employeeID,
		BasicPay:   entry.BasicPay,
		Bonus:      entry.Bonus,
		Deductions: entry.Deductions,
	}
}

type Row struct {
	Employee employee.Employee `json:"employee"`
	Entry    Entry             `json:"entry"`
	Net      money.Amount      `json:"net"`
}

func (s Sheet) Rows() []Row {
	rows := make([]Row, 0, len(s.Employees))
	for _, emp := range s.Employees {
		entry := s.Entry(emp.ID)
		rows = append(rows, Row{Employee: emp, Entry: entry, Net: entry.Net()})
	}
	return rows
}

// RegisterRow is one listed payroll record with its employee's name.
type RegisterRow struct {
	Record       Record `json:"record"`
	EmployeeName string `json:"employeeName"`
}

func (s Sheet) Register() []RegisterRow {
	rows := make([]RegisterRow, 0, len(s.Records))
	for _, rec := range s.Records {
		rows = append(rows, RegisterRow{Record: rec, EmployeeName: employee.NameOf(s.Employees, rec.EmployeeID)})
	}
	return rows
}

// Total sums the listed net salaries.
func (s Sheet) Total() money.Amount {
	total := money.Zero
	for _, rec := range s.Records {
		total = total.Add(rec.NetSalary)
	}
	return total.Round()
}
