package payroll

import (
	"context"
	"strings"

	"hrmsconsole/internal/platform/money"
)

type Record struct {
	ID         int64        `json:"id,omitempty"`
	EmployeeID int64        `json:"employeeId"`
	BasicPay   money.Amount `json:"basicPay"`
	Bonus      money.Amount `json:"bonus"`
	Deductions money.Amount `json:"deductions"`
	NetSalary  money.Amount `json:"netSalary"`
}

// Draft is the save intent for one employee's payroll. Amounts stay as typed
// until the record is built.
type Draft struct {
	EmployeeID int64  `json:"employeeId" validate:"gt=0"`
	BasicPay   string `json:"basicPay" validate:"required"`
	Bonus      string `json:"bonus"`
	Deductions string `json:"deductions"`
}

func (d Draft) normalized() Draft {
	d.BasicPay = strings.TrimSpace(d.BasicPay)
	d.Bonus = strings.TrimSpace(d.Bonus)
	d.Deductions = strings.TrimSpace(d.Deductions)
	return d
}

func (d Draft) Net() money.Amount {
	return ComputeNetSalary(d.BasicPay, d.Bonus, d.Deductions)
}

func (d Draft) record() Record {
	basic, bonus, deductions := money.Parse(d.BasicPay), money.Parse(d.Bonus), money.Parse(d.Deductions)
	return Record{
		EmployeeID: d.EmployeeID,
		BasicPay:   basic,
		Bonus:      bonus,
		Deductions: deductions,
		NetSalary:  NetSalary(basic, bonus, deductions),
	}
}

// DraftFrom seeds the edit dialog from a listed record.
func DraftFrom(rec Record) Draft {
	return Draft{
		EmployeeID: rec.EmployeeID,
		BasicPay:   rec.BasicPay.Raw(),
		Bonus:      rec.Bonus.Raw(),
		Deductions: rec.Deductions.Raw(),
	}
}

// Backend is the payroll collection of the REST API.
type Backend interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id int64, rec Record) (Record, error)
	Delete(ctx context.Context, id int64) error
}
