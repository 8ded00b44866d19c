package attendance

import (
	"context"
	"strings"
)

const DateLayout = "2006-01-02"

type Record struct {
	ID           int64   `json:"id,omitempty"`
	EmployeeID   int64   `json:"employeeId"`
	Date         string  `json:"date"`
	CheckInTime  string  `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
}

func (r Record) CheckOut() string {
	if r.CheckOutTime == nil {
		return ""
	}
	return *r.CheckOutTime
}

// Day returns the YYYY-MM-DD part of the record date.
func (r Record) Day() string {
	return dayOf(r.Date)
}

func (r Record) Duration() Duration {
	return ComputeDuration(r.CheckInTime, r.CheckOut())
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Mark is the save intent for one employee on one date.
type Mark struct {
	EmployeeID int64  `json:"employeeId" validate:"gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     Status `json:"status" validate:"oneof=present absent"`
	CheckIn    string `json:"checkInTime"`
	CheckOut   string `json:"checkOutTime"`
}

func (m Mark) record() Record {
	rec := Record{
		EmployeeID:  m.EmployeeID,
		Date:        m.Date,
		CheckInTime: strings.TrimSpace(m.CheckIn),
	}
	if out := strings.TrimSpace(m.CheckOut); out != "" {
		rec.CheckOutTime = &out
	}
	return rec
}

// Backend is the attendance collection of the REST API.
type Backend interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id int64, rec Record) (Record, error)
	Delete(ctx context.Context, id int64) error
}

func dayOf(date string) string {
	date = strings.TrimSpace(date)
	if len(date) > len(DateLayout) {
		return date[:len(DateLayout)]
	}
	return date
}
