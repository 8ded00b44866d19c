package payroll

import (
	"context"
	"fmt"
	"strconv"

	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/upsert"
	"hrmsconsole/internal/platform/keylock"
	"hrmsconsole/internal/platform/validate"
)

const (
	MsgSaved   = "Payroll saved successfully!"
	MsgUpdated = "Payroll updated successfully!"
	MsgDeleted = "Payroll record deleted successfully!"

	msgBasicPay = "Please enter basic pay"
)

type Service struct {
	backend Backend
	locks   *keylock.Locker
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, locks: keylock.New()}
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch payroll: %w", err)
	}
	return records, nil
}

func (s *Service) Sheet(ctx context.Context, employees []employee.Employee) (Sheet, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Sheet{}, err
	}
	return Reduce(Sheet{}, Loaded{Employees: employees, Records: records}), nil
}

// Save upserts the employee's payroll record, matched by employee in a fresh
// listing. The net salary is always recomputed from the draft.
func (s *Service) Save(ctx context.Context, draft Draft) (upsert.Outcome[Record], error) {
	draft = draft.normalized()
	if err := check(draft); err != nil {
		return upsert.Outcome[Record]{}, err
	}

	unlock, err := s.locks.Lock(ctx, "payroll:"+strconv.FormatInt(draft.EmployeeID, 10))
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error saving payroll: %w", err)
	}
	defer unlock()

	records, err := s.backend.List(ctx)
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error saving payroll: %w", err)
	}
	rec := draft.record()
	existing, found := FindExisting(records, draft.EmployeeID)
	if found {
		return s.update(ctx, existing.ID, rec)
	}

	created, err := s.backend.Create(ctx, rec)
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error saving payroll: %w", err)
	}
	return upsert.Outcome[Record]{Action: upsert.ActionCreated, Record: created, Message: MsgSaved}, nil
}

// Edit updates a listed record directly by id.
func (s *Service) Edit(ctx context.Context, id int64, draft Draft) (upsert.Outcome[Record], error) {
	if id <= 0 {
		return upsert.Outcome[Record]{}, ErrInvalidID
	}
	draft = draft.normalized()
	if err := check(draft); err != nil {
		return upsert.Outcome[Record]{}, err
	}
	return s.update(ctx, id, draft.record())
}

// ApplySalary is the "use this salary" shortcut outside a loaded sheet.
func ApplySalary(draft Draft, emp employee.Employee) (Draft, error) {
	if emp.Salary.IsZero() {
		return draft, ErrNoSalary
	}
	draft.EmployeeID = emp.ID
	draft.BasicPay = emp.Salary.Raw()
	return draft, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (upsert.Outcome[Record], error) {
	if id <= 0 {
		return upsert.Outcome[Record]{}, ErrInvalidID
	}
	if err := s.backend.Delete(ctx, id); err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error deleting payroll: %w", err)
	}
	return upsert.Outcome[Record]{Action: upsert.ActionDeleted, Record: Record{ID: id}, Message: MsgDeleted}, nil
}

func (s *Service) update(ctx context.Context, id int64, rec Record) (upsert.Outcome[Record], error) {
	rec.ID = id
	updated, err := s.backend.Update(ctx, id, rec)
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error updating payroll: %w", err)
	}
	if updated.ID == 0 {
		updated = rec
	}
	return upsert.Outcome[Record]{Action: upsert.ActionUpdated, Record: updated, Message: MsgUpdated}, nil
}

func check(draft Draft) error {
	if draft.EmployeeID <= 0 {
		return ErrInvalidEmployee
	}
	return validate.Struct(draft, msgBasicPay)
}
