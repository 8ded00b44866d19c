package employee

import (
	"context"
	"fmt"

	"hrmsconsole/internal/domain/upsert"
	"hrmsconsole/internal/platform/validate"
)

const (
	MsgCreated = "Employee added successfully!"
	MsgUpdated = "Employee updated successfully!"
	MsgDeleted = "Employee deleted successfully!"

	msgFillAll = "Please fill all fields"
)

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	employees, err := s.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch employees: %w", err)
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, ErrInvalidID
	}
	emp, err := s.backend.Get(ctx, id)
	if err != nil {
		return Employee{}, fmt.Errorf("Failed to fetch employee: %w", err)
	}
	return emp, nil
}

func (s *Service) Create(ctx context.Context, in Input) (upsert.Outcome[Employee], error) {
	in = in.normalized()
	if err := validate.Struct(in, msgFillAll); err != nil {
		return upsert.Outcome[Employee]{}, err
	}
	created, err := s.backend.Create(ctx, in.employee())
	if err != nil {
		return upsert.Outcome[Employee]{}, fmt.Errorf("Error adding employee: %w", err)
	}
	return upsert.Outcome[Employee]{Action: upsert.ActionCreated, Record: created, Message: MsgCreated}, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (upsert.Outcome[Employee], error) {
	if id <= 0 {
		return upsert.Outcome[Employee]{}, ErrInvalidID
	}
	in = in.normalized()
	if err := validate.Struct(in, msgFillAll); err != nil {
		return upsert.Outcome[Employee]{}, err
	}
	emp := in.employee()
	emp.ID = id
	updated, err := s.backend.Update(ctx, id, emp)
	if err != nil {
		return upsert.Outcome[Employee]{}, fmt.Errorf("Error updating employee: %w", err)
	}
	if updated.ID == 0 {
		updated = emp
	}
	return upsert.Outcome[Employee]{Action: upsert.ActionUpdated, Record: updated, Message: MsgUpdated}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (upsert.Outcome[Employee], error) {
	if id <= 0 {
		return upsert.Outcome[Employee]{}, ErrInvalidID
	}
	if err := s.backend.Delete(ctx, id); err != nil {
		return upsert.Outcome[Employee]{}, fmt.Errorf("Error deleting employee: %w", err)
	}
	return upsert.Outcome[Employee]{Action: upsert.ActionDeleted, Record: Employee{ID: id}, Message: MsgDeleted}, nil
}
