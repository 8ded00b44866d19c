package employee

import (
	"context"
	"strings"

	"hrmsconsole/internal/platform/money"
)

type Employee struct {
	ID          int64        `json:"id,omitempty"`
	Name        string       `json:"name"`
	Designation string       `json:"designation"`
	Department  string       `json:"department"`
	Salary      money.Amount `json:"salary"`
}

// Input is the employee form as typed by the operator.
type Input struct {
	Name        string `json:"name" validate:"required"`
	Designation string `json:"designation" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Salary      string `json:"salary" validate:"required"`
}

func (in Input) normalized() Input {
	return Input{
		Name:        strings.TrimSpace(in.Name),
		Designation: strings.TrimSpace(in.Designation),
		Department:  strings.TrimSpace(in.Department),
		Salary:      strings.TrimSpace(in.Salary),
	}
}

func (in Input) employee() Employee {
	return Employee{
		Name:        in.Name,
		Designation: in.Designation,
		Department:  in.Department,
		Salary:      money.Parse(in.Salary),
	}
}

// InputFrom seeds an edit form from a stored employee.
func InputFrom(emp Employee) Input {
	return Input{
		Name:        emp.Name,
		Designation: emp.Designation,
		Department:  emp.Department,
		Salary:      emp.Salary.Raw(),
	}
}

// Backend is the employees collection of the REST API.
type Backend interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, id int64, emp Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
}
