package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"hrmsconsole/internal/domain/attendance"
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/payroll"
)

type EmployeeLister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

type AttendanceLister interface {
	List(ctx context.Context) ([]attendance.Record, error)
}

type PayrollLister interface {
	List(ctx context.Context) ([]payroll.Record, error)
}

type Service struct {
	employees  EmployeeLister
	attendance AttendanceLister
	payroll    PayrollLister
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(employees EmployeeLister, attendance AttendanceLister, payroll PayrollLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		employees:  employees,
		attendance: attendance,
		payroll:    payroll,
		logger:     logger,
		now:        time.Now,
	}
}

// Load fetches the three collections concurrently. A failed fetch counts as
// an empty collection and is named in Failures; the error return is only
// set when ctx ended before the fetches completed.
func (s *Service) Load(ctx context.Context) (Summary, error) {
	var (
		g         errgroup.Group
		employees []employee.Employee
		records   []attendance.Record
		payrolls  []payroll.Record
		failedEmp bool
		failedAtt bool
		failedPay bool
	)

	g.Go(func() error {
		list, err := s.employees.List(ctx)
		employees, failedEmp = list, s.failed(ctx, SourceEmployees, err)
		return nil
	})
	g.Go(func() error {
		list, err := s.attendance.List(ctx)
		records, failedAtt = list, s.failed(ctx, SourceAttendance, err)
		return nil
	})
	g.Go(func() error {
		list, err := s.payroll.List(ctx)
		payrolls, failedPay = list, s.failed(ctx, SourcePayroll, err)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary := Aggregate(employees, records, payrolls)
	for source, failed := range map[string]bool{
		SourceEmployees:  failedEmp,
		SourceAttendance: failedAtt,
		SourcePayroll:    failedPay,
	} {
		if failed {
			summary.Failures = append(summary.Failures, source)
		}
	}
	sort.Strings(summary.Failures)
	summary.RefreshedAt = s.now().UTC()
	return summary, nil
}

func (s *Service) failed(ctx context.Context, source string, err error) bool {
	if err == nil {
		return false
	}
	if ctx.Err() == nil {
		s.logger.Warn("dashboard source unavailable", "source", source, "err", err)
	}
	return true
}
