package console

import (
	"log/slog"

	"hrmsconsole/internal/domain/attendance"
	"hrmsconsole/internal/domain/dashboard"
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/payroll"
	"hrmsconsole/internal/platform/apiclient"
	"hrmsconsole/internal/platform/config"
	"hrmsconsole/internal/platform/metrics"
)

const (
	EmployeesPath  = "/employees"
	AttendancePath = "/attendance"
	PayrollPath    = "/payroll"
)

// Services is every domain service bound to one REST backend.
type Services struct {
	Client     *apiclient.Client
	Employees  *employee.Service
	Attendance *attendance.Service
	Payroll    *payroll.Service
	Dashboard  *dashboard.Service
}

func NewServices(cfg config.Config, logger *slog.Logger, collector *metrics.Collector) *Services {
	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout,
		apiclient.WithLogger(logger),
		apiclient.WithMetrics(collector),
	)
	return FromClient(client, logger)
}

func FromClient(client *apiclient.Client, logger *slog.Logger) *Services {
	employees := apiclient.NewResource[employee.Employee](client, EmployeesPath)
	records := apiclient.NewResource[attendance.Record](client, AttendancePath)
	payslips := apiclient.NewResource[payroll.Record](client, PayrollPath)
	return &Services{
		Client:     client,
		Employees:  employee.NewService(employees),
		Attendance: attendance.NewService(records),
		Payroll:    payroll.NewService(payslips),
		Dashboard:  dashboard.NewService(employees, records, payslips, logger),
	}
}
