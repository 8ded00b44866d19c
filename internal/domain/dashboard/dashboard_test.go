package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hrmsconsole/internal/domain/attendance"
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/payroll"
	"hrmsconsole/internal/platform/jobs"
	"hrmsconsole/internal/platform/money"
)

type fakeList[T any] struct {
	items []T
	err   error
	wait  chan struct{}
}

func (f *fakeList[T]) List(ctx context.Context) ([]T, error) {
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.items, f.err
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAggregateOrderInvariant(t *testing.T) {
	pay := []payroll.Record{
		{NetSalary: money.Parse("5150")},
		{NetSalary: money.Parse("abc")},
		{NetSalary: money.Parse("1000.50")},
	}
	reversed := []payroll.Record{pay[2], pay[1], pay[0]}

	a := Aggregate(make([]employee.Employee, 2), make([]attendance.Record, 3), pay)
	b := Aggregate(make([]employee.Employee, 2), make([]attendance.Record, 3), reversed)
	if !a.TotalNetSalary.Equal(b.TotalNetSalary) || a.TotalNetSalary.String() != "6150.50" {
		t.Fatalf("unexpected totals %s, %s", a.TotalNetSalary, b.TotalNetSalary)
	}
	if a.EmployeeCount != 2 || a.AttendanceCount != 3 || a.PayrollCount != 3 {
		t.Fatalf("unexpected counts %+v", a)
	}
	if a.ShortTotal() != "$6.2K" || a.FullTotal() != "$6150.50" {
		t.Fatalf("unexpected display %s %s", a.ShortTotal(), a.FullTotal())
	}
	if cards := a.Cards(); len(cards) != 4 || cards[3].FullValue != "$6150.50" {
		t.Fatalf("unexpected cards %+v", cards)
	}
}

func TestLoadDegradesFailedSource(t *testing.T) {
	svc := NewService(
		&fakeList[employee.Employee]{items: make([]employee.Employee, 4)},
		&fakeList[attendance.Record]{err: errors.New("Network Error")},
		&fakeList[payroll.Record]{items: []payroll.Record{{NetSalary: money.FromInt(100)}}},
		quiet(),
	)
	summary, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.EmployeeCount != 4 || summary.AttendanceCount != 0 || summary.PayrollCount != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !summary.Degraded() || len(summary.Failures) != 1 || summary.Failures[0] != SourceAttendance {
		t.Fatalf("expected attendance failure, got %+v", summary.Failures)
	}
	if summary.RefreshedAt.IsZero() {
		t.Fatal("expected refresh time")
	}
}

func TestCancelledRefreshKeepsPrevious(t *testing.T) {
	emp := &fakeList[employee.Employee]{items: make([]employee.Employee, 1)}
	svc := NewService(emp, &fakeList[attendance.Record]{}, &fakeList[payroll.Record]{}, quiet())
	r := NewRefresher(svc)

	if _, ok := r.Latest(); ok {
		t.Fatal("expected no summary before first refresh")
	}
	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	emp.items = make([]employee.Employee, 7)
	emp.wait = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Refresh(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	latest, ok := r.Latest()
	if !ok || latest.EmployeeCount != 1 {
		t.Fatalf("expected previous summary kept, got %+v", latest)
	}
}

func TestStartRefreshesOnQueue(t *testing.T) {
	svc := NewService(
		&fakeList[employee.Employee]{items: make([]employee.Employee, 3)},
		&fakeList[attendance.Record]{},
		&fakeList[payroll.Record]{},
		quiet(),
	)
	r := NewRefresher(svc)
	queue := jobs.New(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	r.Start(ctx, queue, time.Hour)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if latest, ok := r.Latest(); ok {
			if latest.EmployeeCount != 3 {
				t.Fatalf("unexpected summary %+v", latest)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected initial refresh to land")
}
