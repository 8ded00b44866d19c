package attendance

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/upsert"
	"hrmsconsole/internal/platform/keylock"
	"hrmsconsole/internal/platform/validate"
)

const (
	MsgMarked   = "Attendance marked successfully!"
	MsgUpdated  = "Attendance updated successfully!"
	MsgAbsent   = "Attendance marked as absent!"
	MsgDeleted  = "Attendance record deleted successfully!"
	MsgNoChange = "No attendance record to clear."
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
		return nil, fmt.Errorf("Failed to fetch attendance: %w", err)
	}
	return records, nil
}

func (s *Service) ListForDate(ctx context.Context, date string) ([]Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ForDate(records, date), nil
}

// Sheet loads the marking page for date against the given employees.
func (s *Service) Sheet(ctx context.Context, date string, employees []employee.Employee) (Sheet, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Sheet{}, err
	}
	return Reduce(Sheet{}, Loaded{Date: date, Employees: employees, Records: records}), nil
}

// Save marks one employee for one date. The existing record is looked up in a
// fresh listing: present updates or creates it, absent deletes it.
func (s *Service) Save(ctx context.Context, mark Mark) (upsert.Outcome[Record], error) {
	mark.Date = dayOf(mark.Date)
	mark.CheckIn = strings.TrimSpace(mark.CheckIn)
	mark.CheckOut = strings.TrimSpace(mark.CheckOut)
	if err := validate.Struct(mark, ""); err != nil {
		return upsert.Outcome[Record]{}, err
	}
	if mark.Status == StatusPresent {
		if err := checkTimes(mark); err != nil {
			return upsert.Outcome[Record]{}, err
		}
	}

	unlock, err := s.locks.Lock(ctx, lockKey(mark.EmployeeID, mark.Date))
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error saving attendance: %w", err)
	}
	defer unlock()

	records, err := s.backend.List(ctx)
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error saving attendance: %w", err)
	}
	existing, found := FindExisting(records, mark.EmployeeID, mark.Date)

	if mark.Status == StatusAbsent {
		if !found {
			return upsert.Outcome[Record]{Action: upsert.ActionNone, Message: MsgNoChange}, nil
		}
		if err := s.backend.Delete(ctx, existing.ID); err != nil {
			return upsert.Outcome[Record]{}, fmt.Errorf("Error updating attendance: %w", err)
		}
		return upsert.Outcome[Record]{Action: upsert.ActionDeleted, Record: existing, Message: MsgAbsent}, nil
	}

	rec := mark.record()
	if found {
		rec.ID = existing.ID
		updated, err := s.backend.Update(ctx, existing.ID, rec)
		if err != nil {
			return upsert.Outcome[Record]{}, fmt.Errorf("Error updating attendance: %w", err)
		}
		if updated.ID == 0 {
			updated = rec
		}
		return upsert.Outcome[Record]{Action: upsert.ActionUpdated, Record: updated, Message: MsgUpdated}, nil
	}

	created, err := s.backend.Create(ctx, rec)
	if err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error saving attendance: %w", err)
	}
	return upsert.Outcome[Record]{Action: upsert.ActionCreated, Record: created, Message: MsgMarked}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (upsert.Outcome[Record], error) {
	if id <= 0 {
		return upsert.Outcome[Record]{}, ErrInvalidID
	}
	if err := s.backend.Delete(ctx, id); err != nil {
		return upsert.Outcome[Record]{}, fmt.Errorf("Error deleting attendance: %w", err)
	}
	return upsert.Outcome[Record]{Action: upsert.ActionDeleted, Record: Record{ID: id}, Message: MsgDeleted}, nil
}

func checkTimes(mark Mark) error {
	if mark.CheckIn == "" {
		return ErrCheckInMissing
	}
	if !ValidClock(mark.CheckIn) {
		return ErrCheckInFormat
	}
	if mark.CheckOut != "" && !ValidClock(mark.CheckOut) {
		return ErrCheckOutFormat
	}
	return nil
}

func lockKey(employeeID int64, date string) string {
	return "attendance:" + strconv.FormatInt(employeeID, 10) + ":" + date
}
