package attendance

import (
	"hrmsconsole/internal/domain/employee"
)

// Entry is the marking form state for one employee on the sheet date.
type Entry struct {
	EmployeeID     int64    `json:"employeeId"`
	Status         Status   `json:"status"`
	Record         *Record  `json:"record,omitempty"`
	TimeSlot       TimeSlot `json:"timeSlot"`
	CustomCheckIn  string   `json:"customCheckIn"`
	CustomCheckOut string   `json:"customCheckOut"`
}

// Sheet is the attendance page state for a single date. Treat it as a value:
// Reduce returns a new Sheet and leaves its input untouched.
type Sheet struct {
	Date      string
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

// Loaded replaces the sheet with freshly fetched collections.
type Loaded struct {
	Date      string
	Employees []employee.Employee
	Records   []Record
}

func (a Loaded) apply(Sheet) Sheet {
	date := dayOf(a.Date)
	entries := make(map[int64]Entry, len(a.Employees))
	for _, emp := range a.Employees {
		entry := Entry{EmployeeID: emp.ID, Status: StatusAbsent}
		if rec, ok := FindExisting(a.Records, emp.ID, date); ok {
			rec := rec
			entry.Status = StatusPresent
			entry.Record = &rec
			entry.TimeSlot = InferTimeSlot(rec.CheckInTime, rec.CheckOut())
			entry.CustomCheckIn = ShortTime(rec.CheckInTime)
			entry.CustomCheckOut = ShortTime(rec.CheckOut())
		}
		entries[emp.ID] = entry
	}
	return Sheet{
		Date:      date,
		Employees: append([]employee.Employee(nil), a.Employees...),
		Records:   append([]Record(nil), a.Records...),
		Entries:   entries,
	}
}

// StatusChanged toggles present/absent. Present starts on the full-day preset.
type StatusChanged struct {
	EmployeeID int64
	Status     Status
}

func (a StatusChanged) apply(s Sheet) Sheet {
	if a.Status != StatusPresent && a.Status != StatusAbsent {
		return s
	}
	entry := s.Entry(a.EmployeeID)
	entry.Status = a.Status
	entry.TimeSlot = SlotNone
	if a.Status == StatusPresent {
		entry.TimeSlot = SlotFullDay
	}
	return s.withEntry(entry)
}

// TimeSlotChanged picks a preset, or custom keeping any earlier custom times.
type TimeSlotChanged struct {
	EmployeeID int64
	Slot       TimeSlot
}

func (a TimeSlotChanged) apply(s Sheet) Sheet {
	preset, ok := PresetFor(a.Slot)
	if !ok {
		return s
	}
	entry := s.Entry(a.EmployeeID)
	entry.TimeSlot = a.Slot
	if a.Slot == SlotCustom {
		if entry.CustomCheckIn == "" {
			entry.CustomCheckIn = defaultCustomCheckIn
		}
		if entry.CustomCheckOut == "" {
			entry.CustomCheckOut = defaultCustomCheckOut
		}
	} else {
		entry.CustomCheckIn = preset.CheckIn
		entry.CustomCheckOut = preset.CheckOut
	}
	return s.withEntry(entry)
}

// CustomTimeChanged edits the custom fields; nil leaves a field as is.
type CustomTimeChanged struct {
	EmployeeID int64
	CheckIn    *string
	CheckOut   *string
}

func (a CustomTimeChanged) apply(s Sheet) Sheet {
	entry := s.Entry(a.EmployeeID)
	if a.CheckIn != nil {
		entry.CustomCheckIn = *a.CheckIn
	}
	if a.CheckOut != nil {
		entry.CustomCheckOut = *a.CheckOut
	}
	return s.withEntry(entry)
}

// Entry returns the form state for an employee, absent when unknown.
func (s Sheet) Entry(employeeID int64) Entry {
	if entry, ok := s.Entries[employeeID]; ok {
		return entry
	}
	return Entry{EmployeeID: employeeID, Status: StatusAbsent}
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

// Mark derives what saving this employee's row would send.
func (s Sheet) Mark(employeeID int64) Mark {
	entry := s.Entry(employeeID)
	mark := Mark{EmployeeID: employeeID, Date: s.Date, Status: entry.Status}
	if entry.Status != StatusPresent {
		mark.Status = StatusAbsent
		return mark
	}
	if preset, ok := PresetFor(entry.TimeSlot); ok && entry.TimeSlot != SlotCustom {
		mark.CheckIn, mark.CheckOut = preset.CheckIn, preset.CheckOut
		return mark
	}
	mark.CheckIn, mark.CheckOut = entry.CustomCheckIn, entry.CustomCheckOut
	return mark
}

// Row is one employee line of the marking grid.
type Row struct {
	Employee employee.Employee `json:"employee"`
	Entry    Entry             `json:"entry"`
	Duration Duration          `json:"duration"`
}

func (s Sheet) Rows() []Row {
	rows := make([]Row, 0, len(s.Employees))
	for _, emp := range s.Employees {
		entry := s.Entry(emp.ID)
		row := Row{Employee: emp, Entry: entry}
		if entry.Record != nil {
			row.Duration = entry.Record.Duration()
		}
		rows = append(rows, row)
	}
	return rows
}

// DayRecord is one line of the day's recorded attendance.
type DayRecord struct {
	Record       Record   `json:"record"`
	EmployeeName string   `json:"employeeName"`
	CheckIn      string   `json:"checkIn"`
	CheckOut     string   `json:"checkOut"`
	Duration     Duration `json:"duration"`
}

func (s Sheet) DayRecords() []DayRecord {
	day := ForDate(s.Records, s.Date)
	out := make([]DayRecord, 0, len(day))
	for _, rec := range day {
		out = append(out, DayRecord{
			Record:       rec,
			EmployeeName: employee.NameOf(s.Employees, rec.EmployeeID),
			CheckIn:      orNA(ShortTime(rec.CheckInTime)),
			CheckOut:     orNA(ShortTime(rec.CheckOut())),
			Duration:     rec.Duration(),
		})
	}
	return out
}

// PresentCount counts employees marked present in the current form state.
func (s Sheet) PresentCount() int {
	n := 0
	for _, emp := range s.Employees {
		if s.Entry(emp.ID).Status == StatusPresent {
			n++
		}
	}
	return n
}

func orNA(value string) string {
	if value == "" {
		return notApplicable
	}
	return value
}
