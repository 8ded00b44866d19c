package attendance

import "strings"

// Form is one employee's marking input as submitted from outside the sheet.
type Form struct {
	EmployeeID int64
	Date       string
	Status     Status
	TimeSlot   TimeSlot
	CheckIn    string
	CheckOut   string
}

// Compose replays the form interactions on a blank sheet so the saved times
// follow the same preset rules as the marking grid. Times given without a
// slot select custom. With a preset slot the preset's times are saved and any
// given times are ignored, as the grid does when a preset is picked. With
// custom, a missing time keeps the 09:00/17:00 default.
func Compose(f Form) (Mark, error) {
	sheet := Sheet{Date: f.Date}
	status := Status(strings.ToLower(strings.TrimSpace(string(f.Status))))
	if status != StatusPresent {
		return Mark{EmployeeID: f.EmployeeID, Date: f.Date, Status: status}, nil
	}
	sheet = Reduce(sheet, StatusChanged{EmployeeID: f.EmployeeID, Status: status})

	slot := f.TimeSlot
	if slot == SlotNone && (f.CheckIn != "" || f.CheckOut != "") {
		slot = SlotCustom
	}
	if slot != SlotNone {
		if !slot.Valid() {
			return Mark{}, ErrTimeSlot
		}
		sheet = Reduce(sheet, TimeSlotChanged{EmployeeID: f.EmployeeID, Slot: slot})
	}
	if slot == SlotCustom {
		sheet = Reduce(sheet, CustomTimeChanged{
			EmployeeID: f.EmployeeID,
			CheckIn:    given(f.CheckIn),
			CheckOut:   given(f.CheckOut),
		})
	}
	return sheet.Mark(f.EmployeeID), nil
}

func given(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
