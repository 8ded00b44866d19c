package attendance

import "hrmsconsole/internal/platform/validate"

var (
	ErrInvalidID      = validate.Fail("attendance id must be a positive integer", "id", "must be greater than 0")
	ErrCheckInMissing = validate.Fail("Please select or enter check-in time", "checkInTime", "is required")
	ErrCheckInFormat  = validate.Fail("Check-in time must be HH:MM", "checkInTime", "must match 15:04")
	ErrCheckOutFormat = validate.Fail("Check-out time must be HH:MM", "checkOutTime", "must match 15:04")
	ErrTimeSlot       = validate.Fail("timeSlot must be one of fullDay, morning, afternoon, halfDay, custom", "timeSlot", "must be one of fullDay, morning, afternoon, halfDay, custom")
)
