package attendance

import "hrmsconsole/internal/domain/upsert"

// FindExisting locates the record for (employeeID, date). Dates compare on
// their YYYY-MM-DD part.
func FindExisting(records []Record, employeeID int64, date string) (Record, bool) {
	day := dayOf(date)
	return upsert.First(records, func(r Record) bool {
		return r.EmployeeID == employeeID && r.Day() == day
	})
}

func ForDate(records []Record, date string) []Record {
	day := dayOf(date)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Day() == day {
			out = append(out, r)
		}
	}
	return out
}
