package employee

import "strconv"

func Lookup(employees []Employee, id int64) (Employee, bool) {
	for _, emp := range employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return Employee{}, false
}

// NameOf falls back to the bare ID for records whose employee was deleted.
func NameOf(employees []Employee, id int64) string {
	if emp, ok := Lookup(employees, id); ok && emp.Name != "" {
		return emp.Name
	}
	return "Employee ID: " + strconv.FormatInt(id, 10)
}
