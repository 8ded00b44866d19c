package shared

import (
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(DayLayout, value)
}

// Day normalizes value to YYYY-MM-DD, defaulting to the day of now when empty.
func Day(value string, now time.Time) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Format(DayLayout), true
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return "", false
	}
	return parsed.Format(DayLayout), true
}
