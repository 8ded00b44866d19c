package attendance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60
	notApplicable = "N/A"
)

// Duration is the worked time between check-in and check-out, or not
// applicable when either time is missing.
type Duration struct {
	minutes int
	known   bool
}

// ComputeDuration subtracts checkIn from checkOut. A check-out earlier than the
// check-in is read as a shift that crossed midnight.
func ComputeDuration(checkIn, checkOut string) Duration {
	in, okIn := parseClock(checkIn)
	out, okOut := parseClock(checkOut)
	if !okIn || !okOut {
		return Duration{}
	}
	minutes := out - in
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return Duration{minutes: minutes, known: true}
}

func (d Duration) Applicable() bool {
	return d.known
}

func (d Duration) Minutes() int {
	return d.minutes
}

func (d Duration) String() string {
	if !d.known {
		return notApplicable
	}
	return fmt.Sprintf("%dh %dm", d.minutes/60, d.minutes%60)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ShortTime truncates HH:MM:SS to HH:MM. Empty stays empty.
func ShortTime(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 5 {
		return value[:5]
	}
	return value
}

func parseClock(value string) (int, bool) {
	short := ShortTime(value)
	if len(short) != 5 || short[2] != ':' {
		return 0, false
	}
	hours, err := strconv.Atoi(short[:2])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(short[3:])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ValidClock reports whether value reads as an HH:MM wall-clock time.
func ValidClock(value string) bool {
	_, ok := parseClock(value)
	return ok
}
