package attendance

type TimeSlot string

const (
	SlotNone      TimeSlot = ""
	SlotFullDay   TimeSlot = "fullDay"
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotHalfDay   TimeSlot = "halfDay"
	SlotCustom    TimeSlot = "custom"
)

const (
	defaultCustomCheckIn  = "09:00"
	defaultCustomCheckOut = "17:00"
)

type Preset struct {
	Slot     TimeSlot `json:"slot"`
	Label    string   `json:"label"`
	CheckIn  string   `json:"checkIn"`
	CheckOut string   `json:"checkOut"`
}

var presets = []Preset{
	{Slot: SlotFullDay, Label: "Full Day", CheckIn: "09:00", CheckOut: "17:00"},
	{Slot: SlotMorning, Label: "Morning Shift", CheckIn: "09:00", CheckOut: "12:00"},
	{Slot: SlotAfternoon, Label: "Afternoon Shift", CheckIn: "13:00", CheckOut: "17:00"},
	{Slot: SlotHalfDay, Label: "Half Day", CheckIn: "09:00", CheckOut: "13:00"},
	{Slot: SlotCustom, Label: "Custom Time"},
}

// Presets lists every slot in display order, custom last.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

func PresetFor(slot TimeSlot) (Preset, bool) {
	for _, p := range presets {
		if p.Slot == slot {
			return p, true
		}
	}
	return Preset{}, false
}

func (s TimeSlot) Valid() bool {
	_, ok := PresetFor(s)
	return ok
}

// InferTimeSlot matches the HH:MM pair exactly against the fixed presets.
// Anything else, including a missing time, is custom.
func InferTimeSlot(checkIn, checkOut string) TimeSlot {
	in, out := ShortTime(checkIn), ShortTime(checkOut)
	if in == "" || out == "" {
		return SlotCustom
	}
	for _, p := range presets {
		if p.Slot == SlotCustom {
			continue
		}
		if p.CheckIn == in && p.CheckOut == out {
			return p.Slot
		}
	}
	return SlotCustom
}
