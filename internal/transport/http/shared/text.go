package shared

import (
	"bytes"
	"encoding/json"
)

// Text decodes a JSON string, number or null as the text the operator typed,
// so amount fields accept both "5000" and 5000.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}
