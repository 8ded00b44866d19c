// Package upsert holds the create-or-update decision shared by the attendance
// and payroll pages: scan the freshly fetched collection for a record with the
// same key, update it when found, create otherwise.
package upsert

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionNone    Action = "none"
)

type Outcome[T any] struct {
	Action  Action `json:"action"`
	Record  T      `json:"record"`
	Message string `json:"message,omitempty"`
}

// First returns the first record in fetch order that satisfies match. When the
// backend holds duplicates for a key, the earlier one wins.
func First[T any](records []T, match func(T) bool) (T, bool) {
	for _, record := range records {
		if match(record) {
			return record, true
		}
	}
	var zero T
	return zero, false
}

// Decide reports which write a save would issue given whether a match exists.
func Decide(found bool) Action {
	if found {
		return ActionUpdated
	}
	return ActionCreated
}
