package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

type Kind string

const (
	// KindNetwork means the request was sent but no response came back.
	KindNetwork Kind = "network"
	KindTimeout Kind = "timeout"
	// KindServer means the backend answered with a non-2xx status.
	KindServer Kind = "server"
)

const maxTextMessage = 512

// Error is a failed call to the REST backend. Message is safe to show to the
// operator as-is.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func serverMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if msg := strings.TrimSpace(payload.Message); msg != "" {
				return msg
			}
		}
		return fallbackMessage(status)
	}
	if len(trimmed) > 0 && len(trimmed) <= maxTextMessage && utf8.Valid(trimmed) && !bytes.HasPrefix(trimmed, []byte("<")) {
		return string(trimmed)
	}
	return fallbackMessage(status)
}

func fallbackMessage(status int) string {
	return fmt.Sprintf("Request failed with status code %d", status)
}
