package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notice is the toast-style message shown to the operator after an action.
type Notice struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type Envelope struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data,omitempty"`
	Error     *Error  `json:"error,omitempty"`
	Notice    *Notice `json:"notice,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

// Done reports a completed action with a success notice.
func Done(w http.ResponseWriter, status int, data any, message, requestID string) {
	env := Envelope{Success: true, Data: data, RequestID: requestID}
	if message != "" {
		env.Notice = &Notice{Severity: SeveritySuccess, Message: message}
	}
	WriteJSON(w, status, env)
}

// Degraded returns data that is usable but incomplete, with a warning notice.
func Degraded(w http.ResponseWriter, data any, message, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Notice:    &Notice{Severity: SeverityWarning, Message: message},
		RequestID: requestID,
	})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	FailWithDetails(w, status, code, message, nil, requestID)
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: code, Message: message, Details: details},
		Notice:    &Notice{Severity: SeverityError, Message: message},
		RequestID: requestID,
	})
}
