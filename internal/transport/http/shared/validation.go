package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrmsconsole/internal/transport/http/api"
	"hrmsconsole/internal/transport/http/middleware"
)

// DecodeJSON reads the request body into dst, answering 400 or 413 itself
// when it cannot.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
			return false
		}
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "invalid request payload", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// PathID reads a positive integer URL parameter.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		api.FailWithDetails(w, http.StatusBadRequest, api.CodeValidation, name+" must be a positive integer",
			map[string]any{"fields": []map[string]string{{"field": name, "reason": "must be greater than 0"}}},
			middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}
