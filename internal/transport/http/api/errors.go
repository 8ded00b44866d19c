package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hrmsconsole/internal/platform/apiclient"
	"hrmsconsole/internal/platform/validate"
)

const (
	CodeValidation          = "validation_error"
	CodeInvalidPayload      = "invalid_payload"
	CodeNotFound            = "not_found"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeUpstreamTimeout     = "upstream_timeout"
	CodeUpstreamError       = "upstream_error"
	CodeCancelled           = "request_cancelled"
	CodeInternal            = "internal_error"
)

// StatusCodeOf maps a service error to the console response status and code.
func StatusCodeOf(err error) (int, string) {
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, CodeValidation
	}
	if errors.Is(err, context.Canceled) {
		return 499, CodeCancelled
	}
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, CodeInternal
	}
	switch apiErr.Kind {
	case apiclient.KindTimeout:
		return http.StatusGatewayTimeout, CodeUpstreamTimeout
	case apiclient.KindNetwork:
		return http.StatusBadGateway, CodeUpstreamUnavailable
	}
	switch {
	case apiErr.Status == http.StatusNotFound:
		return http.StatusNotFound, CodeNotFound
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status, CodeUpstreamError
	default:
		return http.StatusBadGateway, CodeUpstreamError
	}
}

// FailFromError writes err with the status StatusCodeOf picks. The message is
// the error text, which services already phrase for the operator.
func FailFromError(w http.ResponseWriter, err error, requestID string) {
	status, code := StatusCodeOf(err)
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		FailWithDetails(w, status, code, vErr.Error(), map[string]any{"fields": vErr.Issues}, requestID)
		return
	}
	if status >= http.StatusInternalServerError {
		slog.Warn("request failed", "code", code, "err", err, "requestId", requestID)
	}
	Fail(w, status, code, err.Error(), requestID)
}
