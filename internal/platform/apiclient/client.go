package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"hrmsconsole/internal/platform/metrics"
	"hrmsconsole/internal/requestctx"
)

const (
	DefaultTimeout  = 30 * time.Second
	maxResponseBody = 4 << 20
)

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Collector
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and decodes a JSON response into out when out is
// non-nil. A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	ctx, requestID := requestctx.Ensure(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestctx.Header, requestID)

	c.logger.Debug("api request", "method", method, "path", path, "requestId", requestID)
	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.RecordUpstream(resourceOf(path), 0, elapsed)
		return c.transportError(ctx, method, path, requestID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	c.metrics.RecordUpstream(resourceOf(path), resp.StatusCode, elapsed)
	if err != nil {
		return c.transportError(ctx, method, path, requestID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := serverMessage(resp.StatusCode, raw)
		c.logger.Warn("api response error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"durationMs", elapsed.Milliseconds(),
			"message", message,
			"requestId", requestID,
		)
		return &Error{Kind: KindServer, Method: method, Path: path, Status: resp.StatusCode, Message: message}
	}

	c.logger.Info("api response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"durationMs", elapsed.Milliseconds(),
		"requestId", requestID,
	)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Ping checks that the backend answers the employees listing.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, "/employees", nil, nil)
}

func (c *Client) transportError(ctx context.Context, method, path, requestID string, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		c.logger.Debug("api request cancelled", "method", method, "path", path, "requestId", requestID)
		return fmt.Errorf("%s %s: %w", method, path, context.Canceled)
	}
	if isTimeout(err) {
		c.logger.Warn("api request timed out", "method", method, "path", path, "timeout", c.timeout.String(), "requestId", requestID)
		return &Error{
			Kind:    KindTimeout,
			Method:  method,
			Path:    path,
			Message: fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds()),
			Err:     err,
		}
	}
	c.logger.Warn("api request failed", "method", method, "path", path, "err", err, "requestId", requestID)
	return &Error{
		Kind:    KindNetwork,
		Method:  method,
		Path:    path,
		Message: "Network Error: no response received from " + c.baseURL,
		Err:     err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.IndexAny(trimmed, "/?"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
