package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrmsconsole/internal/platform/metrics"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		if seen == "" {
			t.Fatal("expected request id in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != seen {
		t.Fatal("expected request id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected inbound id kept, got %q", seen)
	}
}

func TestLoggerWritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

	line := buf.String()
	for _, want := range []string{`"path":"/api/v1/employees"`, `"status":418`, `"bytes":2`, `"requestId":"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %s", want, line)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected small body to pass, got %d", rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(noContent()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" || rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("unexpected headers %v", rec.Header())
	}
	rec = httptest.NewRecorder()
	SecureHeaders(false)(noContent()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("expected no HSTS outside production")
	}
}

func TestMetricsMiddleware(t *testing.T) {
	collector := metrics.New()
	handler := Metrics(collector)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	snap := collector.Snapshot()
	if snap["requestsTotal"] != uint64(1) || snap["errorsTotal"] != uint64(1) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestIdempotentReplaysCreate(t *testing.T) {
	calls := 0
	handler := Idempotent(NewIdempotencyStore(time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send(`{"name":"Ada"}`)
	second := send(`{"name":"Ada"}`)
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("expected replay, got %d %d after %d calls", first.Code, second.Code, calls)
	}
	if second.Header().Get("Idempotent-Replayed") != "true" || second.Body.String() != `{"id":1}` {
		t.Fatalf("unexpected replay %v %s", second.Header(), second.Body.String())
	}
	if conflict := send(`{"name":"Grace"}`); conflict.Code != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", conflict.Code)
	}
}

func TestIdempotentReservesKeyInFlight(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	calls := 0
	handler := Idempotent(NewIdempotencyStore(time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			close(entered)
			<-unblock
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(`{"name":"Ada"}`))
		req.Header.Set(IdempotencyHeader, "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- send() }()
	<-entered

	second := send()
	if second.Code != http.StatusConflict || !strings.Contains(second.Body.String(), "idempotency_in_progress") {
		t.Fatalf("expected in-progress conflict, got %d %s", second.Code, second.Body.String())
	}
	close(unblock)
	if first := <-done; first.Code != http.StatusCreated {
		t.Fatalf("expected first create, got %d", first.Code)
	}
	if third := send(); third.Header().Get("Idempotent-Replayed") != "true" || calls != 1 {
		t.Fatalf("expected replay after completion, got %v after %d calls", third.Header(), calls)
	}
}

func TestIdempotentReleasesKeyOnFailure(t *testing.T) {
	calls := 0
	handler := Idempotent(NewIdempotencyStore(time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyHeader, "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("expected retry after failure to reach handler, got %d calls", calls)
	}
}

func TestIdempotencyStoreSweepsExpiredOnSave(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewIdempotencyStore(time.Minute)
	store.now = func() time.Time { return now }

	store.save("a", idempotentResponse{status: http.StatusCreated})
	now = now.Add(2 * time.Minute)
	store.save("b", idempotentResponse{status: http.StatusCreated})

	if _, ok := store.entries["a"]; ok || len(store.entries) != 1 {
		t.Fatalf("expected expired entry swept, got %d entries", len(store.entries))
	}
}

func TestRequestHashDeterministic(t *testing.T) {
	if RequestHash([]byte("payload")) != RequestHash([]byte("payload")) {
		t.Fatal("expected deterministic hash")
	}
	if RequestHash([]byte("payload")) == RequestHash([]byte("other")) {
		t.Fatal("expected different hash for different payload")
	}
}
