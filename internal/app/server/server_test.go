package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hrmsconsole/internal/app/console"
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/platform/config"
	"hrmsconsole/internal/platform/metrics"
	"hrmsconsole/internal/platform/money"
	"hrmsconsole/internal/testutil"
)

func newApp(t *testing.T, mutate func(*config.Config)) (*App, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	cfg := config.FromEnv()
	cfg.APIBaseURL = backend.URL()
	cfg.APITimeout = time.Second
	cfg.DashboardRefreshInterval = 0
	cfg.RateLimitPerMinute = 1000
	cfg.MetricsEnabled = true
	cfg.FrontendDir = ""
	if mutate != nil {
		mutate(&cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	collector := metrics.New()
	return NewWithServices(cfg, logger, collector, console.NewServices(cfg, logger, collector)), backend
}

func TestHealthAndReady(t *testing.T) {
	app, _ := newApp(t, nil)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("expected healthz ok, got %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
}

func TestReadyReportsBackendFailure(t *testing.T) {
	app, backend := newApp(t, nil)
	backend.FailWith("employees", http.StatusInternalServerError, "boom")

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAPIRoutesMounted(t *testing.T) {
	app, backend := newApp(t, nil)
	backend.Seed("employees", employee.Employee{Name: "Ada", Designation: "Engineer", Department: "R&D", Salary: money.FromInt(5000)})

	for _, path := range []string{
		"/api/v1/employees",
		"/api/v1/attendance?date=2024-03-01",
		"/api/v1/attendance/slots",
		"/api/v1/payroll",
		"/api/v1/dashboard",
	} {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d (%s)", path, rec.Code, rec.Body.String())
		}
	}
}

func TestMetricsIncludesJobs(t *testing.T) {
	app, _ := newApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := app.Refresher.Latest(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected initial dashboard refresh to land")
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
	var env struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	for _, key := range []string{"requestsTotal", "upstream", "jobs"} {
		if _, ok := env.Data[key]; !ok {
			t.Fatalf("expected %s in metrics, got %v", key, env.Data)
		}
	}
	if !strings.Contains(string(env.Data["jobs"]), "dashboard_refresh") {
		t.Fatalf("expected dashboard refresh run, got %s", env.Data["jobs"])
	}
}

func TestMetricsDisabled(t *testing.T) {
	app, _ := newApp(t, func(cfg *config.Config) { cfg.MetricsEnabled = false })

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with metrics disabled, got %d", rec.Code)
	}
}

func TestFrontendFallsBackToIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>console</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	app, _ := newApp(t, func(cfg *config.Config) { cfg.FrontendDir = dir })

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/7", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "console") {
		t.Fatalf("expected index fallback, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestManualRefreshAppearsInMetrics(t *testing.T) {
	app, _ := newApp(t, nil)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/refresh", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected refresh 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var env struct {
		Data struct {
			Jobs []struct {
				JobType string `json:"jobType"`
				Count   int    `json:"count"`
			} `json:"jobs"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if len(env.Data.Jobs) != 1 || env.Data.Jobs[0].JobType != "dashboard_refresh" || env.Data.Jobs[0].Count != 1 {
		t.Fatalf("expected one manual dashboard refresh in metrics, got %+v", env.Data.Jobs)
	}
}
