package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"hrmsconsole/internal/app/console"
	"hrmsconsole/internal/domain/dashboard"
	"hrmsconsole/internal/platform/config"
	"hrmsconsole/internal/platform/jobs"
	"hrmsconsole/internal/platform/metrics"
	"hrmsconsole/internal/transport/http/api"
	attendancehandler "hrmsconsole/internal/transport/http/handlers/attendance"
	dashboardhandler "hrmsconsole/internal/transport/http/handlers/dashboard"
	employeehandler "hrmsconsole/internal/transport/http/handlers/employee"
	payrollhandler "hrmsconsole/internal/transport/http/handlers/payroll"
	"hrmsconsole/internal/transport/http/middleware"
)

const (
	readyTimeout    = 2 * time.Second
	shutdownTimeout = 10 * time.Second
	jobQueueSize    = 16
)

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Services  *console.Services
	Metrics   *metrics.Collector
	Jobs      *jobs.Service
	Refresher *dashboard.Refresher
	Router    http.Handler
}

func New(cfg config.Config, logger *slog.Logger) *App {
	collector := metrics.New()
	return NewWithServices(cfg, logger, collector, console.NewServices(cfg, logger, collector))
}

// NewWithServices builds the router around already wired services.
func NewWithServices(cfg config.Config, logger *slog.Logger, collector *metrics.Collector, services *console.Services) *App {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		Config:    cfg,
		Logger:    logger,
		Services:  services,
		Metrics:   collector,
		Jobs:      jobs.New(jobQueueSize),
		Refresher: dashboard.NewRefresher(services.Dashboard),
	}
	app.Router = app.routes()
	return app
}

func (a *App) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.IsProduction()))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.RateLimit(a.Config.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Metrics(a.Metrics))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := a.Services.Client.Ping(ctx); err != nil {
			a.Logger.Warn("backend not ready", "err", err, "requestId", middleware.GetRequestID(r.Context()))
			http.Error(w, "backend not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := a.Metrics.Snapshot()
			snapshot["jobs"] = a.Jobs.Runs()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	idempotency := middleware.NewIdempotencyStore(a.Config.IdempotencyTTL)
	router.Route("/api/v1", func(r chi.Router) {
		dashboardhandler.NewHandler(a.Refresher, a.Jobs).RegisterRoutes(r)
		employeehandler.NewHandler(a.Services.Employees, idempotency).RegisterRoutes(r)
		attendancehandler.NewHandler(a.Services.Attendance, a.Services.Employees).RegisterRoutes(r)
		payrollhandler.NewHandler(a.Services.Payroll, a.Services.Employees).RegisterRoutes(r)
	})

	if a.Config.FrontendDir != "" {
		router.Mount("/", spaHandler{staticPath: a.Config.FrontendDir, indexPath: "index.html"})
	}
	return router
}

// Start runs the background jobs until ctx is done.
func (a *App) Start(ctx context.Context) {
	a.Jobs.Start(ctx)
	a.Refresher.Start(ctx, a.Jobs, a.Config.DashboardRefreshInterval)
}

// Run serves the console until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	app := New(cfg, logger)
	app.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("HRMS console listening", "addr", cfg.Addr, "apiBaseUrl", cfg.APIBaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.Logger.Info("HRMS console shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
