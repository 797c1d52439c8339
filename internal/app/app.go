// Package app wires configuration, services, and the HTTP router into a
// runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"riskdesk/internal/config"
	apierrors "riskdesk/internal/errors"
	"riskdesk/internal/infrastructure"
	customMiddleware "riskdesk/internal/middleware"
	"riskdesk/internal/services"
	handlers "riskdesk/internal/transport/http"
	"riskdesk/internal/workbook"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Application is the dependency container for the service.
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics

	Store       *workbook.Store
	Legend      *services.LegendService
	Correlation *services.CorrelationService
	Stress      *services.StressService
}

// NewApplication loads configuration and builds the full dependency graph.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.String("correlation_file", cfg.Data.CorrelationFile),
		slog.String("stress_file", cfg.Data.StressFile),
		slog.String("legend_file", cfg.Data.LegendFile))

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) initializeServices() {
	a.Store = workbook.NewStore(a.Logger)
	a.Store.OnLoad(func(key string) {
		a.Metrics.WorkbookLoads.WithLabelValues(workbook.Dataset(key)).Inc()
	})

	a.Legend = services.NewLegendService(a.Store, a.Config.Data.LegendFile, a.Logger)
	a.Correlation = services.NewCorrelationService(a.Store, a.Config.Data.CorrelationFile, a.Legend, a.Logger)
	a.Stress = services.NewStressService(a.Store, a.Config.Data.StressFile, a.Legend, a.Logger)
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Metrics(a.Metrics))
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Mount("/health", handlers.NewHealthHandler(Version, a.Logger).Routes())
		r.Mount("/correlation", handlers.NewCorrelationHandler(a.Correlation, a.Logger, errorHandler).Routes())
		r.Mount("/stress", handlers.NewStressHandler(a.Stress, a.Logger, errorHandler).Routes())
		r.Mount("/legend", handlers.NewLegendHandler(a.Legend, a.Logger, errorHandler).Routes())
		r.Mount("/export", handlers.NewExportHandler(a.Correlation, a.Stress, a.Legend, a.Metrics, a.Logger, errorHandler).Routes())
	})

	// Prometheus endpoint stays outside the API middleware group.
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown completes.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}

// WaitUntilReady pre-warms the workbook cache so the first user request
// does not pay the parse cost. Errors are logged, not fatal: a missing
// workbook surfaces per-request as a problem response.
func (a *Application) WaitUntilReady(ctx context.Context) {
	start := time.Now()
	if _, err := a.Store.CorrelationSheets(a.Config.Data.CorrelationFile); err != nil {
		a.Logger.WarnContext(ctx, "correlation workbook not loadable", slog.String("error", err.Error()))
	}
	if _, err := a.Store.StressTotals(a.Config.Data.StressFile); err != nil {
		a.Logger.WarnContext(ctx, "stress workbook not loadable", slog.String("error", err.Error()))
	}
	if _, err := a.Legend.Names(ctx); err != nil {
		a.Logger.WarnContext(ctx, "legend workbook not loadable", slog.String("error", err.Error()))
	}
	a.Logger.InfoContext(ctx, "cache pre-warm complete", slog.String("duration", time.Since(start).String()))
}
