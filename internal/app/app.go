package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"customerpulse/internal/config"
	"customerpulse/internal/errors"
	"customerpulse/internal/infrastructure"
	"customerpulse/internal/loader"
	customMiddleware "customerpulse/internal/middleware"
	"customerpulse/internal/services"
	handlers "customerpulse/internal/transport/http"
	ws "customerpulse/internal/websocket"
	"customerpulse/pkg/contracts"
)

const AppName = "Customer Pulse"

// Application is the dashboard server container. It owns the HTTP
// server, the websocket hub, and the dashboard service, and wires them
// together at startup.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Router    *chi.Mux
	Server    *http.Server
	Hub       *ws.Hub
	Dashboard *services.DashboardService
}

// NewApplication loads configuration and builds a ready-to-run
// application.
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
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", cfg.Server.Port))

	source, err := loader.FromConfig(context.Background(), cfg.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build source loader: %w", err)
	}

	hub := ws.NewHub(logger)
	hub.Start()

	dashboard := services.NewDashboardService(source, cfg.Source, hub, logger, nil)

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Hub:       hub,
		Dashboard: dashboard,
	}
	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router: the dashboard page at the
// root, the JSON API under /api/dashboard, and the operational
// endpoints alongside.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))

	errorHandler := errors.NewErrorHandler(a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Dashboard)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.RateLimit(a.Config.Server.RateLimit))
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	r.Get("/healthz", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/ws", ws.ServeWS(a.Hub, a.Config.WebSocket, a.Logger))
	r.Get("/", handlers.ServeDashboardPage())

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

// Run serves until interrupted, keeping the cache warm in the
// background, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening",
			slog.String("address", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.refreshLoop(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

// refreshLoop keeps the dashboard cache warm: one eager load at
// startup, then a reload every refresh interval. Failures are logged
// and retried on the next tick; the API serves stale data meanwhile.
func (a *Application) refreshLoop(ctx context.Context) {
	if err := a.Dashboard.Refresh(ctx); err != nil {
		a.Logger.Warn("initial data load failed",
			slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(a.Config.Source.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Dashboard.Refresh(ctx); err != nil {
				a.Logger.Error("scheduled refresh failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (a *Application) shutdown() error {
	a.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Hub.Stop()

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Error("failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.Info("shutdown complete")
	return nil
}
