// Package server exposes insight reports over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/runoshun/taskpulse/internal/infra/metrics"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Config holds server-specific configuration.
type Config struct {
	Addr string
}

// Deps are the use cases and collaborators the handlers call.
type Deps struct {
	BuildReport    *usecase.BuildReport
	Dismiss        *usecase.DismissSuggestion
	Restore        *usecase.RestoreSuggestions
	ListDismissals *usecase.ListDismissals
	Export         *usecase.ExportReport
	ExportTasks    *usecase.ExportTasks
	Metrics        *metrics.Metrics // Optional; /metrics is not mounted when nil
	Logger         *slog.Logger
}

// NewRouter builds the chi router with middleware and routes.
func NewRouter(deps Deps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	h := &handler{deps: deps, logger: logger}
	r.Route("/api", func(r chi.Router) {
		r.Get("/insights", h.getInsights)
		r.Get("/insights/suggestions", h.getSuggestions)
		r.Get("/insights/dismissals", h.getDismissals)
		r.Post("/insights/suggestions/{id}/dismiss", h.dismissSuggestion)
		r.Delete("/insights/suggestions/{id}/dismiss", h.restoreSuggestion)
		r.Get("/insights/alerts", h.getAlerts)
		r.Get("/reports/export.csv", h.exportCSV)
		r.Get("/reports/tasks.csv", h.exportTasksCSV)
	})

	return r
}

// NewHTTPServer creates an http.Server serving NewRouter(deps).
func NewHTTPServer(cfg Config, deps Deps) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves on srv until ctx is canceled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once the listener is open.
func Run(ctx context.Context, srv *http.Server, ready func(addr string)) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	if ready != nil {
		ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
