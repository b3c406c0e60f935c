package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/newsdesk/internal/api"
	"github.com/eugenenazirov/newsdesk/internal/config"
	"github.com/eugenenazirov/newsdesk/internal/metrics"
)

// App encapsulates the status API dependencies and HTTP server.
type App struct {
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New wires the status API for sys into an HTTP server.
func New(sys *System, logger *zap.Logger) *App {
	cfg := sys.Config()

	handler := api.NewHandler(sys, api.WithClock(sys.Now))
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.Server.EnableRequestLogging),
		api.WithRateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	)

	return &App{
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg.Server, BuildRootHandler(apiRouter, sys.Metrics())),
	}
}

// BuildRootHandler mounts the API under /api/ and, when m is set, the
// Prometheus endpoint at /metrics.
func BuildRootHandler(apiHandler http.Handler, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("status server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
