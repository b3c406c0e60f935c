package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/newsdesk/internal/application"
	"github.com/eugenenazirov/newsdesk/internal/config"
	"github.com/eugenenazirov/newsdesk/internal/logging"
	"github.com/eugenenazirov/newsdesk/internal/metrics"
)

var signalNotify = signal.Notify

type cli struct {
	app *kingpin.Application

	configFile  *string
	envFile     *string
	storagePath *string
	logLevel    *string

	check  *kingpin.CmdClause
	ensure *kingpin.CmdClause
	serve  *kingpin.CmdClause

	port           *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cli {
	c := &cli{
		app: kingpin.New("newsdesk", "Newsdesk - configuration and storage bootstrap for the AI news channel"),
	}
	c.configFile = c.app.Flag("config", "Path to YAML configuration file").String()
	c.envFile = c.app.Flag("env-file", "Path to .env file (default: ./.env when present)").String()
	c.storagePath = c.app.Flag("storage-path", "Base directory for generated content").String()
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	c.check = c.app.Command("check", "Validate the setup and print the configuration report").Default()
	c.ensure = c.app.Command("ensure", "Create the storage directory layout")
	c.serve = c.app.Command("serve", "Serve the status API")
	c.port = c.serve.Flag("port", "HTTP port exposed by the status API").String()
	c.rateLimitRPS = c.serve.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	return c
}

// overrides converts parsed flags into config overrides. Server flags only
// count for the serve command.
func (c *cli) overrides(command string) *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *c.configFile,
		EnvFile:    *c.envFile,
	}
	if *c.storagePath != "" {
		overrides.StoragePath = c.storagePath
	}
	if *c.logLevel != "" {
		overrides.LogLevel = c.logLevel
	}
	if command != c.serve.FullCommand() {
		return overrides
	}
	if *c.port != "" {
		overrides.Port = c.port
	}
	if *c.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = c.rateLimitRPS
	}
	if *c.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = c.rateLimitBurst
	}
	return overrides
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "newsdesk: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	c := newCLI()
	command, err := c.app.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.overrides(command))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	sys := application.NewSystem(cfg, logger, application.WithMetrics(metrics.New()))

	switch command {
	case c.ensure.FullCommand():
		if err := sys.RepairStorage(); err != nil {
			return fmt.Errorf("failed to create storage layout: %w", err)
		}
		logger.Info("storage layout ready", zap.String("base_path", cfg.Storage.BasePath))
		return nil
	case c.serve.FullCommand():
		app := application.New(sys, logger)
		if err := app.Start(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		shutdown(app.Server(), cfg.Server.ShutdownGracePeriod, logger)
		return nil
	default:
		return sys.Report(stdout)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGTERM)

	sig := <-quit
	logger.Info("shutting down status server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
