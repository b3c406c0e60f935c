package application

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/newsdesk/internal/config"
	"github.com/eugenenazirov/newsdesk/internal/metrics"
	"github.com/eugenenazirov/newsdesk/internal/provider"
	"github.com/eugenenazirov/newsdesk/internal/status"
)

// System is the configuration aggregate root. Build it once in main and pass
// it to whatever needs configuration.
type System struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
}

// SystemOption configures System behaviour.
type SystemOption func(*System)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) SystemOption {
	return func(s *System) {
		s.clock = clock
	}
}

// WithMetrics records status checks and repairs on m.
func WithMetrics(m *metrics.Metrics) SystemOption {
	return func(s *System) {
		s.metrics = m
	}
}

// NewSystem wraps cfg and creates the storage layout. It never fails: a
// storage error is logged and shows up later as false storage flags.
func NewSystem(cfg config.Config, logger *zap.Logger, opts ...SystemOption) *System {
	s := &System{
		cfg:    cfg,
		logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.metrics.SetConfiguredCredentials(len(cfg.API.Configured()))
	_ = s.RepairStorage()

	return s
}

// Config returns the loaded configuration.
func (s *System) Config() config.Config {
	return s.cfg
}

// Metrics returns the metrics sink, which may be nil.
func (s *System) Metrics() *metrics.Metrics {
	return s.metrics
}

// Now returns the current time from the configured clock.
func (s *System) Now() time.Time {
	return s.clock()
}

// CheckStatus reports readiness without touching the filesystem.
func (s *System) CheckStatus() status.Report {
	report := status.Check(s.cfg)
	s.observe(report)
	return report
}

// RepairStorage creates any missing layout directories.
func (s *System) RepairStorage() error {
	err := status.Repair(s.cfg.Layout(), s.logger)
	s.metrics.ObserveRepair(err)
	return err
}

// Validate repairs storage, then reports readiness. Storage errors are
// folded into the report.
func (s *System) Validate() status.Report {
	report := status.Validate(s.cfg, s.RepairStorage)
	s.observe(report)
	return report
}

// PreferredProvider returns the language-model backend to use.
// It falls back to gemini without checking for a gemini key.
func (s *System) PreferredProvider() provider.ID {
	return s.cfg.PreferredProvider()
}

// AvailableModels returns the alias to model mapping for configured providers.
func (s *System) AvailableModels() map[string]string {
	return s.cfg.AvailableModels()
}

// Report validates the setup and writes the human-readable summary to w.
func (s *System) Report(w io.Writer) error {
	report := s.Validate()
	return status.Render(w, status.Summarize(s.cfg, report, s.Now()))
}

func (s *System) observe(report status.Report) {
	for _, f := range report.Flags {
		s.metrics.ObserveCheck(f.Name, f.OK)
	}
}
