// Package status computes the readiness flags of a configured newsdesk.
package status

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/newsdesk/internal/config"
	"github.com/eugenenazirov/newsdesk/internal/storage"
)

// Flag names, in report order.
const (
	StorageReady        = "storage_ready"
	LLMConfigured       = "llm_configured"
	NewsSourcesReady    = "news_sources_ready"
	NewsAPIAvailable    = "newsapi_available"
	AllDirectoriesExist = "all_directories_exist"
)

// Flag is one named readiness check.
type Flag struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
}

// Report is the outcome of a status check.
type Report struct {
	Flags []Flag `json:"flags"`
	// Missing lists layout directories that were absent when checked.
	Missing []string `json:"missing,omitempty"`
	// RepairError is set when a repair attempt preceded the check and failed.
	RepairError string `json:"repair_error,omitempty"`
}

// Get returns the value of the named flag; unknown names are false.
func (r Report) Get(name string) bool {
	for _, f := range r.Flags {
		if f.Name == name {
			return f.OK
		}
	}
	return false
}

// Ready reports whether every flag is true.
func (r Report) Ready() bool {
	for _, f := range r.Flags {
		if !f.OK {
			return false
		}
	}
	return len(r.Flags) > 0
}

// Map returns the flags keyed by name.
func (r Report) Map() map[string]bool {
	out := make(map[string]bool, len(r.Flags))
	for _, f := range r.Flags {
		out[f.Name] = f.OK
	}
	return out
}

// Check inspects configuration and the filesystem without changing either.
func Check(cfg config.Config) Report {
	missing := cfg.Layout().Missing()
	storageOK := len(missing) == 0

	return Report{
		Flags: []Flag{
			{Name: StorageReady, OK: storageOK},
			{Name: LLMConfigured, OK: cfg.API.LLMConfigured()},
			{Name: NewsSourcesReady, OK: len(cfg.NewsSources.Feeds) > 0},
			{Name: NewsAPIAvailable, OK: cfg.API.NewsAPIAvailable()},
			{Name: AllDirectoriesExist, OK: storageOK},
		},
		Missing: missing,
	}
}

// Repair creates any missing layout directories.
func Repair(layout storage.Layout, logger *zap.Logger) error {
	if err := layout.Ensure(); err != nil {
		logger.Error("storage setup error", zap.String("base_path", layout.Base), zap.Error(err))
		return err
	}
	for _, dir := range layout.Paths() {
		logger.Debug("directory ready", zap.String("path", dir))
	}
	return nil
}

// WithRepairError returns a copy of r recording err and with both storage
// flags forced false.
func (r Report) WithRepairError(err error) Report {
	if err == nil {
		return r
	}
	flags := make([]Flag, len(r.Flags))
	copy(flags, r.Flags)
	for i := range flags {
		switch flags[i].Name {
		case StorageReady, AllDirectoriesExist:
			flags[i].OK = false
		}
	}
	r.Flags = flags
	r.RepairError = err.Error()
	return r
}

// Validate runs repair and then checks status. A repair failure is
// reported through the two storage flags and never returned.
func Validate(cfg config.Config, repair func() error) Report {
	return Check(cfg).WithRepairError(repair())
}
