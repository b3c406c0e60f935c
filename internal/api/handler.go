package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/newsdesk/internal/config"
	"github.com/eugenenazirov/newsdesk/internal/provider"
	"github.com/eugenenazirov/newsdesk/internal/status"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Source is the configured system the API reports on.
type Source interface {
	Config() config.Config
	CheckStatus() status.Report
	RepairStorage() error
	PreferredProvider() provider.ID
	AvailableModels() map[string]string
}

// Handler serves read-only views of a Source.
type Handler struct {
	source Source
	clock  func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler over source.
func NewHandler(source Source, opts ...HandlerOption) *Handler {
	h := &Handler{
		source: source,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := h.statusResponse(h.source.CheckStatus())
	annotate(r, zap.Bool("ready", resp.Ready))

	code := http.StatusOK
	if !resp.Ready {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (h *Handler) handleRepairStorage(w http.ResponseWriter, r *http.Request) {
	if err := h.source.RepairStorage(); err != nil {
		annotate(r, zap.String("repair", "failed"), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Storage repair failed", err.Error())
		return
	}

	resp := h.statusResponse(h.source.CheckStatus())
	resp.Message = "Storage layout ready"
	annotate(r, zap.String("repair", "ok"), zap.Bool("ready", resp.Ready))
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleProviders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, providersResponse{
		Preferred: h.source.PreferredProvider(),
		Models:    h.source.AvailableModels(),
	})
}

func (h *Handler) handleFeeds(w http.ResponseWriter, _ *http.Request) {
	sources := h.source.Config().NewsSources
	feeds := sources.Feeds
	if feeds == nil {
		feeds = []config.Feed{}
	}
	writeJSON(w, http.StatusOK, feedsResponse{
		Feeds:                feeds,
		Count:                len(feeds),
		Lookback:             sources.Lookback().String(),
		MaxArticlesPerSource: sources.MaxArticlesPerSource,
	})
}

func (h *Handler) statusResponse(report status.Report) statusResponse {
	return statusResponse{
		Ready:     report.Ready(),
		Flags:     report.Map(),
		Missing:   report.Missing,
		Provider:  h.source.PreferredProvider(),
		FeedCount: len(h.source.Config().NewsSources.Feeds),
		CheckedAt: h.clock(),
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type statusResponse struct {
	Ready     bool            `json:"ready"`
	Flags     map[string]bool `json:"flags"`
	Missing   []string        `json:"missing,omitempty"`
	Provider  provider.ID     `json:"preferredProvider"`
	FeedCount int             `json:"feedCount"`
	CheckedAt time.Time       `json:"checkedAt"`
	Message   string          `json:"message,omitempty"`
}

type providersResponse struct {
	Preferred provider.ID       `json:"preferred"`
	Models    map[string]string `json:"models"`
}

type feedsResponse struct {
	Feeds                []config.Feed `json:"feeds"`
	Count                int           `json:"count"`
	Lookback             string        `json:"lookback"`
	MaxArticlesPerSource int           `json:"maxArticlesPerSource"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
