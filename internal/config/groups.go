package config

import (
	"time"

	"github.com/eugenenazirov/newsdesk/internal/provider"
	"github.com/eugenenazirov/newsdesk/internal/storage"
)

// APIConfig holds credentials for external services.
// An empty value means the service is unavailable; it is never an error.
type APIConfig struct {
	// Language models.
	OpenAIAPIKey string
	GroqAPIKey   string
	GeminiAPIKey string

	// News data.
	NewsAPIKey   string
	GNewsAPIKey  string
	SerperAPIKey string

	// Voice and avatar services.
	ElevenLabsAPIKey string
	DIDAPIKey        string
}

// ProviderKeys returns the subset of credentials used for model selection.
func (a APIConfig) ProviderKeys() provider.Keys {
	return provider.Keys{
		Groq:   a.GroqAPIKey,
		OpenAI: a.OpenAIAPIKey,
		Gemini: a.GeminiAPIKey,
	}
}

// LLMConfigured reports whether groq or openai credentials are present.
// Gemini does not count.
func (a APIConfig) LLMConfigured() bool {
	return a.GroqAPIKey != "" || a.OpenAIAPIKey != ""
}

// NewsAPIAvailable reports whether the NewsAPI key is present.
func (a APIConfig) NewsAPIAvailable() bool {
	return a.NewsAPIKey != ""
}

// Configured lists the environment variable names of every credential that
// has a value. Values themselves are never exposed.
func (a APIConfig) Configured() []string {
	pairs := []struct {
		name  string
		value string
	}{
		{envOpenAIAPIKey, a.OpenAIAPIKey},
		{envGroqAPIKey, a.GroqAPIKey},
		{envGeminiAPIKey, a.GeminiAPIKey},
		{envNewsAPIKey, a.NewsAPIKey},
		{envGNewsAPIKey, a.GNewsAPIKey},
		{envSerperAPIKey, a.SerperAPIKey},
		{envElevenLabsAPIKey, a.ElevenLabsAPIKey},
		{envDIDAPIKey, a.DIDAPIKey},
	}

	names := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value != "" {
			names = append(names, p.name)
		}
	}
	return names
}

// LLMConfig holds model identifiers and sampling parameters.
type LLMConfig struct {
	DefaultModel  string
	ManagerModel  string
	FallbackModel string
	Temperature   float64
	MaxTokens     int
}

// AvailableModels maps aliases to model identifiers for every provider with a key.
func (l LLMConfig) AvailableModels(api APIConfig) map[string]string {
	return provider.Available(api.ProviderKeys())
}

// Feed describes one syndication source. Fetching it is someone else's job.
type Feed struct {
	Name     string `yaml:"name" json:"name"`
	URL      string `yaml:"url" json:"url"`
	Category string `yaml:"category" json:"category"`
	Priority string `yaml:"priority" json:"priority"`
	Country  string `yaml:"country" json:"country"`
}

// NewsSourceConfig holds the feed list and collection limits.
// Keyword lists are carried for downstream filters and not applied here.
type NewsSourceConfig struct {
	Feeds                []Feed
	MaxArticlesPerSource int
	HoursLookback        int
	MinArticleLength     int
	BlockedKeywords      []string
	RequiredKeywords     []string
}

// Lookback returns HoursLookback as a duration.
func (n NewsSourceConfig) Lookback() time.Duration {
	return time.Duration(n.HoursLookback) * time.Hour
}

// StorageConfig holds the storage base path and file housekeeping limits.
type StorageConfig struct {
	BasePath          string
	MaxFilesPerFolder int
	AutoCleanupDays   int
	BackupEnabled     bool
}

// Layout derives the directory layout rooted at BasePath.
func (s StorageConfig) Layout() storage.Layout {
	return storage.NewLayout(s.BasePath)
}

// WorkflowConfig holds timing constants and thresholds consumed by an
// external scheduler and pipeline.
type WorkflowConfig struct {
	DailyRunTime              string
	BreakingNewsCheckInterval time.Duration
	SocialMediaPostTimes      []string
	Timezone                  string

	MinArticlesForDailyNews int
	MinImportanceScore      float64
	MaxProcessingTime       time.Duration

	DailyNewsArticleLimit    int
	BreakingNewsArticleLimit int
	SocialMediaPostsPerDay   int
}

// ServerConfig holds settings for the status HTTP server.
type ServerConfig struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}
