package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/newsdesk/internal/provider"
	"github.com/eugenenazirov/newsdesk/internal/schedule"
	"github.com/eugenenazirov/newsdesk/internal/storage"
)

const defaultEnvFile = ".env"

// Environment variables read by Load. Each is read exactly once.
const (
	envOpenAIAPIKey     = "OPENAI_API_KEY"
	envGroqAPIKey       = "GROQ_API_KEY"
	envGeminiAPIKey     = "GEMINI_API_KEY"
	envNewsAPIKey       = "NEWSAPI_KEY"
	envGNewsAPIKey      = "GNEWSAPI_KEY"
	envSerperAPIKey     = "SERPER_API_KEY"
	envElevenLabsAPIKey = "ELEVENLABS_API_KEY"
	envDIDAPIKey        = "DID_API_KEY"

	envStorageBasePath  = "STORAGE_BASE_PATH"
	envWorkflowTimezone = "WORKFLOW_TIMEZONE"
	envLogLevel         = "LOG_LEVEL"
	envPort             = "PORT"
	envRateLimitRPS     = "RATE_LIMIT_RPS"
	envRateLimitBurst   = "RATE_LIMIT_BURST"
)

var envKeys = []string{
	envOpenAIAPIKey, envGroqAPIKey, envGeminiAPIKey,
	envNewsAPIKey, envGNewsAPIKey, envSerperAPIKey,
	envElevenLabsAPIKey, envDIDAPIKey,
	envStorageBasePath, envWorkflowTimezone, envLogLevel,
	envPort, envRateLimitRPS, envRateLimitBurst,
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables (.env included) > YAML config > Defaults
//
// A loaded Config is a plain value and is not modified afterwards.
type Config struct {
	API         APIConfig
	LLM         LLMConfig
	NewsSources NewsSourceConfig
	Storage     StorageConfig
	Workflow    WorkflowConfig
	Server      ServerConfig
	LogLevel    string
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	EnvFile        string
	StoragePath    *string
	LogLevel       *string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// PreferredProvider returns the provider chosen from the configured credentials.
func (c Config) PreferredProvider() provider.ID {
	return provider.Preferred(c.API.ProviderKeys())
}

// AvailableModels returns the alias to model mapping for configured providers.
func (c Config) AvailableModels() map[string]string {
	return c.LLM.AvailableModels(c.API)
}

// Layout returns the storage directory layout.
func (c Config) Layout() storage.Layout {
	return c.Storage.Layout()
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
//
// Missing credentials never cause an error.
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	envFile := ""
	if overrides != nil {
		envFile = overrides.EnvFile
	}
	env, err := readEnv(envFile)
	if err != nil {
		return Config{}, err
	}
	applyEnvConfig(&cfg, env)

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// readEnv snapshots every known variable once. Process environment wins over
// the env file. A missing default .env is not an error; a missing explicit one is.
func readEnv(envFile string) (map[string]string, error) {
	path := envFile
	if path == "" {
		path = defaultEnvFile
	}

	dotenv, err := godotenv.Read(path)
	if err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		dotenv = map[string]string{}
	}

	env := make(map[string]string, len(envKeys))
	for _, key := range envKeys {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = strings.TrimSpace(value)
			continue
		}
		if value, ok := dotenv[key]; ok {
			env[key] = strings.TrimSpace(value)
		}
	}
	return env, nil
}

// applyEnvConfig applies the environment snapshot.
func applyEnvConfig(cfg *Config, env map[string]string) {
	cfg.API = APIConfig{
		OpenAIAPIKey:     env[envOpenAIAPIKey],
		GroqAPIKey:       env[envGroqAPIKey],
		GeminiAPIKey:     env[envGeminiAPIKey],
		NewsAPIKey:       env[envNewsAPIKey],
		GNewsAPIKey:      env[envGNewsAPIKey],
		SerperAPIKey:     env[envSerperAPIKey],
		ElevenLabsAPIKey: env[envElevenLabsAPIKey],
		DIDAPIKey:        env[envDIDAPIKey],
	}

	if base := env[envStorageBasePath]; base != "" {
		cfg.Storage.BasePath = base
	}

	if tz := env[envWorkflowTimezone]; tz != "" {
		cfg.Workflow.Timezone = tz
	}

	if level := env[envLogLevel]; level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	if port := env[envPort]; port != "" {
		cfg.Server.Port = port
	}

	if rps := env[envRateLimitRPS]; rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.Server.RateLimitRPS = value
		}
	}

	if burst := env[envRateLimitBurst]; burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.Server.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.StoragePath != nil && *overrides.StoragePath != "" {
		cfg.Storage.BasePath = *overrides.StoragePath
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*overrides.LogLevel)
	}

	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Server.Port = *overrides.Port
	}

	if overrides.RateLimitRPS != nil {
		if *overrides.RateLimitRPS < 0 {
			return fmt.Errorf("rate limit rps must be >= 0, got %v", *overrides.RateLimitRPS)
		}
		cfg.Server.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil {
		if *overrides.RateLimitBurst < 0 {
			return fmt.Errorf("rate limit burst must be >= 0, got %d", *overrides.RateLimitBurst)
		}
		cfg.Server.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// validateConfig validates the final configuration.
// Credentials are deliberately not checked.
func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Storage.BasePath) == "" {
		return fmt.Errorf("storage base path cannot be empty")
	}
	if cfg.Storage.MaxFilesPerFolder < 0 || cfg.Storage.AutoCleanupDays < 0 {
		return fmt.Errorf("storage limits must be >= 0")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be between 0 and 2, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max tokens must be positive, got %d", cfg.LLM.MaxTokens)
	}

	for i, feed := range cfg.NewsSources.Feeds {
		if strings.TrimSpace(feed.Name) == "" {
			return fmt.Errorf("feed %d: name cannot be empty", i)
		}
		if _, err := url.ParseRequestURI(feed.URL); err != nil {
			return fmt.Errorf("feed %q: invalid url %q", feed.Name, feed.URL)
		}
	}
	if cfg.NewsSources.MaxArticlesPerSource < 0 || cfg.NewsSources.HoursLookback < 0 || cfg.NewsSources.MinArticleLength < 0 {
		return fmt.Errorf("news source limits must be >= 0")
	}

	if _, err := schedule.NewPlan([]string{cfg.Workflow.DailyRunTime}, cfg.Workflow.Timezone); err != nil {
		return fmt.Errorf("daily run time: %w", err)
	}
	if len(cfg.Workflow.SocialMediaPostTimes) > 0 {
		if _, err := schedule.NewPlan(cfg.Workflow.SocialMediaPostTimes, cfg.Workflow.Timezone); err != nil {
			return fmt.Errorf("social media post times: %w", err)
		}
	}
	if cfg.Workflow.BreakingNewsCheckInterval <= 0 {
		return fmt.Errorf("breaking news check interval must be positive")
	}
	if cfg.Workflow.MaxProcessingTime <= 0 {
		return fmt.Errorf("max processing time must be positive")
	}
	if cfg.Workflow.MinImportanceScore < 0 || cfg.Workflow.MinImportanceScore > 1 {
		return fmt.Errorf("min importance score must be between 0 and 1, got %v", cfg.Workflow.MinImportanceScore)
	}
	if cfg.Workflow.MinArticlesForDailyNews < 0 ||
		cfg.Workflow.DailyNewsArticleLimit < 0 ||
		cfg.Workflow.BreakingNewsArticleLimit < 0 ||
		cfg.Workflow.SocialMediaPostsPerDay < 0 {
		return fmt.Errorf("workflow limits must be >= 0")
	}

	if cfg.Server.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.Server.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	return nil
}
