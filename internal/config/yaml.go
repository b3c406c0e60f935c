package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlConfig represents the YAML configuration file structure.
// Credentials are intentionally absent: they only come from the environment.
type yamlConfig struct {
	LogLevel    string         `yaml:"log_level"`
	LLM         yamlLLM        `yaml:"llm"`
	NewsSources yamlNewsSource `yaml:"news_sources"`
	Storage     yamlStorage    `yaml:"storage"`
	Workflow    yamlWorkflow   `yaml:"workflow"`
	Server      yamlServer     `yaml:"server"`
}

type yamlLLM struct {
	DefaultModel  string   `yaml:"default_model"`
	ManagerModel  string   `yaml:"manager_model"`
	FallbackModel string   `yaml:"fallback_model"`
	Temperature   *float64 `yaml:"temperature"`
	MaxTokens     *int     `yaml:"max_tokens"`
}

type yamlNewsSource struct {
	Feeds                []Feed   `yaml:"feeds"`
	MaxArticlesPerSource *int     `yaml:"max_articles_per_source"`
	HoursLookback        *int     `yaml:"hours_lookback"`
	MinArticleLength     *int     `yaml:"min_article_length"`
	BlockedKeywords      []string `yaml:"blocked_keywords"`
	RequiredKeywords     []string `yaml:"required_keywords"`
}

type yamlStorage struct {
	BasePath          string `yaml:"base_path"`
	MaxFilesPerFolder *int   `yaml:"max_files_per_folder"`
	AutoCleanupDays   *int   `yaml:"auto_cleanup_days"`
	BackupEnabled     *bool  `yaml:"backup_enabled"`
}

type yamlWorkflow struct {
	DailyRunTime              string   `yaml:"daily_run_time"`
	BreakingNewsCheckInterval string   `yaml:"breaking_news_check_interval"`
	SocialMediaPostTimes      []string `yaml:"social_media_post_times"`
	Timezone                  string   `yaml:"timezone"`
	MinArticlesForDailyNews   *int     `yaml:"min_articles_for_daily_news"`
	MinImportanceScore        *float64 `yaml:"min_importance_score"`
	MaxProcessingTime         string   `yaml:"max_processing_time"`
	DailyNewsArticleLimit     *int     `yaml:"daily_news_article_limit"`
	BreakingNewsArticleLimit  *int     `yaml:"breaking_news_article_limit"`
	SocialMediaPostsPerDay    *int     `yaml:"social_media_posts_per_day"`
}

type yamlServer struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
// Only keys present in the file override defaults.
func applyYAMLConfig(cfg *Config, y *yamlConfig) error {
	if y.LogLevel != "" {
		cfg.LogLevel = y.LogLevel
	}

	setString(&cfg.LLM.DefaultModel, y.LLM.DefaultModel)
	setString(&cfg.LLM.ManagerModel, y.LLM.ManagerModel)
	setString(&cfg.LLM.FallbackModel, y.LLM.FallbackModel)
	setPtr(&cfg.LLM.Temperature, y.LLM.Temperature)
	setPtr(&cfg.LLM.MaxTokens, y.LLM.MaxTokens)

	if y.NewsSources.Feeds != nil {
		cfg.NewsSources.Feeds = y.NewsSources.Feeds
	}
	setPtr(&cfg.NewsSources.MaxArticlesPerSource, y.NewsSources.MaxArticlesPerSource)
	setPtr(&cfg.NewsSources.HoursLookback, y.NewsSources.HoursLookback)
	setPtr(&cfg.NewsSources.MinArticleLength, y.NewsSources.MinArticleLength)
	if y.NewsSources.BlockedKeywords != nil {
		cfg.NewsSources.BlockedKeywords = y.NewsSources.BlockedKeywords
	}
	if y.NewsSources.RequiredKeywords != nil {
		cfg.NewsSources.RequiredKeywords = y.NewsSources.RequiredKeywords
	}

	setString(&cfg.Storage.BasePath, y.Storage.BasePath)
	setPtr(&cfg.Storage.MaxFilesPerFolder, y.Storage.MaxFilesPerFolder)
	setPtr(&cfg.Storage.AutoCleanupDays, y.Storage.AutoCleanupDays)
	setPtr(&cfg.Storage.BackupEnabled, y.Storage.BackupEnabled)

	setString(&cfg.Workflow.DailyRunTime, y.Workflow.DailyRunTime)
	setString(&cfg.Workflow.Timezone, y.Workflow.Timezone)
	if y.Workflow.SocialMediaPostTimes != nil {
		cfg.Workflow.SocialMediaPostTimes = y.Workflow.SocialMediaPostTimes
	}
	setPtr(&cfg.Workflow.MinArticlesForDailyNews, y.Workflow.MinArticlesForDailyNews)
	setPtr(&cfg.Workflow.MinImportanceScore, y.Workflow.MinImportanceScore)
	setPtr(&cfg.Workflow.DailyNewsArticleLimit, y.Workflow.DailyNewsArticleLimit)
	setPtr(&cfg.Workflow.BreakingNewsArticleLimit, y.Workflow.BreakingNewsArticleLimit)
	setPtr(&cfg.Workflow.SocialMediaPostsPerDay, y.Workflow.SocialMediaPostsPerDay)

	setString(&cfg.Server.Port, y.Server.Port)
	setPtr(&cfg.Server.EnableRequestLogging, y.Server.EnableRequestLogging)
	setPtr(&cfg.Server.RateLimitRPS, y.Server.RateLimit.RPS)
	setPtr(&cfg.Server.RateLimitBurst, y.Server.RateLimit.Burst)

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"workflow.breaking_news_check_interval", y.Workflow.BreakingNewsCheckInterval, &cfg.Workflow.BreakingNewsCheckInterval},
		{"workflow.max_processing_time", y.Workflow.MaxProcessingTime, &cfg.Workflow.MaxProcessingTime},
		{"server.shutdown_grace_period", y.Server.ShutdownGracePeriod, &cfg.Server.ShutdownGracePeriod},
		{"server.read_header_timeout", y.Server.ReadHeaderTimeout, &cfg.Server.ReadHeaderTimeout},
		{"server.write_timeout", y.Server.WriteTimeout, &cfg.Server.WriteTimeout},
		{"server.idle_timeout", y.Server.IdleTimeout, &cfg.Server.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setPtr[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
