package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/newsdesk/internal/provider"
)

// clearEnv unsets every variable Load reads and restores it after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func strPtr(s string) *string { return &s }

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(defaultConfig(), cfg), "defaults mismatch (-want +got)")

	assert.Equal(t, APIConfig{}, cfg.API)
	assert.Len(t, cfg.NewsSources.Feeds, 7)
	assert.Equal(t, "storage", cfg.Storage.BasePath)
	assert.Equal(t, 30*time.Minute, cfg.Workflow.BreakingNewsCheckInterval)
	assert.Equal(t, []string{"09:00", "13:00", "17:00", "21:00"}, cfg.Workflow.SocialMediaPostTimes)
	assert.Equal(t, 24*time.Hour, cfg.NewsSources.Lookback())
	assert.Equal(t, provider.Gemini, cfg.PreferredProvider())
	assert.Empty(t, cfg.AvailableModels())
	assert.Empty(t, cfg.API.Configured())
}

func TestLoadReadsCredentialsFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")
	t.Setenv("NEWSAPI_KEY", "news")
	t.Setenv("DID_API_KEY", "did")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "gsk-test", cfg.API.GroqAPIKey)
	assert.Equal(t, "sk-test", cfg.API.OpenAIAPIKey)
	assert.True(t, cfg.API.LLMConfigured())
	assert.True(t, cfg.API.NewsAPIAvailable())
	assert.Equal(t, provider.Groq, cfg.PreferredProvider())
	assert.Len(t, cfg.AvailableModels(), 5)
	assert.Equal(t, []string{"OPENAI_API_KEY", "GROQ_API_KEY", "NEWSAPI_KEY", "DID_API_KEY"}, cfg.API.Configured())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BASE_PATH", "/var/lib/newsdesk")
	t.Setenv("WORKFLOW_TIMEZONE", "Asia/Kolkata")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/newsdesk", cfg.Storage.BasePath)
	assert.Equal(t, filepath.Join("/var/lib/newsdesk", "articles"), cfg.Layout().Articles)
	assert.Equal(t, "Asia/Kolkata", cfg.Workflow.Timezone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2.5, cfg.Server.RateLimitRPS)
	assert.Equal(t, defaultRateLimitBurst, cfg.Server.RateLimitBurst, "malformed value keeps default")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, "test.env", "OPENAI_API_KEY=from-file\nNEWSAPI_KEY=file-news\n")
	t.Setenv("NEWSAPI_KEY", "from-process")

	cfg, err := Load(&CLIOverrides{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.API.OpenAIAPIKey)
	assert.Equal(t, "from-process", cfg.API.NewsAPIKey, "process environment wins over env file")
	assert.Equal(t, provider.OpenAI, cfg.PreferredProvider())
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(&CLIOverrides{EnvFile: filepath.Join(t.TempDir(), "absent.env")})
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
log_level: warn
llm:
  manager_model: gpt-4o
  temperature: 0.4
news_sources:
  feeds:
    - name: Example
      url: https://example.com/rss
      category: technology
      priority: low
      country: international
  hours_lookback: 6
  blocked_keywords: []
storage:
  base_path: data
  backup_enabled: false
workflow:
  daily_run_time: "06:30"
  breaking_news_check_interval: 15m
  social_media_post_times: ["10:00"]
server:
  port: "7000"
  enable_request_logging: false
  rate_limit:
    rps: 0
`)

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "gpt-4o", cfg.LLM.ManagerModel)
	assert.Equal(t, "llama3-8b-8192", cfg.LLM.DefaultModel)
	assert.Equal(t, 0.4, cfg.LLM.Temperature)
	assert.Equal(t, []Feed{{
		Name: "Example", URL: "https://example.com/rss",
		Category: "technology", Priority: "low", Country: "international",
	}}, cfg.NewsSources.Feeds)
	assert.Equal(t, 6, cfg.NewsSources.HoursLookback)
	assert.Equal(t, 15, cfg.NewsSources.MaxArticlesPerSource)
	assert.Empty(t, cfg.NewsSources.BlockedKeywords)
	assert.Equal(t, "data", cfg.Storage.BasePath)
	assert.False(t, cfg.Storage.BackupEnabled)
	assert.Equal(t, "06:30", cfg.Workflow.DailyRunTime)
	assert.Equal(t, 15*time.Minute, cfg.Workflow.BreakingNewsCheckInterval)
	assert.Equal(t, []string{"10:00"}, cfg.Workflow.SocialMediaPostTimes)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.False(t, cfg.Server.EnableRequestLogging)
	assert.Equal(t, 0.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, defaultRateLimitBurst, cfg.Server.RateLimitBurst)
}

func TestLoadYAMLEmptyFeedList(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "news_sources:\n  feeds: []\n  blocked_keywords: []\n")

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	require.NoError(t, err)

	assert.NotNil(t, cfg.NewsSources.Feeds)
	assert.Empty(t, cfg.NewsSources.Feeds)
	assert.Empty(t, cfg.NewsSources.BlockedKeywords)
}

func TestLoadYAMLWithoutFeedsKeepsSeedList(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "news_sources:\n  hours_lookback: 12\n")

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, DefaultFeeds(), cfg.NewsSources.Feeds)
	assert.Equal(t, 12*time.Hour, cfg.NewsSources.Lookback())
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "storage:\n  base_path: from-yaml\nserver:\n  port: \"1111\"\n")
	t.Setenv("STORAGE_BASE_PATH", "from-env")
	t.Setenv("PORT", "2222")

	rps := 3.0
	cfg, err := Load(&CLIOverrides{
		ConfigFile:   path,
		StoragePath:  strPtr("from-cli"),
		RateLimitRPS: &rps,
	})
	require.NoError(t, err)

	assert.Equal(t, "from-cli", cfg.Storage.BasePath)
	assert.Equal(t, "2222", cfg.Server.Port)
	assert.Equal(t, 3.0, cfg.Server.RateLimitRPS)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		overrides *CLIOverrides
	}{
		{name: "MalformedYAML", yaml: "llm: [unterminated"},
		{name: "BadDuration", yaml: "workflow:\n  max_processing_time: soon\n"},
		{name: "BadDailyRunTime", yaml: "workflow:\n  daily_run_time: \"25:00\"\n"},
		{name: "BadPostTime", yaml: "workflow:\n  social_media_post_times: [\"noon\"]\n"},
		{name: "BadTimezone", yaml: "workflow:\n  timezone: Nowhere/Special\n"},
		{name: "ImportanceOutOfRange", yaml: "workflow:\n  min_importance_score: 1.5\n"},
		{name: "TemperatureOutOfRange", yaml: "llm:\n  temperature: 3\n"},
		{name: "ZeroMaxTokens", yaml: "llm:\n  max_tokens: 0\n"},
		{name: "FeedWithoutURL", yaml: "news_sources:\n  feeds:\n    - name: Broken\n"},
		{name: "BadLogLevel", yaml: "log_level: loud\n"},
		{name: "NegativeBurst", overrides: &CLIOverrides{RateLimitBurst: func() *int { v := -1; return &v }()}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			overrides := tc.overrides
			if tc.yaml != "" {
				overrides = &CLIOverrides{ConfigFile: writeFile(t, "config.yaml", tc.yaml)}
			}
			_, err := Load(overrides)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestDefaultFeedsReturnsCopy(t *testing.T) {
	feeds := DefaultFeeds()
	require.Len(t, feeds, 7)
	feeds[0].Name = "changed"

	assert.Equal(t, "BBC News", DefaultFeeds()[0].Name)
}
