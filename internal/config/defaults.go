package config

import "time"

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
	defaultStorageBase    = "storage"
)

// DefaultFeeds returns a copy of the seed feed list used when none is configured.
func DefaultFeeds() []Feed {
	return []Feed{
		{Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml", Category: "general", Priority: "high", Country: "international"},
		{Name: "CNN International", URL: "http://rss.cnn.com/rss/edition.rss", Category: "general", Priority: "high", Country: "international"},
		{Name: "Reuters Top News", URL: "https://feeds.reuters.com/reuters/topNews", Category: "general", Priority: "high", Country: "international"},
		{Name: "Times of India", URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms", Category: "general", Priority: "high", Country: "india"},
		{Name: "The Hindu", URL: "https://www.thehindu.com/news/national/feeder/default.rss", Category: "general", Priority: "medium", Country: "india"},
		{Name: "TechCrunch", URL: "https://feeds.feedburner.com/TechCrunch/", Category: "technology", Priority: "medium", Country: "international"},
		{Name: "Economic Times", URL: "https://economictimes.indiatimes.com/rssfeedsdefault.cms", Category: "business", Priority: "medium", Country: "india"},
	}
}

// defaultConfig returns a Config with default values and no credentials.
func defaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			DefaultModel:  "llama3-8b-8192",
			ManagerModel:  "gpt-4-turbo-preview",
			FallbackModel: "llama3",
			Temperature:   0.1,
			MaxTokens:     4096,
		},
		NewsSources: NewsSourceConfig{
			Feeds:                DefaultFeeds(),
			MaxArticlesPerSource: 15,
			HoursLookback:        24,
			MinArticleLength:     100,
			BlockedKeywords:      []string{"adult content", "explicit", "nsfw"},
			RequiredKeywords:     []string{},
		},
		Storage: StorageConfig{
			BasePath:          defaultStorageBase,
			MaxFilesPerFolder: 1000,
			AutoCleanupDays:   30,
			BackupEnabled:     true,
		},
		Workflow: WorkflowConfig{
			DailyRunTime:              "08:00",
			BreakingNewsCheckInterval: 30 * time.Minute,
			SocialMediaPostTimes:      []string{"09:00", "13:00", "17:00", "21:00"},
			Timezone:                  "UTC",
			MinArticlesForDailyNews:   10,
			MinImportanceScore:        0.6,
			MaxProcessingTime:         30 * time.Minute,
			DailyNewsArticleLimit:     50,
			BreakingNewsArticleLimit:  10,
			SocialMediaPostsPerDay:    10,
		},
		Server: ServerConfig{
			Port:                 defaultPort,
			ShutdownGracePeriod:  10 * time.Second,
			ReadHeaderTimeout:    5 * time.Second,
			WriteTimeout:         15 * time.Second,
			IdleTimeout:          60 * time.Second,
			EnableRequestLogging: true,
			RateLimitRPS:         defaultRateLimitRPS,
			RateLimitBurst:       defaultRateLimitBurst,
		},
		LogLevel: defaultLogLevel,
	}
}

// Default returns the built-in configuration without consulting any source.
func Default() Config {
	return defaultConfig()
}
