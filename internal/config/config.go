package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the pipeline reads from the environment. A missing
// provider credential is not an error: it just disables that adapter.
type Config struct {
	// Provider credentials
	TavilyAPIKey   string
	GuardianAPIKey string
	NewsDataAPIKey string

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// Pipeline settings
	OutputDir    string
	DBPath       string
	SourcesPath  string
	MaxResults   int
	FetchTimeout time.Duration // per-adapter budget within a run

	// Scraper settings
	EnrichContent     bool
	ScrapeMaxArticles int

	// App settings
	Debug bool
	Port  string
}

func Load() (*Config, error) {
	cfg := &Config{
		GeminiModel:       "gemini-1.5-flash",
		OutputDir:         "News",
		DBPath:            "newsflow.db",
		SourcesPath:       "configs/sources.yaml",
		MaxResults:        40,
		FetchTimeout:      8 * time.Second,
		ScrapeMaxArticles: 5,
		Port:              "8080",
	}

	cfg.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	cfg.GuardianAPIKey = os.Getenv("GUARDIAN_API_KEY")
	cfg.NewsDataAPIKey = os.Getenv("NEWS_DATA_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.DBPath = getEnvOrDefault("DB_PATH", cfg.DBPath)
	cfg.SourcesPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesPath)
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)

	if v := getEnvIntOrDefault("MAX_RESULTS", cfg.MaxResults); v > 0 {
		cfg.MaxResults = v
	}
	if v := getEnvIntOrDefault("FETCH_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.FetchTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("SCRAPE_MAX_ARTICLES", cfg.ScrapeMaxArticles); v > 0 {
		cfg.ScrapeMaxArticles = v
	}

	cfg.EnrichContent = os.Getenv("ENRICH_CONTENT") == "true"
	cfg.Debug = os.Getenv("DEBUG") == "true"

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("MAX_RESULTS must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Sources is the YAML-backed source table: per-category feed URLs for the
// headline feed adapter and a disable list for the others.
//
//	bbc_feeds:
//	  tech: https://feeds.bbci.co.uk/news/technology/rss.xml
//	disabled:
//	  - gdelt
type Sources struct {
	BBCFeeds map[string]string `yaml:"bbc_feeds"`
	Disabled []string          `yaml:"disabled"`
}

// LoadSources reads the source table. A missing file is fine: every adapter
// falls back to its built-in defaults.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sources{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var s Sources
	if err := yaml.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

// SourceDisabled reports whether name is on the disable list.
func (s *Sources) SourceDisabled(name string) bool {
	for _, d := range s.Disabled {
		if d == name {
			return true
		}
	}
	return false
}
