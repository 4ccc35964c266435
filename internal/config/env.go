package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAnalyzerModel = "grok-4-1-fast" // pinned: required for X search functionality
	defaultReportModel   = "grok-3-latest"

	defaultPremiumImageModel  = "google/gemini-2.5-flash-image"
	defaultStandardImageModel = "google/gemini-2.5-flash-image:free"

	defaultPremiumDailyLimit = 2
	defaultUsageWindow       = 24 * time.Hour
	defaultGenerationBudget  = 45 * time.Second
	defaultSearchCacheTTL    = 24 * time.Hour
	defaultRateLimit         = "30-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	xaiKey := os.Getenv("XAI_API_KEY")
	openrouterKey := os.Getenv("OPENROUTER_API_KEY")

	if xaiKey == "" {
		return nil, fmt.Errorf("XAI_API_KEY environment variable is required")
	}

	if openrouterKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
	}

	cfg := &Config{
		XAIKey:        xaiKey,
		OpenRouterKey: openrouterKey,

		AnalyzerModel:      getEnv("ANALYZER_MODEL", defaultAnalyzerModel),
		ReportModel:        getEnv("REPORT_MODEL", defaultReportModel),
		PremiumImageModel:  getEnv("PREMIUM_IMAGE_MODEL", defaultPremiumImageModel),
		StandardImageModel: getEnv("STANDARD_IMAGE_MODEL", defaultStandardImageModel),

		VerboseModelFamilies: splitList(getEnv("VERBOSE_MODEL_FAMILIES", "gemini")),

		PremiumDailyLimit: getEnvInt("PREMIUM_DAILY_LIMIT", defaultPremiumDailyLimit),
		UsageWindow:       getEnvDuration("USAGE_WINDOW", defaultUsageWindow),
		GenerationBudget:  getEnvDuration("GENERATION_BUDGET", defaultGenerationBudget),

		RedisURL:    os.Getenv("REDIS_URL"),
		PostgresURL: os.Getenv("DATABASE_URL"),

		SearchCacheEnabled: getEnvBool("SEARCH_CACHE_ENABLED", false),
		SearchCacheTTL:     getEnvDuration("SEARCH_CACHE_TTL", defaultSearchCacheTTL),

		IdentitySource: getEnv("IDENTITY_SOURCE", "hash"),
		IdentitySalt:   getEnv("IDENTITY_SALT", "handleart"),
		JWTSecret:      os.Getenv("JWT_SECRET"),

		RateLimit: getEnv("RATE_LIMIT", defaultRateLimit),

		SiteURL:   getEnv("SITE_URL", "https://handleart.dev"),
		SiteTitle: getEnv("SITE_TITLE", "Handle Art Generator"),

		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.IdentitySource == "token" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required when IDENTITY_SOURCE=token")
	}

	if cfg.PremiumDailyLimit < 0 {
		return nil, fmt.Errorf("PREMIUM_DAILY_LIMIT must be non-negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if str := os.Getenv(key); str != "" {
		if val, err := strconv.Atoi(str); err == nil {
			return val
		}
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if str := os.Getenv(key); str != "" {
		if val, err := strconv.ParseBool(str); err == nil {
			return val
		}
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if str := os.Getenv(key); str != "" {
		if val, err := time.ParseDuration(str); err == nil {
			return val
		}
	}

	return fallback
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
