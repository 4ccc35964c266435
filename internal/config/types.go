package config

import "time"

type Config struct {
	// upstream credentials
	XAIKey        string
	OpenRouterKey string

	// model selection (never hardcoded at call sites)
	AnalyzerModel      string
	ReportModel        string
	PremiumImageModel  string
	StandardImageModel string

	// models that benefit from verbose style direction get the
	// style-reinforcement wrapper before image generation
	VerboseModelFamilies []string

	// quota policy
	PremiumDailyLimit int
	UsageWindow       time.Duration

	// total wall-clock budget for one generate call (analysis + synthesis)
	GenerationBudget time.Duration

	// storage backends (both optional, memory fallback)
	RedisURL     string
	PostgresURL  string

	// search-payload cache (off by default)
	SearchCacheEnabled bool
	SearchCacheTTL     time.Duration

	// identity derivation
	IdentitySource string // "hash" or "token"
	IdentitySalt   string
	JWTSecret      string

	// HTTP rate limit, ulule/limiter format (e.g. "30-M")
	RateLimit string

	// OpenRouter attribution headers
	SiteURL   string
	SiteTitle string

	Environment string
}
