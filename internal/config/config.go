package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// Catalog source
	BestBuyAPIKey   string
	CatalogTimeout  time.Duration
	CatalogMinPrice float64
	CatalogRPS      float64
	CatalogBurst    int

	// LLM capability
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Discovery pipeline
	ResultCount  int
	Oversample   int
	CartExpiry   time.Duration
	IntentExpiry time.Duration
	MerchantName string

	// Mandate store
	RedisAddr     string
	RedisPassword string

	// Risk engine
	RiskSigningSecret string

	// Agent trust
	TrustedAgents []string

	// CORS
	CORSAllowAll bool
	CORSOrigins  []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		BestBuyAPIKey:   getEnv("BESTBUY_API_KEY", ""),
		CatalogTimeout:  mustDuration(getEnv("CATALOG_TIMEOUT", "10s")),
		CatalogMinPrice: mustFloat(getEnv("CATALOG_MIN_PRICE", "50")),
		CatalogRPS:      mustFloat(getEnv("CATALOG_RPS", "5")),
		CatalogBurst:    mustInt(getEnv("CATALOG_BURST", "5"), 5),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTimeout: mustDuration(getEnv("GEMINI_TIMEOUT", "10s")),

		ResultCount:  mustInt(getEnv("DISCOVERY_RESULT_COUNT", "3"), 3),
		Oversample:   mustInt(getEnv("DISCOVERY_OVERSAMPLE", "15"), 15),
		CartExpiry:   mustDuration(getEnv("CART_EXPIRY", "30m")),
		IntentExpiry: mustDuration(getEnv("INTENT_EXPIRY", "24h")),
		MerchantName: getEnv("MERCHANT_NAME", "Best Buy"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RiskSigningSecret: getEnv("RISK_SIGNING_SECRET", ""),

		TrustedAgents: splitCSV(getEnv("TRUSTED_SHOPPING_AGENTS", "trusted_shopping_agent")),

		CORSAllowAll: corsAllowAll,
		CORSOrigins:  corsOrigins,
	}

	// The oversample count must leave the relevance filter material to discard.
	if floor := cfg.ResultCount * 3; cfg.Oversample < floor {
		cfg.Oversample = floor
	}

	if cfg.ResultCount < 1 {
		return nil, fmt.Errorf("DISCOVERY_RESULT_COUNT must be at least 1")
	}
	if cfg.CartExpiry <= 0 {
		return nil, fmt.Errorf("CART_EXPIRY must be a positive duration")
	}
	if cfg.IntentExpiry <= 0 {
		return nil, fmt.Errorf("INTENT_EXPIRY must be a positive duration")
	}
	if strings.EqualFold(cfg.Env, "production") && cfg.RiskSigningSecret == "" {
		return nil, fmt.Errorf("RISK_SIGNING_SECRET is required in production")
	}
	if len(cfg.TrustedAgents) == 0 {
		return nil, fmt.Errorf("TRUSTED_SHOPPING_AGENTS must not be empty")
	}

	return cfg, nil
}

// DemoMode reports whether the catalog source is unavailable by configuration,
// in which case search serves only the built-in sample pool.
func (c *Config) DemoMode() bool {
	return c.BestBuyAPIKey == ""
}

// LLMEnabled reports whether the external classification/ranking capability
// is configured. When false every LLM-backed stage uses its local fallback.
func (c *Config) LLMEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string, fallback int) int {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return fallback
	}
	return n
}

func mustFloat(value string) float64 {
	var f float64
	if _, err := fmt.Sscanf(value, "%g", &f); err != nil {
		return 0
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
