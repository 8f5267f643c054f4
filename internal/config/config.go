package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Env  string
	Port int

	// Primary news search (both required for the pipeline to run)
	NaverClientID     string
	NaverClientSecret string

	// Generative analysis (at least one required)
	GeminiAPIKey string
	OpenAIAPIKey string
	GroqAPIKey   string

	// Secondary listing source toggle
	FinanceNewsEnabled bool

	// Admin surface
	AdminToken string

	// Pipeline tuning
	CacheTTLSeconds    int
	SnapshotTTLSeconds int
	EnrichBatchSize    int
	MaxArticles        int

	// Digest email
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	DigestRecipients []string
	DigestCron       string
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               getEnvInt("PORT", 8080),
		NaverClientID:      os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret:  os.Getenv("NAVER_CLIENT_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		FinanceNewsEnabled: getEnvBool("FINANCE_NEWS_ENABLED", true),
		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		CacheTTLSeconds:    getEnvInt("CACHE_TTL_SECONDS", 600),
		SnapshotTTLSeconds: getEnvInt("SNAPSHOT_TTL_SECONDS", 60),
		EnrichBatchSize:    getEnvInt("ENRICH_BATCH_SIZE", 5),
		MaxArticles:        getEnvInt("MAX_ARTICLES", 50),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           os.Getenv("SMTP_FROM"),
		DigestRecipients:   splitList(os.Getenv("DIGEST_RECIPIENTS")),
		DigestCron:         getEnv("DIGEST_CRON", "0 8 * * 1-5"),
	}
}

// Production reports whether the bearer-token check on admin endpoints is
// enforced.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
