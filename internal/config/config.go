// Package config loads the server configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the server configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	// ClientURL is the frontend origin allowed by CORS.
	ClientURL string

	Supabase struct {
		URL    string
		APIKey string
	}
	// DatabaseURL selects the direct Postgres backend when Supabase is not configured.
	DatabaseURL string

	Mail struct {
		APIKey   string
		From     string
		NotifyTo string
	}

	AdminAPIKey        string
	RedisURL           string
	RateLimitPerMinute int
	UploadsDir         string

	Log struct {
		Level string
	}
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", "")
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":" + getEnv("PORT", "5000")
	}
	cfg.ClientURL = getEnv("CLIENT_URL", "http://localhost:5173")

	cfg.Supabase.URL = strings.TrimSpace(os.Getenv("SUPABASE_URL"))
	cfg.Supabase.APIKey = strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.Mail.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Mail.From = getEnv("MAIL_FROM", "Inspec <noreply@inspec.ma>")
	cfg.Mail.NotifyTo = os.Getenv("NOTIFY_EMAIL")

	cfg.AdminAPIKey = os.Getenv("ADMIN_API_KEY")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RateLimitPerMinute = parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "10"), 10)
	cfg.UploadsDir = getEnv("UPLOADS_DIR", "./uploads")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	return cfg
}

// SupabaseConfigured reports whether both Supabase credentials are present.
func (c *Config) SupabaseConfigured() bool {
	return c.Supabase.URL != "" && c.Supabase.APIKey != ""
}

// MailConfigured reports whether submission notifications can be sent.
func (c *Config) MailConfigured() bool {
	return c.Mail.APIKey != "" && c.Mail.NotifyTo != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
