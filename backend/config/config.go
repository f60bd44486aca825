// ABOUTME: Configuration loader for backend service
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port               string
	SessionTTL         int      // seconds, how long an idle pricing session survives (default 24h)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// SMTP (optional; document delivery is disabled when unset)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Branding
	LogoPath string // path to letterhead logo, documents render without it when missing
}

// MailConfigured returns true if SMTP credentials are set
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != "" && c.SMTPFrom != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		SessionTTL:         getEnvInt("SESSION_TTL", 86400),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", os.Getenv("SMTP_USERNAME")),

		LogoPath: getEnv("LOGO_PATH", "assets/logo.png"),
	}

	if cfg.SessionTTL < 60 {
		return nil, fmt.Errorf("SESSION_TTL must be at least 60 seconds, got %d", cfg.SessionTTL)
	}
	if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", cfg.SMTPPort)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
