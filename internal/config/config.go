package config

import (
	"os"
	"strings"
)

type Config struct {
	Port          string
	DataDir       string
	JWTSecret     string
	AllowedEmails []string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8081"),
		DataDir:       getEnv("DATA_DIR", "data"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AllowedEmails: splitList(getEnv("ALLOWED_EMAILS", "gerente@croc.com.br")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
