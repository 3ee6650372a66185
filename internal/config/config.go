package config

import (
	"os"
	"strings"
)

// Config holds service-level settings. LLM provider configuration lives
// in the llm package.
type Config struct {
	// Port the HTTP server listens on. Default: "8080".
	Port string

	// DatabaseDSN selects the store: a postgres:// URL or a sqlite path.
	// Default: "quizservice.db".
	DatabaseDSN string

	// LogMode is "development" or "production".
	LogMode string

	// AllowOrigins is the CORS allow-list, comma separated in the env.
	AllowOrigins []string
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:        "8080",
		DatabaseDSN: "quizservice.db",
		LogMode:     "development",
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if p := os.Getenv("QUIZSVC_PORT"); p != "" {
		cfg.Port = p
	}
	if d := os.Getenv("QUIZSVC_DB"); d != "" {
		cfg.DatabaseDSN = d
	}
	if m := os.Getenv("LOG_MODE"); m != "" {
		cfg.LogMode = m
	}
	if o := os.Getenv("QUIZSVC_CORS_ORIGINS"); o != "" {
		for _, origin := range strings.Split(o, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}

	return cfg
}
