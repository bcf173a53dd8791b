package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret is the documented fallback when SESSION_SECRET is
// unset. Kept for compatibility with existing deployments; main logs a
// warning when it is in use.
const DefaultSessionSecret = "fallback-secret-change-in-production"

type Config struct {
	Port            string
	Env             string
	CatalogURL      string
	CatalogTimeout  time.Duration
	SessionSecret   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local runs.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		CatalogURL:      getEnv("CATALOG_URL", "https://dummyjson.com"),
		CatalogTimeout:  getDuration("CATALOG_TIMEOUT", 10*time.Second),
		SessionSecret:   strings.TrimSpace(getEnv("SESSION_SECRET", DefaultSessionSecret)),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
