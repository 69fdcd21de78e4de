package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendHTTP     = "http"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Loader  LoaderConfig
	Contact ContactConfig
	App     AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DataConfig struct {
	Backend     string
	SQLitePath  string
	DatabaseURL string
	CRUDBaseURL string
	RedisURL    string
	CacheTTL    time.Duration
	ContentFile string
}

type LoaderConfig struct {
	Timeout time.Duration
}

type ContactConfig struct {
	Email         string
	RatePerMinute int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Data: DataConfig{
			Backend:     strings.ToLower(getEnv("DATA_BACKEND", BackendSQLite)),
			SQLitePath:  getEnv("SQLITE_PATH", "data/portfolio.db"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			CRUDBaseURL: getEnv("CRUD_BASE_URL", ""),
			RedisURL:    getEnv("REDIS_URL", ""),
			CacheTTL:    getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			ContentFile: getEnv("CONTENT_FILE", "content/portfolio.yaml"),
		},
		Loader: LoaderConfig{
			Timeout: getEnvAsDuration("LOADER_TIMEOUT", 10*time.Second),
		},
		Contact: ContactConfig{
			Email:         getEnv("CONTACT_EMAIL", "psubhransubehera@gmail.com"),
			RatePerMinute: getEnvAsInt("CONTACT_RATE_PER_MIN", 10),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Data.Backend {
	case BackendSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.Data.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendHTTP:
		if c.Data.CRUDBaseURL == "" {
			return fmt.Errorf("CRUD_BASE_URL is required for the http backend")
		}
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q", c.Data.Backend)
	}

	if c.Loader.Timeout < 0 {
		return fmt.Errorf("LOADER_TIMEOUT must not be negative")
	}
	if c.Contact.RatePerMinute <= 0 {
		return fmt.Errorf("CONTACT_RATE_PER_MIN must be positive")
	}

	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
