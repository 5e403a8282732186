package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration for the client and the
// development server
type Config struct {
	// Client Configuration
	Client ClientConfig

	// Development server Configuration
	DevServer DevServerConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ClientConfig holds settings for talking to the backend
type ClientConfig struct {
	APIURL  string        // Overrides the backend selected in rinkside.yaml
	Timeout time.Duration // Upper bound for a single request
}

// DevServerConfig holds settings for the local stand-in backend
type DevServerConfig struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string // Random per process when empty
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

const DefaultTimeout = 30 * time.Second

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	timeout := DefaultTimeout
	if raw := os.Getenv("RINKSIDE_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RINKSIDE_HTTP_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("RINKSIDE_HTTP_TIMEOUT must be positive, got %s", d)
		}
		timeout = d
	}

	addr := os.Getenv("DEVSERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// In-memory by default; the stand-in backend is for development only
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "file::memory:?cache=shared"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		Client: ClientConfig{
			APIURL:  os.Getenv("RINKSIDE_API_URL"),
			Timeout: timeout,
		},
		DevServer: DevServerConfig{
			Addr:        addr,
			DatabaseURL: dbURL,
			JWTSecret:   os.Getenv("JWT_SECRET"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
