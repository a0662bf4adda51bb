package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Auth        AuthConfig
	Snapshot    SnapshotConfig
	Sync        SyncConfig
	Quotes      QuotesConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	// Token is a previously issued bearer token. When empty, Email and
	// Password are used to log in at startup.
	Token    string
	Email    string
	Password string
}

type SnapshotConfig struct {
	Enabled bool
	Path    string
	Bucket  string
}

type SyncConfig struct {
	Interval        time.Duration
	MonitorInterval time.Duration
}

type QuotesConfig struct {
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can start in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "tasksure-client"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL: getString("API_BASE_URL", "http://localhost:8000"),
			Timeout: getDuration("API_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			Token:    os.Getenv("API_TOKEN"),
			Email:    os.Getenv("API_EMAIL"),
			Password: os.Getenv("API_PASSWORD"),
		},
		Snapshot: SnapshotConfig{
			Enabled: getBool("SNAPSHOT_ENABLED", true),
			Path:    getString("SNAPSHOT_PATH", "./data/snapshot.db"),
			Bucket:  getString("SNAPSHOT_BUCKET", "snapshot"),
		},
		Sync: SyncConfig{
			Interval:        getDuration("SYNC_INTERVAL", 60*time.Second),
			MonitorInterval: getDuration("MONITOR_INTERVAL", 10*time.Second),
		},
		Quotes: QuotesConfig{
			Interval: getDuration("QUOTE_INTERVAL", 4*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
