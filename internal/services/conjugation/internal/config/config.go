package config

import (
	"time"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/env"
)

type Config struct {
	AuthSecret string
	Store      storeConfig
	DB         dbConfig
	Http       httpConfig
	Lookup     lookupConfig
	Log        logConfig
}

type storeConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver     string
	SQLitePath string
	Migrations string
}

type dbConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type httpConfig struct {
	ListenAddr      string
	IdleTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type lookupConfig struct {
	DedupPolicy string
	Timeout     time.Duration
}

type logConfig struct {
	Level  string
	Format string
}

// FromEnv loads the full service configuration. It panics when AUTH_SECRET is not set.
func FromEnv() Config {
	cfg := LocalFromEnv()
	cfg.AuthSecret = env.RequireString("AUTH_SECRET")
	return cfg
}

// LocalFromEnv loads everything except the auth secret, for commands that
// work on the store directly and never serve HTTP.
func LocalFromEnv() Config {
	return Config{
		Store: storeConfig{
			Driver:     env.String("STORE_DRIVER", "postgres"),
			SQLitePath: env.String("SQLITE_PATH", "conjugations.db"),
			Migrations: env.String("DB_MIGRATIONS", "db/migrations"),
		},
		DB: dbConfig{
			Host:     env.String("DB_HOST", "localhost"),
			Port:     env.String("DB_PORT", "5432"),
			User:     env.String("DB_USER", "postgres"),
			Password: env.String("DB_PASSWORD", "password"),
			Name:     env.String("DB_NAME", "conjugation_service"),
		},
		Http: httpConfig{
			ListenAddr:      env.String("HTTP_LISTEN_ADDR", ":8080"),
			IdleTimeout:     env.Duration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ReadTimeout:     env.Duration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.Duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: env.Duration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  env.Strings("HTTP_ALLOWED_ORIGINS", []string{"*"}),
		},
		Lookup: lookupConfig{
			DedupPolicy: env.String("LOOKUP_DEDUP_POLICY", "first-wins"),
			Timeout:     env.Duration("LOOKUP_TIMEOUT", 10*time.Second),
		},
		Log: logConfig{
			Level:  env.String("LOG_LEVEL", "info"),
			Format: env.String("LOG_FORMAT", "json"),
		},
	}
}
