// Package config reads the storefront settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/lankamart/storefront/search"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

// DSN renders a lib/pq connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.DB)
}

type Config struct {
	HTTPAddr          string
	Driver            Driver
	Postgres          Postgres
	SQLitePath        string
	GeminiAPIKey      string
	GeminiModel       string
	SearchDebounce    time.Duration
	AdminUsername     string
	AdminPassword     string
	TelegramBotToken  string
	TelegramChatID    string
	StrictTransitions bool
	LogLevel          zapcore.Level
}

// Load reads the given .env files (missing files are ignored) and then the
// process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPAddr: get("HTTP_ADDR", ":8484"),
		Driver:   Driver(strings.ToLower(get("STORE_DRIVER", string(DriverSQLite)))),
		Postgres: Postgres{
			Host:     get("POSTGRES_HOST", "localhost"),
			Port:     get("POSTGRES_PORT", "5432"),
			User:     get("POSTGRES_USER", "storefront"),
			Password: get("POSTGRES_PASSWORD", ""),
			DB:       get("POSTGRES_DB", "storefront"),
		},
		SQLitePath:       get("SQLITE_PATH", "storefront.db"),
		GeminiAPIKey:     get("GEMINI_API_KEY", ""),
		GeminiModel:      get("GEMINI_MODEL", search.DefaultModel),
		SearchDebounce:   search.DefaultDelay,
		AdminUsername:    get("ADMIN_USERNAME", "admin"),
		AdminPassword:    get("ADMIN_PASSWORD", "590945"),
		TelegramBotToken: get("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   get("TELEGRAM_CHAT_ID", ""),
	}

	switch cfg.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}

	if v := get("SEARCH_DEBOUNCE", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid SEARCH_DEBOUNCE %q", v)
		}
		cfg.SearchDebounce = d
	}

	if v := get("ORDER_STRICT_TRANSITIONS", ""); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ORDER_STRICT_TRANSITIONS %q: %w", v, err)
		}
		cfg.StrictTransitions = strict
	}

	level, err := zapcore.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// TelegramEnabled reports whether both bot credentials were supplied.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}
