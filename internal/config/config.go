package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	Redis        RedisConfig
	Telegram     TelegramConfig
	GeminiAPIKey string
	Alerts       AlertsConfig
	Logger       LoggerConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DBConfig struct {
	Driver   string
	Path     string // sqlite file, ":memory:" for an in-process database
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host string
	Port string
}

// Enabled reports whether a Redis server is configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether expiration alerts can be sent to Telegram
func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

type AlertsConfig struct {
	ExpiryWindowDays int
	CheckInterval    time.Duration
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	windowDays, err := getIntOrDefault("EXPIRY_WINDOW_DAYS", 3)
	if err != nil {
		return nil, err
	}
	interval, err := getDurationOrDefault("ALERT_CHECK_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	var chatID int64
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
			Path:     getEnvOrDefault("DB_PATH", "data/lunchlego.db"),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "lunchlego"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID: chatID,
		},
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Alerts: AlertsConfig{
			ExpiryWindowDays: windowDays,
			CheckInterval:    interval,
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that parse but make no sense
func (c *Config) Validate() error {
	var problems []string

	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			problems = append(problems, "DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.DBName == "" {
			problems = append(problems, "DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown DB_DRIVER %q", c.DB.Driver))
	}
	if c.Alerts.ExpiryWindowDays < 0 {
		problems = append(problems, "EXPIRY_WINDOW_DAYS must not be negative")
	}
	if c.Alerts.CheckInterval <= 0 {
		problems = append(problems, "ALERT_CHECK_INTERVAL must be positive")
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		problems = append(problems, "TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
