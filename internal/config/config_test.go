package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "DB_DRIVER", "DB_PATH", "DB_HOST", "DB_NAME",
		"REDIS_HOST", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "GEMINI_API_KEY",
		"EXPIRY_WINDOW_DAYS", "ALERT_CHECK_INTERVAL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "data/lunchlego.db", cfg.DB.Path)
	assert.Equal(t, 3, cfg.Alerts.ExpiryWindowDays)
	assert.Equal(t, time.Hour, cfg.Alerts.CheckInterval)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Telegram.Enabled())
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, capacitor://localhost")
	t.Setenv("EXPIRY_WINDOW_DAYS", "5")
	t.Setenv("ALERT_CHECK_INTERVAL", "15m")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LOG_LEVEL", "warning")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, []string{"http://localhost:5173", "capacitor://localhost"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5, cfg.Alerts.ExpiryWindowDays)
	assert.Equal(t, 15*time.Minute, cfg.Alerts.CheckInterval)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(-100200), cfg.Telegram.ChatID)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, logger.LevelWarn, cfg.Logger.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"window not a number", "EXPIRY_WINDOW_DAYS", "three"},
		{"negative window", "EXPIRY_WINDOW_DAYS", "-1"},
		{"bad interval", "ALERT_CHECK_INTERVAL", "hourly"},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"bad chat id", "TELEGRAM_CHAT_ID", "family"},
		{"token without chat", "TELEGRAM_BOT_TOKEN", "123:abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
