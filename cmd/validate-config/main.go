package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/lunchlego/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - HTTP Port: %s\n", cfg.Server.Port)
	fmt.Printf("  - CORS Origins: %v\n", cfg.Server.AllowedOrigins)
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == config.DriverSQLite {
		fmt.Printf("  - DB Path: %s\n", cfg.DB.Path)
	} else {
		fmt.Printf("  - DB Host: %s:%s\n", cfg.DB.Host, cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - Redis: %s\n", enabled(cfg.Redis.Enabled(), cfg.Redis.Host+":"+cfg.Redis.Port))
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.Telegram.Token))
	fmt.Printf("  - Telegram Chat: %d\n", cfg.Telegram.ChatID)
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.GeminiAPIKey))
	fmt.Printf("  - Expiry Window: %d days\n", cfg.Alerts.ExpiryWindowDays)
	fmt.Printf("  - Alert Interval: %s\n", cfg.Alerts.CheckInterval)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func enabled(on bool, detail string) string {
	if !on {
		return "<disabled, in-memory sessions>"
	}
	return detail
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
