package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/lunchlego/internal/api"
	"github.com/vladimiradmaev/lunchlego/internal/bot"
	"github.com/vladimiradmaev/lunchlego/internal/bot/handlers"
	"github.com/vladimiradmaev/lunchlego/internal/config"
	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"github.com/vladimiradmaev/lunchlego/internal/notify"
	"github.com/vladimiradmaev/lunchlego/internal/realtime"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
	"github.com/vladimiradmaev/lunchlego/internal/services"
	"github.com/vladimiradmaev/lunchlego/internal/state"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting LunchLego", "db_driver", cfg.DB.Driver, "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	store := repository.NewStore(db)

	var sessions state.StateManager = state.NewManager()
	if cfg.Redis.Enabled() {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisManager.Close()
		sessions = redisManager
	}

	var estimator domain.NutritionEstimator = services.NoEstimator{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiEstimator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Fatal("Failed to create nutrition estimator", "error", err)
		}
		defer gemini.Close()
		estimator = gemini
	}

	hub := realtime.NewHub(cfg.Server.AllowedOrigins...)
	kidSvc := services.NewKidService(store.Kids)
	pantrySvc := services.NewPantryService(store.Ingredients)
	plannerSvc := services.NewPlannerService(store, hub)
	settingsSvc := services.NewSettingsService(store.Settings)
	expirationSvc := services.NewExpirationService(store.Ingredients, cfg.Alerts.ExpiryWindowDays)
	snapshotSvc := services.NewSnapshotService(store.Snapshots)

	if seeded, err := services.NewSeedService(kidSvc, pantrySvc).SeedIfEmpty(ctx); err != nil {
		logger.Fatal("Failed to seed sample data", "error", err)
	} else if seeded {
		logger.Info("Sample data loaded into an empty database")
	}

	g, gctx := errgroup.WithContext(ctx)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.Telegram.Enabled() {
		tg, err := bot.NewAPI(cfg.Telegram.Token)
		if err != nil {
			logger.Fatal("Failed to create Telegram client", "error", err)
		}
		notifier = notify.NewTelegramNotifierWithAPI(tg, cfg.Telegram.ChatID)

		companion := bot.NewBot(tg, cfg.Telegram.ChatID, handlers.Dependencies{
			Kids:       kidSvc,
			Pantry:     pantrySvc,
			Planner:    plannerSvc,
			Expiration: expirationSvc,
			Settings:   settingsSvc,
		})
		g.Go(func() error {
			if err := companion.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Bot stopped with error", "error", err)
			}
			return nil
		})
	}

	alerts := services.NewAlertService(expirationSvc, settingsSvc, sessions, notifier, hub, cfg.Alerts.CheckInterval)
	g.Go(func() error {
		alerts.Run(gctx)
		return nil
	})

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Services{
		Kids:       kidSvc,
		Pantry:     pantrySvc,
		Planner:    plannerSvc,
		Snapshots:  snapshotSvc,
		Settings:   settingsSvc,
		Expiration: expirationSvc,
		Estimator:  estimator,
		Sessions:   sessions,
		Hub:        hub,
	})
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewHandler(cfg.Server, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Stopped")
}
