package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/lunchlego/internal/bot/handlers"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

// Bot answers household commands in the configured Telegram chat
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
}

// NewAPI authorizes a Telegram client shared by the bot and the notifier
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	logger.Info("Bot authorized", "account", api.Self.UserName)
	return api, nil
}

func NewBot(api *tgbotapi.BotAPI, chatID int64, deps handlers.Dependencies) *Bot {
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, chatID, deps),
	}
}

// Start polls for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handler.Handle(ctx, update); err != nil {
				logger.Error("Error handling update", "error", err)
			}
		}
	}
}
