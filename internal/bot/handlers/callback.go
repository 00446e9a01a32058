package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/lunchlego/internal/bot/keyboards"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api      Sender
	commands *CommandHandler
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api Sender, commands *CommandHandler) *CallbackHandler {
	return &CallbackHandler{
		api:      api,
		commands: commands,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.ActionMainMenu:
		return h.commands.sendMainMenu(ctx, chatID)
	case keyboards.ActionToday:
		return h.commands.sendToday(ctx, chatID)
	case keyboards.ActionKids:
		return h.commands.sendKids(ctx, chatID)
	case keyboards.ActionExpiring:
		return h.commands.sendExpiring(ctx, chatID)
	case keyboards.ActionNotifications:
		return h.commands.setAlerts(ctx, chatID, !h.commands.notificationsOn(ctx))
	default:
		logger.Warn("Unknown callback", "data", query.Data)
		return nil
	}
}
