package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             Sender
	chatID          int64
	commandHandler  *CommandHandler
	callbackHandler *CallbackHandler
}

// NewUpdateHandler creates a new update handler. Only chatID is served.
func NewUpdateHandler(api Sender, chatID int64, deps Dependencies) *UpdateHandler {
	commands := NewCommandHandler(api, deps)
	return &UpdateHandler{
		api:             api,
		chatID:          chatID,
		commandHandler:  commands,
		callbackHandler: NewCallbackHandler(api, commands),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	chat := update.FromChat()
	if chat == nil {
		return nil
	}
	if chat.ID != h.chatID {
		logger.Warn("Ignoring update from unknown chat", "chat_id", chat.ID)
		return nil
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	if update.Message != nil {
		if update.Message.IsCommand() {
			return h.commandHandler.Handle(ctx, update.Message)
		}
		_, err := h.api.Send(tgbotapi.NewMessage(chat.ID, "Please use the menu or /help."))
		return err
	}

	return nil
}
