package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/lunchlego/internal/bot/menus"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"github.com/vladimiradmaev/lunchlego/internal/notify"
)

const helpText = `Available commands:
/start - Show the main menu
/today - Today's lunch boxes
/kids - List kids
/expiring - Expired and expiring pantry items
/alerts on|off - Daily expiration alerts
/help - Show this message`

// CommandHandler handles bot commands
type CommandHandler struct {
	api  Sender
	deps Dependencies
	now  func() time.Time
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api Sender, deps Dependencies) *CommandHandler {
	return &CommandHandler{
		api:  api,
		deps: deps,
		now:  time.Now,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	logger.Info("Handling command", "command", message.Command(), "chat_id", chatID)

	switch message.Command() {
	case "start":
		return h.sendMainMenu(ctx, chatID)
	case "help":
		_, err := h.api.Send(tgbotapi.NewMessage(chatID, helpText))
		return err
	case "today":
		return h.sendToday(ctx, chatID)
	case "kids":
		return h.sendKids(ctx, chatID)
	case "expiring":
		return h.sendExpiring(ctx, chatID)
	case "alerts":
		return h.handleAlerts(ctx, chatID, message.CommandArguments())
	default:
		_, err := h.api.Send(tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see the available commands."))
		return err
	}
}

func (h *CommandHandler) notificationsOn(ctx context.Context) bool {
	on, err := h.deps.Settings.Bool(ctx, domain.SettingNotifications)
	if err != nil {
		logger.Warn("Failed to read notifications setting", "error", err)
	}
	return on
}

func (h *CommandHandler) sendMainMenu(ctx context.Context, chatID int64) error {
	return menus.SendMainMenu(h.api, chatID, h.notificationsOn(ctx))
}

func (h *CommandHandler) sendKids(ctx context.Context, chatID int64) error {
	kids, err := h.deps.Kids.ListKids(ctx)
	if err != nil {
		return err
	}
	return menus.SendText(h.api, chatID, menus.FormatKids(kids))
}

func (h *CommandHandler) sendToday(ctx context.Context, chatID int64) error {
	today := h.now()

	kids, err := h.deps.Kids.ListKids(ctx)
	if err != nil {
		return err
	}
	pantry, err := h.deps.Pantry.ListIngredients(ctx)
	if err != nil {
		return err
	}

	lunches := make([]menus.KidLunch, 0, len(kids))
	for _, kid := range kids {
		box, err := h.deps.Planner.Get(ctx, kid.ID, today)
		if err != nil {
			return err
		}
		lunches = append(lunches, menus.KidLunch{Kid: kid, Box: box})
	}
	return menus.SendText(h.api, chatID, menus.FormatLunches(today, lunches, pantry))
}

func (h *CommandHandler) sendExpiring(ctx context.Context, chatID int64) error {
	report, err := h.deps.Expiration.Check(ctx, h.now())
	if err != nil {
		return err
	}
	if report.Total() == 0 {
		return menus.SendText(h.api, chatID, "✅ Nothing in the pantry is expiring soon.")
	}
	return menus.SendText(h.api, chatID, notify.FormatExpirationMessage(report))
}

func (h *CommandHandler) handleAlerts(ctx context.Context, chatID int64, arg string) error {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on":
		return h.setAlerts(ctx, chatID, true)
	case "off":
		return h.setAlerts(ctx, chatID, false)
	default:
		state := "off"
		if h.notificationsOn(ctx) {
			state = "on"
		}
		_, err := h.api.Send(tgbotapi.NewMessage(chatID, "Expiration alerts are "+state+". Use /alerts on or /alerts off."))
		return err
	}
}

func (h *CommandHandler) setAlerts(ctx context.Context, chatID int64, on bool) error {
	value, _ := json.Marshal(on)
	if err := h.deps.Settings.SetSetting(ctx, domain.SettingNotifications, value); err != nil {
		return err
	}

	text := "🔕 Expiration alerts turned off."
	if on {
		text = "🔔 Expiration alerts turned on. You'll get at most one alert a day."
	}
	return menus.SendText(h.api, chatID, text)
}
