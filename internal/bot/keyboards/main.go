package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data sent by the inline buttons
const (
	ActionKids          = "kids"
	ActionToday         = "today"
	ActionExpiring      = "expiring"
	ActionNotifications = "notifications"
	ActionMainMenu      = "main_menu"
)

// MainMenu creates the main menu keyboard
func MainMenu(notificationsOn bool) tgbotapi.InlineKeyboardMarkup {
	toggle := "🔕 Turn alerts off"
	if !notificationsOn {
		toggle = "🔔 Turn alerts on"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍱 Today's lunches", ActionToday),
			tgbotapi.NewInlineKeyboardButtonData("👧 Kids", ActionKids),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Expiring food", ActionExpiring),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggle, ActionNotifications),
		),
	)
}

// BackMenu has the single button that returns to the main menu
func BackMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
		),
	)
}
