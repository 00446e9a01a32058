package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

// Sender is the part of the Telegram client the handlers use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Kids       domain.KidService
	Pantry     domain.PantryService
	Planner    domain.PlannerService
	Expiration domain.ExpirationService
	Settings   domain.SettingsService
}
