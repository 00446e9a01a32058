package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

// DefaultExpiryWindowDays is used when no window is configured
const DefaultExpiryWindowDays = 3

// ExpirationService splits the pantry into expired and expiring-soon items
type ExpirationService struct {
	ingredients *repository.IngredientRepository
	windowDays  int
}

func NewExpirationService(ingredients *repository.IngredientRepository, windowDays int) *ExpirationService {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	return &ExpirationService{ingredients: ingredients, windowDays: windowDays}
}

// Classify reports whether an expiration date is past or inside the window, by calendar day.
// Expired means strictly before today; expiring soon means today up to today plus windowDays.
func Classify(expires, today time.Time, windowDays int) (expired, soon bool) {
	days := utils.DaysBetween(today, expires)
	if days < 0 {
		return true, false
	}
	return false, days <= windowDays
}

func (s *ExpirationService) Check(ctx context.Context, now time.Time) (*domain.ExpirationReport, error) {
	today := utils.DateOnly(now)
	cutoff := today.AddDate(0, 0, s.windowDays)

	candidates, err := s.ingredients.ListExpiring(ctx, utils.FormatDate(cutoff))
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	report := &domain.ExpirationReport{
		Date:         utils.FormatDate(today),
		Expired:      []domain.Ingredient{},
		ExpiringSoon: []domain.Ingredient{},
	}
	for _, ing := range candidates {
		expired, soon := Classify(*ing.ExpirationDate, today, s.windowDays)
		switch {
		case expired:
			report.Expired = append(report.Expired, ing)
		case soon:
			report.ExpiringSoon = append(report.ExpiringSoon, ing)
		}
	}
	return report, nil
}
