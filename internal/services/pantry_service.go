package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

const (
	// CategoryAll disables the category filter in Search
	CategoryAll = "all"
	defaultUnit = "serving"
)

type PantryService struct {
	ingredients *repository.IngredientRepository
}

func NewPantryService(ingredients *repository.IngredientRepository) *PantryService {
	return &PantryService{ingredients: ingredients}
}

func validateNutrition(n domain.NutritionInfo) error {
	values := []struct {
		name  string
		value float64
	}{
		{"calories", n.Calories},
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"fat", n.Fat},
		{"fiber", n.Fiber},
		{"sugar", n.Sugar},
		{"sodium", n.Sodium},
	}
	for _, v := range values {
		if v.value < 0 {
			return apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", v.name))
		}
	}
	return nil
}

func normalizeIngredient(ing *domain.Ingredient) error {
	ing.Name = strings.TrimSpace(ing.Name)
	if ing.Name == "" {
		return apperrors.NewValidationError("ingredient name is required")
	}
	if !ing.Category.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown category %q", ing.Category))
	}
	if err := validateNutrition(ing.NutritionInfo); err != nil {
		return err
	}
	if ing.Quantity < 0 {
		return apperrors.NewValidationError("quantity must not be negative")
	}

	ing.Unit = strings.TrimSpace(ing.Unit)
	if ing.Unit == "" {
		ing.Unit = defaultUnit
	}
	ing.Tags = cleanList(ing.Tags)
	ing.NutritionInfo.Vitamins = cleanList(ing.NutritionInfo.Vitamins)
	if ing.ExpirationDate != nil {
		d := utils.DateOnly(*ing.ExpirationDate)
		ing.ExpirationDate = &d
	}
	return nil
}

func (s *PantryService) CreateIngredient(ctx context.Context, ing domain.Ingredient) (*domain.Ingredient, error) {
	if err := normalizeIngredient(&ing); err != nil {
		return nil, err
	}

	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}
	ing.CreatedAt = now()
	ing.UpdatedAt = ing.CreatedAt

	if err := s.ingredients.Save(ctx, &ing); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &ing, nil
}

func (s *PantryService) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	ing, err := s.ingredients.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrIngredientNotFound)
	}
	return ing, nil
}

func (s *PantryService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	all, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return all, nil
}

func (s *PantryService) UpdateIngredient(ctx context.Context, ing domain.Ingredient) (*domain.Ingredient, error) {
	existing, err := s.GetIngredient(ctx, ing.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizeIngredient(&ing); err != nil {
		return nil, err
	}

	ing.CreatedAt = existing.CreatedAt
	ing.UpdatedAt = now()

	if err := s.ingredients.Save(ctx, &ing); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &ing, nil
}

// DeleteIngredient removes the pantry item. Lunch boxes still referencing it
// keep the entry, and the evaluator skips it.
func (s *PantryService) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.ingredients.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrIngredientNotFound)
	}
	return nil
}

// Search filters the pantry by a case-insensitive term matched against the
// name and every tag, and by category ("" or "all" match any category).
func (s *PantryService) Search(ctx context.Context, term, category string) ([]domain.Ingredient, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && category != CategoryAll && !domain.Category(category).Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", category))
	}

	all, err := s.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Ingredient, 0, len(all))
	for _, ing := range all {
		if category != "" && category != CategoryAll && string(ing.Category) != category {
			continue
		}
		if term != "" && !matchesTerm(ing, term) {
			continue
		}
		out = append(out, ing)
	}
	return out, nil
}

func matchesTerm(ing domain.Ingredient, term string) bool {
	if strings.Contains(strings.ToLower(ing.Name), term) {
		return true
	}
	for _, tag := range ing.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
