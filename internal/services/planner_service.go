package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"github.com/vladimiradmaev/lunchlego/internal/nutrition"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

var ErrItemNotFound = apperrors.NewNotFoundError("ITEM_NOT_FOUND", "Ingredient is not in that compartment")

// PlannerService builds lunch boxes one drop at a time
type PlannerService struct {
	kids        *repository.KidRepository
	ingredients *repository.IngredientRepository
	boxes       *repository.LunchBoxRepository
	events      Publisher

	// serializes find-or-create so a (kid, date) pair never gets two boxes
	mu sync.Mutex
}

func NewPlannerService(store *repository.Store, events Publisher) *PlannerService {
	return &PlannerService{
		kids:        store.Kids,
		ingredients: store.Ingredients,
		boxes:       store.LunchBoxes,
		events:      events,
	}
}

func validCompartment(c int) error {
	if c < 1 || c > domain.CompartmentCount {
		return apperrors.NewValidationError(fmt.Sprintf("compartment must be between 1 and %d", domain.CompartmentCount))
	}
	return nil
}

// dropInto adds one unit of ingredientID to the compartment, merging with an existing entry
func dropInto(items []domain.LunchBoxIngredient, ingredientID string, compartment int) []domain.LunchBoxIngredient {
	out := make([]domain.LunchBoxIngredient, len(items), len(items)+1)
	copy(out, items)
	for i := range out {
		if out[i].IngredientID == ingredientID && out[i].Compartment == compartment {
			out[i].Quantity++
			return out
		}
	}
	return append(out, domain.LunchBoxIngredient{IngredientID: ingredientID, Quantity: 1, Compartment: compartment})
}

func removeFrom(items []domain.LunchBoxIngredient, ingredientID string, compartment int) ([]domain.LunchBoxIngredient, bool) {
	out := make([]domain.LunchBoxIngredient, 0, len(items))
	found := false
	for _, item := range items {
		if item.IngredientID == ingredientID && item.Compartment == compartment {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

func (s *PlannerService) requireKid(ctx context.Context, kidID string) error {
	if _, err := s.kids.Get(ctx, kidID); err != nil {
		return storeError(err, apperrors.ErrKidNotFound)
	}
	return nil
}

func (s *PlannerService) pantry(ctx context.Context) ([]domain.Ingredient, error) {
	all, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return all, nil
}

func (s *PlannerService) publish(eventType string, lb *domain.LunchBox) {
	if s.events != nil {
		s.events.Broadcast(eventType, lb.KidID, lb)
	}
}

// Get returns the kid's lunch box for the date. When none is stored yet an
// empty unsaved box is returned; it gets an id on the first change.
func (s *PlannerService) Get(ctx context.Context, kidID string, date time.Time) (*domain.LunchBox, error) {
	if err := s.requireKid(ctx, kidID); err != nil {
		return nil, err
	}

	day := utils.DateOnly(date)
	lb, err := s.boxes.FindByKidAndDate(ctx, kidID, utils.FormatDate(day))
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.LunchBox{
			KidID:            kidID,
			Date:             day,
			Ingredients:      []domain.LunchBoxIngredient{},
			NutritionBalance: nutrition.CalculateBalance(nil, nil),
		}, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return lb, nil
}

func (s *PlannerService) List(ctx context.Context) ([]domain.LunchBox, error) {
	boxes, err := s.boxes.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return boxes, nil
}

func (s *PlannerService) ListByKid(ctx context.Context, kidID string) ([]domain.LunchBox, error) {
	boxes, err := s.boxes.ListByKid(ctx, kidID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return boxes, nil
}

func (s *PlannerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lb, err := s.boxes.Get(ctx, id)
	if err != nil {
		return storeError(err, apperrors.ErrLunchBoxNotFound)
	}
	if err := s.boxes.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrLunchBoxNotFound)
	}

	s.publish(EventLunchBoxDeleted, lb)
	return nil
}

// update loads the lunch box for (kidID, date), applies change, recomputes the
// balance and saves. With create set a missing box is started empty.
func (s *PlannerService) update(ctx context.Context, kidID string, date time.Time, create bool, change func(lb *domain.LunchBox) error) (*domain.LunchBox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireKid(ctx, kidID); err != nil {
		return nil, err
	}

	day := utils.DateOnly(date)
	lb, err := s.boxes.FindByKidAndDate(ctx, kidID, utils.FormatDate(day))
	switch {
	case errors.Is(err, repository.ErrNotFound) && create:
		ts := now()
		lb = &domain.LunchBox{
			ID:          uuid.NewString(),
			KidID:       kidID,
			Date:        day,
			Ingredients: []domain.LunchBoxIngredient{},
			CreatedAt:   ts,
		}
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.ErrLunchBoxNotFound
	case err != nil:
		return nil, apperrors.NewDatabaseError(err)
	}

	if err := change(lb); err != nil {
		return nil, err
	}

	pantry, err := s.pantry(ctx)
	if err != nil {
		return nil, err
	}
	lb.NutritionBalance = nutrition.CalculateBalance(pantry, lb.Ingredients)
	lb.UpdatedAt = now()

	if err := s.boxes.Save(ctx, lb); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Debug("Lunch box updated",
		"lunch_box_id", lb.ID,
		"kid_id", kidID,
		"date", utils.FormatDate(day),
		"overall", lb.NutritionBalance.Overall)
	s.publish(EventLunchBoxUpdated, lb)
	return lb, nil
}

// Drop puts one unit of the ingredient into a compartment of the kid's lunch
// box for the date, creating the box when needed.
func (s *PlannerService) Drop(ctx context.Context, kidID string, date time.Time, ingredientID string, compartment int) (*domain.LunchBox, error) {
	if err := validCompartment(compartment); err != nil {
		return nil, err
	}
	if _, err := s.ingredients.Get(ctx, ingredientID); err != nil {
		return nil, storeError(err, apperrors.ErrIngredientNotFound)
	}

	return s.update(ctx, kidID, date, true, func(lb *domain.LunchBox) error {
		lb.Ingredients = dropInto(lb.Ingredients, ingredientID, compartment)
		return nil
	})
}

// Remove takes the ingredient out of the compartment entirely
func (s *PlannerService) Remove(ctx context.Context, kidID string, date time.Time, compartment int, ingredientID string) (*domain.LunchBox, error) {
	if err := validCompartment(compartment); err != nil {
		return nil, err
	}

	return s.update(ctx, kidID, date, false, func(lb *domain.LunchBox) error {
		items, found := removeFrom(lb.Ingredients, ingredientID, compartment)
		if !found {
			return ErrItemNotFound
		}
		lb.Ingredients = items
		return nil
	})
}

func (s *PlannerService) SetQuantity(ctx context.Context, kidID string, date time.Time, compartment int, ingredientID string, quantity int) (*domain.LunchBox, error) {
	if err := validCompartment(compartment); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperrors.NewValidationError("quantity must be at least 1")
	}

	return s.update(ctx, kidID, date, false, func(lb *domain.LunchBox) error {
		for i := range lb.Ingredients {
			item := &lb.Ingredients[i]
			if item.IngredientID == ingredientID && item.Compartment == compartment {
				item.Quantity = quantity
				return nil
			}
		}
		return ErrItemNotFound
	})
}

func (s *PlannerService) SetNotes(ctx context.Context, kidID string, date time.Time, notes string) (*domain.LunchBox, error) {
	return s.update(ctx, kidID, date, true, func(lb *domain.LunchBox) error {
		lb.Notes = notes
		return nil
	})
}

// Evaluate scores a list of items against the current pantry without saving anything
func (s *PlannerService) Evaluate(ctx context.Context, items []domain.LunchBoxIngredient) (*domain.Evaluation, error) {
	pantry, err := s.pantry(ctx)
	if err != nil {
		return nil, err
	}
	ev := nutrition.Evaluate(pantry, items)
	return &ev, nil
}
