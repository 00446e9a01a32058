package repository

import (
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func kidToRecord(k *domain.Kid) database.Kid {
	return database.Kid{
		ID:          k.ID,
		Name:        k.Name,
		Age:         k.Age,
		Allergies:   nonNil(k.Allergies),
		Preferences: nonNil(k.Preferences),
		Dislikes:    nonNil(k.Dislikes),
		Avatar:      k.Avatar,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}

func kidFromRecord(r *database.Kid) domain.Kid {
	return domain.Kid{
		ID:          r.ID,
		Name:        r.Name,
		Age:         r.Age,
		Allergies:   nonNil(r.Allergies),
		Preferences: nonNil(r.Preferences),
		Dislikes:    nonNil(r.Dislikes),
		Avatar:      r.Avatar,
		CreatedAt:   utc(r.CreatedAt),
		UpdatedAt:   utc(r.UpdatedAt),
	}
}

func ingredientToRecord(i *domain.Ingredient) database.Ingredient {
	n := i.NutritionInfo
	return database.Ingredient{
		ID:             i.ID,
		Name:           i.Name,
		Category:       string(i.Category),
		Calories:       n.Calories,
		Protein:        n.Protein,
		Carbs:          n.Carbs,
		Fat:            n.Fat,
		Fiber:          n.Fiber,
		Sugar:          n.Sugar,
		Sodium:         n.Sodium,
		Vitamins:       nonNil(n.Vitamins),
		ExpirationDate: i.ExpirationDate,
		Quantity:       i.Quantity,
		Unit:           i.Unit,
		Tags:           nonNil(i.Tags),
		Color:          i.Color,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func ingredientFromRecord(r *database.Ingredient) domain.Ingredient {
	var expires *time.Time
	if r.ExpirationDate != nil {
		t := r.ExpirationDate.UTC()
		expires = &t
	}
	return domain.Ingredient{
		ID:       r.ID,
		Name:     r.Name,
		Category: domain.Category(r.Category),
		NutritionInfo: domain.NutritionInfo{
			Calories: r.Calories,
			Protein:  r.Protein,
			Carbs:    r.Carbs,
			Fat:      r.Fat,
			Fiber:    r.Fiber,
			Sugar:    r.Sugar,
			Sodium:   r.Sodium,
			Vitamins: nonNil(r.Vitamins),
		},
		ExpirationDate: expires,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		Tags:           nonNil(r.Tags),
		Color:          r.Color,
		CreatedAt:      utc(r.CreatedAt),
		UpdatedAt:      utc(r.UpdatedAt),
	}
}

func lunchBoxToRecord(lb *domain.LunchBox) database.LunchBox {
	items := make([]database.LunchBoxItem, 0, len(lb.Ingredients))
	for i, item := range lb.Ingredients {
		items = append(items, database.LunchBoxItem{
			LunchBoxID:   lb.ID,
			Position:     i,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			Compartment:  item.Compartment,
		})
	}

	b := lb.NutritionBalance
	return database.LunchBox{
		ID:        lb.ID,
		KidID:     lb.KidID,
		LunchDate: utils.FormatDate(lb.Date),
		Notes:     lb.Notes,
		Balance: database.Balance{
			Protein:    string(b.Protein),
			Carbs:      string(b.Carbs),
			Vegetables: string(b.Vegetables),
			Fruits:     string(b.Fruits),
			Overall:    string(b.Overall),
		},
		Items:     items,
		CreatedAt: lb.CreatedAt,
		UpdatedAt: lb.UpdatedAt,
	}
}

func lunchBoxFromRecord(r *database.LunchBox) (domain.LunchBox, error) {
	date, err := utils.ParseDate(r.LunchDate)
	if err != nil {
		return domain.LunchBox{}, err
	}

	items := make([]domain.LunchBoxIngredient, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.LunchBoxIngredient{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			Compartment:  item.Compartment,
		})
	}

	return domain.LunchBox{
		ID:          r.ID,
		KidID:       r.KidID,
		Date:        date,
		Ingredients: items,
		Notes:       r.Notes,
		NutritionBalance: domain.NutritionBalance{
			Protein:    domain.Level(r.Balance.Protein),
			Carbs:      domain.Level(r.Balance.Carbs),
			Vegetables: domain.Level(r.Balance.Vegetables),
			Fruits:     domain.Level(r.Balance.Fruits),
			Overall:    domain.Score(r.Balance.Overall),
		},
		CreatedAt: utc(r.CreatedAt),
		UpdatedAt: utc(r.UpdatedAt),
	}, nil
}
