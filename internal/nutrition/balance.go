package nutrition

import (
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

// Target is the recommended range of a nutrition dimension for one lunch
type Target struct {
	Min float64
	Max float64
}

// Lunch targets. Protein and carbs in grams, vegetables and fruits in servings.
var (
	ProteinTarget    = Target{Min: 15, Max: 30}
	CarbsTarget      = Target{Min: 30, Max: 60}
	VegetablesTarget = Target{Min: 1, Max: 3}
	FruitsTarget     = Target{Min: 1, Max: 2}
)

const (
	lowFactor  = 0.7
	highFactor = 1.3
)

// Aggregate sums the nutrition of every item whose ingredient is in the pantry.
// Items that reference unknown ingredients are skipped.
func Aggregate(pantry []domain.Ingredient, items []domain.LunchBoxIngredient) domain.Totals {
	byID := make(map[string]*domain.Ingredient, len(pantry))
	for i := range pantry {
		byID[pantry[i].ID] = &pantry[i]
	}

	var totals domain.Totals
	for _, item := range items {
		ingredient, ok := byID[item.IngredientID]
		if !ok {
			continue
		}

		q := float64(item.Quantity)
		info := ingredient.NutritionInfo
		totals.Calories += info.Calories * q
		totals.Protein += info.Protein * q
		totals.Carbs += info.Carbs * q
		totals.Fat += info.Fat * q
		totals.Fiber += info.Fiber * q
		totals.Sugar += info.Sugar * q
		totals.Sodium += info.Sodium * q

		switch ingredient.Category {
		case domain.CategoryVegetable:
			totals.Vegetables += item.Quantity
		case domain.CategoryFruit:
			totals.Fruits += item.Quantity
		case domain.CategoryProtein, domain.CategoryGrain, domain.CategoryDairy,
			domain.CategorySnack, domain.CategoryDrink, domain.CategoryCondiment:
		}
	}

	return totals
}

// Classify buckets v against the target range. Both bounds are strict.
func Classify(v float64, target Target) domain.Level {
	if v < target.Min*lowFactor {
		return domain.LevelLow
	}
	if v > target.Max*highFactor {
		return domain.LevelHigh
	}
	return domain.LevelGood
}

// Overall derives the lunch box score from the four dimension levels
func Overall(levels ...domain.Level) domain.Score {
	var good, low, high int
	for _, l := range levels {
		switch l {
		case domain.LevelGood:
			good++
		case domain.LevelLow:
			low++
		case domain.LevelHigh:
			high++
		}
	}

	switch {
	case good >= 3:
		return domain.ScoreExcellent
	case good >= 2:
		return domain.ScoreGood
	case low <= 1 && high <= 1:
		return domain.ScoreFair
	default:
		return domain.ScorePoor
	}
}

// BalanceOf classifies already aggregated totals
func BalanceOf(totals domain.Totals) domain.NutritionBalance {
	b := domain.NutritionBalance{
		Protein:    Classify(totals.Protein, ProteinTarget),
		Carbs:      Classify(totals.Carbs, CarbsTarget),
		Vegetables: Classify(float64(totals.Vegetables), VegetablesTarget),
		Fruits:     Classify(float64(totals.Fruits), FruitsTarget),
	}
	b.Overall = Overall(b.Protein, b.Carbs, b.Vegetables, b.Fruits)
	return b
}

// CalculateBalance scores a lunch box against the pantry
func CalculateBalance(pantry []domain.Ingredient, items []domain.LunchBoxIngredient) domain.NutritionBalance {
	return BalanceOf(Aggregate(pantry, items))
}

// Evaluate returns both the totals and the balance
func Evaluate(pantry []domain.Ingredient, items []domain.LunchBoxIngredient) domain.Evaluation {
	totals := Aggregate(pantry, items)
	return domain.Evaluation{
		Totals:  totals,
		Balance: BalanceOf(totals),
	}
}
