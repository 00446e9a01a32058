package services

import (
	"context"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

// SeedService fills an empty database with sample kids and pantry items
type SeedService struct {
	kids   *KidService
	pantry *PantryService
}

func NewSeedService(kids *KidService, pantry *PantryService) *SeedService {
	return &SeedService{kids: kids, pantry: pantry}
}

// SeedIfEmpty inserts the sample data only when there are neither kids nor
// ingredients. It reports whether anything was inserted.
func (s *SeedService) SeedIfEmpty(ctx context.Context) (bool, error) {
	kids, err := s.kids.ListKids(ctx)
	if err != nil {
		return false, err
	}
	ingredients, err := s.pantry.ListIngredients(ctx)
	if err != nil {
		return false, err
	}
	if len(kids) > 0 || len(ingredients) > 0 {
		return false, nil
	}

	for _, kid := range sampleKids() {
		if _, err := s.kids.CreateKid(ctx, kid); err != nil {
			return false, err
		}
	}
	for _, ing := range sampleIngredients() {
		if _, err := s.pantry.CreateIngredient(ctx, ing); err != nil {
			return false, err
		}
	}

	logger.Info("Sample data inserted", "kids", len(sampleKids()), "ingredients", len(sampleIngredients()))
	return true, nil
}

func sampleKids() []domain.Kid {
	return []domain.Kid{
		{
			Name:        "Emma",
			Age:         7,
			Allergies:   []string{"peanuts"},
			Preferences: []string{"apples", "cheese", "pasta"},
			Dislikes:    []string{"broccoli"},
			Avatar:      "👧",
		},
		{
			Name:        "Liam",
			Age:         10,
			Allergies:   []string{},
			Preferences: []string{"chicken", "carrots"},
			Dislikes:    []string{"tomatoes"},
			Avatar:      "👦",
		},
	}
}

func sampleIngredients() []domain.Ingredient {
	return []domain.Ingredient{
		{
			Name: "Grilled Chicken", Category: domain.CategoryProtein,
			NutritionInfo: domain.NutritionInfo{Calories: 165, Protein: 31, Fat: 3.6, Sodium: 74, Vitamins: []string{"B6", "B12"}},
			Quantity:      4, Unit: "serving", Tags: []string{"lean", "grilled"}, Color: "#f59e0b",
		},
		{
			Name: "Hard Boiled Egg", Category: domain.CategoryProtein,
			NutritionInfo: domain.NutritionInfo{Calories: 78, Protein: 6.3, Carbs: 0.6, Fat: 5.3, Sugar: 0.6, Sodium: 62, Vitamins: []string{"B12", "D"}},
			Quantity:      6, Unit: "piece", Tags: []string{"quick"}, Color: "#fde68a",
		},
		{
			Name: "Whole Wheat Bread", Category: domain.CategoryGrain,
			NutritionInfo: domain.NutritionInfo{Calories: 80, Protein: 4, Carbs: 14, Fat: 1, Fiber: 2, Sugar: 1.4, Sodium: 146, Vitamins: []string{"B1"}},
			Quantity:      10, Unit: "slice", Tags: []string{"whole grain", "sandwich"}, Color: "#d97706",
		},
		{
			Name: "Pasta", Category: domain.CategoryGrain,
			NutritionInfo: domain.NutritionInfo{Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1, Fiber: 1.8, Sugar: 0.6, Sodium: 1},
			Quantity:      3, Unit: "cup", Tags: []string{"favorite"}, Color: "#fcd34d",
		},
		{
			Name: "Carrot Sticks", Category: domain.CategoryVegetable,
			NutritionInfo: domain.NutritionInfo{Calories: 25, Protein: 0.6, Carbs: 6, Fat: 0.1, Fiber: 1.7, Sugar: 2.9, Sodium: 42, Vitamins: []string{"A", "K"}},
			Quantity:      5, Unit: "serving", Tags: []string{"crunchy", "raw"}, Color: "#f97316",
		},
		{
			Name: "Cucumber Slices", Category: domain.CategoryVegetable,
			NutritionInfo: domain.NutritionInfo{Calories: 8, Protein: 0.3, Carbs: 1.9, Fiber: 0.3, Sugar: 0.9, Sodium: 1, Vitamins: []string{"K"}},
			Quantity:      2, Unit: "serving", Tags: []string{"crunchy", "fresh"}, Color: "#22c55e",
		},
		{
			Name: "Apple Slices", Category: domain.CategoryFruit,
			NutritionInfo: domain.NutritionInfo{Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Fiber: 2.4, Sugar: 10, Sodium: 1, Vitamins: []string{"C"}},
			Quantity:      6, Unit: "serving", Tags: []string{"sweet", "crunchy"}, Color: "#ef4444",
		},
		{
			Name: "Grapes", Category: domain.CategoryFruit,
			NutritionInfo: domain.NutritionInfo{Calories: 62, Protein: 0.6, Carbs: 16, Fat: 0.3, Fiber: 0.8, Sugar: 15, Sodium: 2, Vitamins: []string{"C", "K"}},
			Quantity:      2, Unit: "cup", Tags: []string{"sweet"}, Color: "#8b5cf6",
		},
		{
			Name: "Cheese Cubes", Category: domain.CategoryDairy,
			NutritionInfo: domain.NutritionInfo{Calories: 113, Protein: 7, Carbs: 0.4, Fat: 9, Sodium: 174, Vitamins: []string{"A", "B12"}},
			Quantity:      8, Unit: "serving", Tags: []string{"calcium"}, Color: "#facc15",
		},
		{
			Name: "Yogurt", Category: domain.CategoryDairy,
			NutritionInfo: domain.NutritionInfo{Calories: 100, Protein: 10, Carbs: 6, Fat: 0.7, Sugar: 6, Sodium: 56, Vitamins: []string{"B12"}},
			Quantity:      4, Unit: "cup", Tags: []string{"probiotic"}, Color: "#e0f2fe",
		},
		{
			Name: "Pretzels", Category: domain.CategorySnack,
			NutritionInfo: domain.NutritionInfo{Calories: 108, Protein: 2.9, Carbs: 23, Fat: 0.8, Fiber: 0.9, Sugar: 0.8, Sodium: 385},
			Quantity:      1, Unit: "bag", Tags: []string{"salty", "crunchy"}, Color: "#b45309",
		},
		{
			Name: "Water Bottle", Category: domain.CategoryDrink,
			NutritionInfo: domain.NutritionInfo{},
			Quantity:      12, Unit: "bottle", Tags: []string{"hydration"}, Color: "#38bdf8",
		},
		{
			Name: "Hummus", Category: domain.CategoryCondiment,
			NutritionInfo: domain.NutritionInfo{Calories: 70, Protein: 2, Carbs: 4, Fat: 5, Fiber: 1.6, Sodium: 130, Vitamins: []string{"B6"}},
			Quantity:      1, Unit: "tub", Tags: []string{"dip"}, Color: "#fef3c7",
		},
	}
}
