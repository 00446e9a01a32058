package menus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

func TestFormatLunches(t *testing.T) {
	pantry := []domain.Ingredient{
		{ID: "i1", Name: "Turkey Wrap"},
		{ID: "i2", Name: "Carrots"},
	}
	box := &domain.LunchBox{
		Ingredients: []domain.LunchBoxIngredient{
			{IngredientID: "i2", Quantity: 1, Compartment: 2},
			{IngredientID: "i1", Quantity: 1, Compartment: 1},
			{IngredientID: "gone", Quantity: 3, Compartment: 3},
			{IngredientID: "i2", Quantity: 2, Compartment: 4},
		},
		NutritionBalance: domain.NutritionBalance{
			Protein: domain.LevelGood, Carbs: domain.LevelLow,
			Vegetables: domain.LevelGood, Fruits: domain.LevelLow,
			Overall: domain.ScoreGood,
		},
	}

	text := FormatLunches(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), []KidLunch{
		{Kid: domain.Kid{Name: "Emma"}, Box: box},
		{Kid: domain.Kid{Name: "Liam"}, Box: &domain.LunchBox{}},
	}, pantry)

	assert.Equal(t, "🍱 Lunches for Mon, May 6\n"+
		"\nEmma: Carrots ×3, Turkey Wrap"+
		"\n   Balance: good (protein good, carbs low, veggies good, fruit low)\n"+
		"\nLiam: nothing packed yet\n", text)
}

func TestFormatEmpty(t *testing.T) {
	assert.Contains(t, FormatKids(nil), "No kids yet")
	assert.Contains(t, FormatLunches(time.Now(), nil, nil), "No kids yet")
}

func TestFormatKids(t *testing.T) {
	text := FormatKids([]domain.Kid{
		{Name: "Emma", Age: 8, Allergies: []string{"nuts", "eggs"}},
		{Name: "Liam", Age: 6},
	})
	assert.Equal(t, "👧 Kids (2)\n\n• Emma, 8 (allergies: nuts, eggs)\n• Liam, 6\n", text)
}
