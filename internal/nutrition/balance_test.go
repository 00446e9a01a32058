package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

func ingredient(id string, category domain.Category, protein, carbs float64) domain.Ingredient {
	return domain.Ingredient{
		ID:       id,
		Name:     id,
		Category: category,
		NutritionInfo: domain.NutritionInfo{
			Calories: 100,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      2,
			Fiber:    1,
			Sugar:    3,
			Sodium:   50,
		},
	}
}

func TestCalculateBalanceEmpty(t *testing.T) {
	b := CalculateBalance(nil, nil)

	assert.Equal(t, domain.NutritionBalance{
		Protein:    domain.LevelLow,
		Carbs:      domain.LevelLow,
		Vegetables: domain.LevelLow,
		Fruits:     domain.LevelLow,
		Overall:    domain.ScorePoor,
	}, b)
}

func TestCalculateBalanceAllInRange(t *testing.T) {
	pantry := []domain.Ingredient{
		ingredient("turkey", domain.CategoryProtein, 20, 0),
		ingredient("bread", domain.CategoryGrain, 0, 40),
		ingredient("carrot", domain.CategoryVegetable, 0, 0),
		ingredient("apple", domain.CategoryFruit, 0, 0),
	}
	items := []domain.LunchBoxIngredient{
		{IngredientID: "turkey", Quantity: 1, Compartment: 1},
		{IngredientID: "bread", Quantity: 1, Compartment: 2},
		{IngredientID: "carrot", Quantity: 2, Compartment: 3},
		{IngredientID: "apple", Quantity: 1, Compartment: 4},
	}

	eval := Evaluate(pantry, items)

	assert.Equal(t, 20.0, eval.Totals.Protein)
	assert.Equal(t, 40.0, eval.Totals.Carbs)
	assert.Equal(t, 2, eval.Totals.Vegetables)
	assert.Equal(t, 1, eval.Totals.Fruits)
	assert.Equal(t, 500.0, eval.Totals.Calories)
	assert.Equal(t, 10.0, eval.Totals.Fat)
	assert.Equal(t, 250.0, eval.Totals.Sodium)
	assert.Equal(t, domain.NutritionBalance{
		Protein:    domain.LevelGood,
		Carbs:      domain.LevelGood,
		Vegetables: domain.LevelGood,
		Fruits:     domain.LevelGood,
		Overall:    domain.ScoreExcellent,
	}, eval.Balance)
}

func TestAggregateSkipsUnknownIngredients(t *testing.T) {
	pantry := []domain.Ingredient{ingredient("egg", domain.CategoryProtein, 6, 1)}
	items := []domain.LunchBoxIngredient{
		{IngredientID: "egg", Quantity: 2, Compartment: 1},
		{IngredientID: "deleted", Quantity: 5, Compartment: 1},
	}

	totals := Aggregate(pantry, items)

	assert.Equal(t, 12.0, totals.Protein)
	assert.Equal(t, 2.0, totals.Carbs)
	assert.Equal(t, 200.0, totals.Calories)
	assert.Zero(t, totals.Vegetables)
}

func TestAggregateCountsServingsRegardlessOfOrder(t *testing.T) {
	pantry := []domain.Ingredient{
		ingredient("cucumber", domain.CategoryVegetable, 0, 1),
		ingredient("pepper", domain.CategoryVegetable, 0, 2),
		ingredient("grape", domain.CategoryFruit, 0, 5),
	}
	items := []domain.LunchBoxIngredient{
		{IngredientID: "cucumber", Quantity: 3, Compartment: 1},
		{IngredientID: "grape", Quantity: 2, Compartment: 2},
		{IngredientID: "pepper", Quantity: 1, Compartment: 3},
		{IngredientID: "cucumber", Quantity: 1, Compartment: 4},
	}
	reversed := make([]domain.LunchBoxIngredient, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}

	a := Aggregate(pantry, items)
	b := Aggregate(pantry, reversed)

	assert.Equal(t, 5, a.Vegetables)
	assert.Equal(t, 2, a.Fruits)
	assert.Equal(t, a, b)
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		target Target
		want   domain.Level
	}{
		{"protein at low bound", 10.5, ProteinTarget, domain.LevelGood},
		{"protein under low bound", 10.4, ProteinTarget, domain.LevelLow},
		{"protein at high bound", 39, ProteinTarget, domain.LevelGood},
		{"protein over high bound", 39.1, ProteinTarget, domain.LevelHigh},
		{"carbs zero", 0, CarbsTarget, domain.LevelLow},
		{"fruits three", 3, FruitsTarget, domain.LevelHigh},
		{"vegetables one", 1, VegetablesTarget, domain.LevelGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, tt.target))
		})
	}
}

func TestOverall(t *testing.T) {
	const (
		low  = domain.LevelLow
		good = domain.LevelGood
		high = domain.LevelHigh
	)

	tests := []struct {
		name   string
		levels []domain.Level
		want   domain.Score
	}{
		{"four good", []domain.Level{good, good, good, good}, domain.ScoreExcellent},
		{"three good", []domain.Level{good, good, good, low}, domain.ScoreExcellent},
		{"two good", []domain.Level{good, good, low, low}, domain.ScoreGood},
		{"two good two high", []domain.Level{good, high, good, high}, domain.ScoreGood},
		{"one of each", []domain.Level{good, low, high, good}, domain.ScoreGood},
		{"one good one low two high", []domain.Level{good, low, high, high}, domain.ScorePoor},
		{"two low one high", []domain.Level{low, high, good, low}, domain.ScorePoor},
		{"all low", []domain.Level{low, low, low, low}, domain.ScorePoor},
		{"all high", []domain.Level{high, high, high, high}, domain.ScorePoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overall(tt.levels...))
		})
	}
}

func TestOverallFair(t *testing.T) {
	// fair needs goodCount < 2, lowCount <= 1 and highCount <= 1, which four
	// levels can only satisfy with fewer than four inputs
	assert.Equal(t, domain.ScoreFair, Overall(domain.LevelGood, domain.LevelLow, domain.LevelHigh))
	assert.Equal(t, domain.ScoreFair, Overall(domain.LevelLow, domain.LevelHigh))
}

func TestCalculateBalanceProteinBoundary(t *testing.T) {
	pantry := []domain.Ingredient{ingredient("cheese", domain.CategoryDairy, 10.5, 0)}
	items := []domain.LunchBoxIngredient{{IngredientID: "cheese", Quantity: 1, Compartment: 1}}

	b := CalculateBalance(pantry, items)

	assert.Equal(t, domain.LevelGood, b.Protein)
	assert.Equal(t, domain.LevelLow, b.Carbs)
	assert.Equal(t, domain.ScorePoor, b.Overall)
}
