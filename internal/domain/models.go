package domain

import (
	"time"
)

// Category is the fixed ingredient category enumeration
type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryGrain     Category = "grain"
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryDairy     Category = "dairy"
	CategorySnack     Category = "snack"
	CategoryDrink     Category = "drink"
	CategoryCondiment Category = "condiment"
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{
		CategoryProtein,
		CategoryGrain,
		CategoryVegetable,
		CategoryFruit,
		CategoryDairy,
		CategorySnack,
		CategoryDrink,
		CategoryCondiment,
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryProtein, CategoryGrain, CategoryVegetable, CategoryFruit,
		CategoryDairy, CategorySnack, CategoryDrink, CategoryCondiment:
		return true
	}
	return false
}

// Level is the balance of a single nutrition dimension
type Level string

const (
	LevelLow  Level = "low"
	LevelGood Level = "good"
	LevelHigh Level = "high"
)

// Score is the overall balance of a lunch box
type Score string

const (
	ScorePoor      Score = "poor"
	ScoreFair      Score = "fair"
	ScoreGood      Score = "good"
	ScoreExcellent Score = "excellent"
)

// Compartments in a lunch box are numbered 1..CompartmentCount
const CompartmentCount = 4

// Kid represents a child profile
type Kid struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Allergies   []string  `json:"allergies"`
	Preferences []string  `json:"preferences"`
	Dislikes    []string  `json:"dislikes"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NutritionInfo is per-unit nutrition of an ingredient.
// Calories in kcal, sodium in mg, everything else in grams.
type NutritionInfo struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    float64  `json:"fiber"`
	Sugar    float64  `json:"sugar"`
	Sodium   float64  `json:"sodium"`
	Vitamins []string `json:"vitamins"`
}

// Ingredient is a pantry item
type Ingredient struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Category       Category      `json:"category"`
	NutritionInfo  NutritionInfo `json:"nutritionInfo"`
	ExpirationDate *time.Time    `json:"expirationDate,omitempty"`
	Quantity       float64       `json:"quantity"`
	Unit           string        `json:"unit"`
	Tags           []string      `json:"tags"`
	Color          string        `json:"color,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// LunchBoxIngredient assigns an ingredient to a compartment
type LunchBoxIngredient struct {
	IngredientID string `json:"ingredientId"`
	Quantity     int    `json:"quantity"`
	Compartment  int    `json:"compartment"`
}

// NutritionBalance is the derived balance of a lunch box
type NutritionBalance struct {
	Protein    Level `json:"protein"`
	Carbs      Level `json:"carbs"`
	Vegetables Level `json:"vegetables"`
	Fruits     Level `json:"fruits"`
	Overall    Score `json:"overall"`
}

// LunchBox is one kid's lunch for one calendar day
type LunchBox struct {
	ID               string               `json:"id"`
	KidID            string               `json:"kidId"`
	Date             time.Time            `json:"date"`
	Ingredients      []LunchBoxIngredient `json:"ingredients"`
	Notes            string               `json:"notes,omitempty"`
	NutritionBalance NutritionBalance     `json:"nutritionBalance"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// PantryView is how the pantry is displayed in a planner session
type PantryView string

const (
	PantryViewGrid PantryView = "grid"
	PantryViewList PantryView = "list"
)

// Session is the per-client planner selection
type Session struct {
	ActiveKidID string     `json:"activeKidId,omitempty"`
	CurrentDate string     `json:"currentDate"` // Format: "2006-01-02"
	PantryView  PantryView `json:"pantryView"`
}

// Well-known settings keys
const (
	SettingNotifications = "notifications"
	SettingTheme         = "theme"
)
