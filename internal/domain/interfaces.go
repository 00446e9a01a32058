package domain

import (
	"context"
	"encoding/json"
	"time"
)

// KidService handles child profile operations
type KidService interface {
	CreateKid(ctx context.Context, kid Kid) (*Kid, error)
	ListKids(ctx context.Context) ([]Kid, error)
	UpdateKid(ctx context.Context, kid Kid) (*Kid, error)
	DeleteKid(ctx context.Context, id string) error
}

// PantryService handles ingredient operations
type PantryService interface {
	CreateIngredient(ctx context.Context, ingredient Ingredient) (*Ingredient, error)
	ListIngredients(ctx context.Context) ([]Ingredient, error)
	UpdateIngredient(ctx context.Context, ingredient Ingredient) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error
	Search(ctx context.Context, term, category string) ([]Ingredient, error)
}

// PlannerService builds lunch boxes
type PlannerService interface {
	Get(ctx context.Context, kidID string, date time.Time) (*LunchBox, error)
	List(ctx context.Context) ([]LunchBox, error)
	ListByKid(ctx context.Context, kidID string) ([]LunchBox, error)
	Delete(ctx context.Context, id string) error
	Drop(ctx context.Context, kidID string, date time.Time, ingredientID string, compartment int) (*LunchBox, error)
	Remove(ctx context.Context, kidID string, date time.Time, compartment int, ingredientID string) (*LunchBox, error)
	SetQuantity(ctx context.Context, kidID string, date time.Time, compartment int, ingredientID string, quantity int) (*LunchBox, error)
	SetNotes(ctx context.Context, kidID string, date time.Time, notes string) (*LunchBox, error)
	Evaluate(ctx context.Context, items []LunchBoxIngredient) (*Evaluation, error)
}

// SnapshotService exports and imports the whole dataset
type SnapshotService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) error
}

// SettingsService reads and writes application settings
type SettingsService interface {
	GetSetting(ctx context.Context, key string) (json.RawMessage, error)
	SetSetting(ctx context.Context, key string, value json.RawMessage) error
	AllSettings(ctx context.Context) (map[string]json.RawMessage, error)
	// Bool reads a boolean setting; a missing or non-boolean value is false
	Bool(ctx context.Context, key string) (bool, error)
}

// ExpirationService reports expired and expiring pantry items
type ExpirationService interface {
	Check(ctx context.Context, now time.Time) (*ExpirationReport, error)
}

// NutritionEstimator fills in nutrition facts for an ingredient name
type NutritionEstimator interface {
	Estimate(ctx context.Context, name string, category Category) (*NutritionInfo, error)
}

// Totals are the aggregated nutrition numbers of a lunch box
type Totals struct {
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Fiber      float64 `json:"fiber"`
	Sugar      float64 `json:"sugar"`
	Sodium     float64 `json:"sodium"`
	Vegetables int     `json:"vegetables"`
	Fruits     int     `json:"fruits"`
}

// Evaluation is the full evaluator output
type Evaluation struct {
	Totals  Totals           `json:"totals"`
	Balance NutritionBalance `json:"balance"`
}

// ExpirationReport splits pantry items by expiration state
type ExpirationReport struct {
	Date         string       `json:"date"`
	Expired      []Ingredient `json:"expired"`
	ExpiringSoon []Ingredient `json:"expiringSoon"`
}

// Total returns the number of items that need attention
func (r *ExpirationReport) Total() int {
	return len(r.Expired) + len(r.ExpiringSoon)
}
