package repository

import (
	"context"

	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository handles pantry persistence
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Save inserts the ingredient or replaces the stored row with the same id
func (r *IngredientRepository) Save(ctx context.Context, ing *domain.Ingredient) error {
	rec := ingredientToRecord(ing)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// Get returns the ingredient with id or ErrNotFound
func (r *IngredientRepository) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	var rec database.Ingredient
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	ing := ingredientFromRecord(&rec)
	return &ing, nil
}

// List returns the whole pantry in creation order
func (r *IngredientRepository) List(ctx context.Context) ([]domain.Ingredient, error) {
	return listIngredients(r.db.WithContext(ctx))
}

// ListExpiring returns ingredients with an expiration date on or before the cutoff
func (r *IngredientRepository) ListExpiring(ctx context.Context, cutoff string) ([]domain.Ingredient, error) {
	var recs []database.Ingredient
	err := r.db.WithContext(ctx).
		Where("expiration_date IS NOT NULL").
		Order("expiration_date, name").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Ingredient, 0, len(recs))
	for i := range recs {
		ing := ingredientFromRecord(&recs[i])
		if utils.FormatDate(*ing.ExpirationDate) <= cutoff {
			out = append(out, ing)
		}
	}
	return out, nil
}

func listIngredients(db *gorm.DB) ([]domain.Ingredient, error) {
	var recs []database.Ingredient
	if err := db.Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Ingredient, 0, len(recs))
	for i := range recs {
		out = append(out, ingredientFromRecord(&recs[i]))
	}
	return out, nil
}

// Delete removes the ingredient. Lunch boxes referencing it keep the dangling id.
func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&database.Ingredient{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
