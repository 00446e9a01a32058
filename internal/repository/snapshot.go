package repository

import (
	"context"

	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"gorm.io/gorm"
)

const batchSize = 100

// Dataset is the full content of the three entity collections
type Dataset struct {
	Kids        []domain.Kid
	Ingredients []domain.Ingredient
	LunchBoxes  []domain.LunchBox
}

// SnapshotRepository reads and replaces all collections at once
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// LoadAll reads the three collections from one consistent view
func (r *SnapshotRepository) LoadAll(ctx context.Context) (*Dataset, error) {
	var ds Dataset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if ds.Kids, err = listKids(tx); err != nil {
			return err
		}
		if ds.Ingredients, err = listIngredients(tx); err != nil {
			return err
		}
		ds.LunchBoxes, err = listLunchBoxes(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// ReplaceAll clears the three collections and writes ds in their place.
// Either everything is replaced or nothing changes.
func (r *SnapshotRepository) ReplaceAll(ctx context.Context, ds *Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{&database.LunchBoxItem{}, &database.LunchBox{}, &database.Ingredient{}, &database.Kid{}} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}

		if len(ds.Kids) > 0 {
			recs := make([]database.Kid, 0, len(ds.Kids))
			for i := range ds.Kids {
				recs = append(recs, kidToRecord(&ds.Kids[i]))
			}
			if err := tx.CreateInBatches(&recs, batchSize).Error; err != nil {
				return err
			}
		}

		if len(ds.Ingredients) > 0 {
			recs := make([]database.Ingredient, 0, len(ds.Ingredients))
			for i := range ds.Ingredients {
				recs = append(recs, ingredientToRecord(&ds.Ingredients[i]))
			}
			if err := tx.CreateInBatches(&recs, batchSize).Error; err != nil {
				return err
			}
		}

		for i := range ds.LunchBoxes {
			if err := saveLunchBox(tx, &ds.LunchBoxes[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
