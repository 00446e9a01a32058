package repository

import (
	"context"

	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KidRepository handles kid profile persistence
type KidRepository struct {
	db *gorm.DB
}

// NewKidRepository creates a new kid repository
func NewKidRepository(db *gorm.DB) *KidRepository {
	return &KidRepository{db: db}
}

// Save inserts the kid or replaces the stored row with the same id
func (r *KidRepository) Save(ctx context.Context, kid *domain.Kid) error {
	rec := kidToRecord(kid)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// Get returns the kid with id or ErrNotFound
func (r *KidRepository) Get(ctx context.Context, id string) (*domain.Kid, error) {
	var rec database.Kid
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	kid := kidFromRecord(&rec)
	return &kid, nil
}

// List returns all kids in creation order
func (r *KidRepository) List(ctx context.Context) ([]domain.Kid, error) {
	return listKids(r.db.WithContext(ctx))
}

func listKids(db *gorm.DB) ([]domain.Kid, error) {
	var recs []database.Kid
	if err := db.Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, err
	}

	kids := make([]domain.Kid, 0, len(recs))
	for i := range recs {
		kids = append(kids, kidFromRecord(&recs[i]))
	}
	return kids, nil
}

// Delete removes the kid. Lunch boxes referencing it are left in place.
func (r *KidRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&database.Kid{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
