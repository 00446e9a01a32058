package repository

import (
	"context"

	"github.com/vladimiradmaev/lunchlego/internal/database"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LunchBoxRepository handles lunch box persistence
type LunchBoxRepository struct {
	db *gorm.DB
}

// NewLunchBoxRepository creates a new lunch box repository
func NewLunchBoxRepository(db *gorm.DB) *LunchBoxRepository {
	return &LunchBoxRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// Save upserts the lunch box row and replaces its items
func (r *LunchBoxRepository) Save(ctx context.Context, lb *domain.LunchBox) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveLunchBox(tx, lb)
	})
}

func saveLunchBox(tx *gorm.DB, lb *domain.LunchBox) error {
	rec := lunchBoxToRecord(lb)
	items := rec.Items
	rec.Items = nil

	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return err
	}
	if err := tx.Where("lunch_box_id = ?", rec.ID).Delete(&database.LunchBoxItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// Get returns the lunch box with id or ErrNotFound
func (r *LunchBoxRepository) Get(ctx context.Context, id string) (*domain.LunchBox, error) {
	var rec database.LunchBox
	if err := withItems(r.db.WithContext(ctx)).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	lb, err := lunchBoxFromRecord(&rec)
	if err != nil {
		return nil, err
	}
	return &lb, nil
}

// FindByKidAndDate returns the lunch box of kidID for the "2006-01-02" date, or ErrNotFound
func (r *LunchBoxRepository) FindByKidAndDate(ctx context.Context, kidID, date string) (*domain.LunchBox, error) {
	var rec database.LunchBox
	err := withItems(r.db.WithContext(ctx)).
		Where("kid_id = ? AND lunch_date = ?", kidID, date).
		First(&rec).Error
	if err != nil {
		return nil, notFound(err)
	}
	lb, err := lunchBoxFromRecord(&rec)
	if err != nil {
		return nil, err
	}
	return &lb, nil
}

// List returns every lunch box ordered by date
func (r *LunchBoxRepository) List(ctx context.Context) ([]domain.LunchBox, error) {
	return listLunchBoxes(r.db.WithContext(ctx))
}

// ListByKid returns the lunch boxes of one kid ordered by date
func (r *LunchBoxRepository) ListByKid(ctx context.Context, kidID string) ([]domain.LunchBox, error) {
	return listLunchBoxes(r.db.WithContext(ctx).Where("kid_id = ?", kidID))
}

func listLunchBoxes(db *gorm.DB) ([]domain.LunchBox, error) {
	var recs []database.LunchBox
	if err := withItems(db).Order("lunch_date, kid_id").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]domain.LunchBox, 0, len(recs))
	for i := range recs {
		lb, err := lunchBoxFromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, lb)
	}
	return out, nil
}

// Delete removes the lunch box and its items
func (r *LunchBoxRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lunch_box_id = ?", id).Delete(&database.LunchBoxItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&database.LunchBox{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
