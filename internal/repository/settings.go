package repository

import (
	"context"

	"github.com/vladimiradmaev/lunchlego/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository stores JSON encoded settings by key
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the raw JSON value stored under key
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var rec database.Setting
	if err := r.db.WithContext(ctx).First(&rec, "setting_key = ?", key).Error; err != nil {
		return "", notFound(err)
	}
	return rec.Value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	rec := database.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

// All returns every setting keyed by name
func (r *SettingsRepository) All(ctx context.Context) (map[string]string, error) {
	var recs []database.Setting
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(recs))
	for _, rec := range recs {
		out[rec.Key] = rec.Value
	}
	return out, nil
}
