package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id matches no row
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Store bundles the repositories sharing one database handle
type Store struct {
	Kids        *KidRepository
	Ingredients *IngredientRepository
	LunchBoxes  *LunchBoxRepository
	Settings    *SettingsRepository
	Snapshots   *SnapshotRepository
}

// NewStore creates every repository over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Kids:        NewKidRepository(db),
		Ingredients: NewIngredientRepository(db),
		LunchBoxes:  NewLunchBoxRepository(db),
		Settings:    NewSettingsRepository(db),
		Snapshots:   NewSnapshotRepository(db),
	}
}
