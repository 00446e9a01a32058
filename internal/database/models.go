package database

import (
	"time"
)

type Kid struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"not null"`
	Age         int
	Allergies   []string `gorm:"serializer:json;type:text"`
	Preferences []string `gorm:"serializer:json;type:text"`
	Dislikes    []string `gorm:"serializer:json;type:text"`
	Avatar      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Ingredient struct {
	ID             string `gorm:"primaryKey;size:64"`
	Name           string `gorm:"not null;index"`
	Category       string `gorm:"size:16;not null;index"`
	Calories       float64
	Protein        float64
	Carbs          float64
	Fat            float64
	Fiber          float64
	Sugar          float64
	Sodium         float64
	Vitamins       []string `gorm:"serializer:json;type:text"`
	ExpirationDate *time.Time
	Quantity       float64
	Unit           string
	Tags           []string `gorm:"serializer:json;type:text"`
	Color          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Balance columns are derived and rewritten on every save
type Balance struct {
	Protein    string `gorm:"size:8"`
	Carbs      string `gorm:"size:8"`
	Vegetables string `gorm:"size:8"`
	Fruits     string `gorm:"size:8"`
	Overall    string `gorm:"size:16"`
}

type LunchBox struct {
	ID        string         `gorm:"primaryKey;size:64"`
	KidID     string         `gorm:"size:64;not null;uniqueIndex:idx_lunch_boxes_kid_date"`
	LunchDate string         `gorm:"size:10;not null;uniqueIndex:idx_lunch_boxes_kid_date"` // Format: "2006-01-02"
	Notes     string         `gorm:"type:text"`
	Balance   Balance        `gorm:"embedded;embeddedPrefix:balance_"`
	Items     []LunchBoxItem `gorm:"foreignKey:LunchBoxID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LunchBoxItem struct {
	ID           uint   `gorm:"primaryKey"`
	LunchBoxID   string `gorm:"size:64;not null;index"`
	Position     int    `gorm:"not null"`
	IngredientID string `gorm:"size:64;not null;index"`
	Quantity     int    `gorm:"not null"`
	Compartment  int    `gorm:"not null"`
}

type Setting struct {
	Key       string `gorm:"column:setting_key;primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"` // JSON encoded
	UpdatedAt time.Time
}

// Models lists every table managed by the schema migration
func Models() []interface{} {
	return []interface{}{&Kid{}, &Ingredient{}, &LunchBox{}, &LunchBoxItem{}, &Setting{}}
}
