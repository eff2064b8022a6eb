package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiquorType buckets bottles (beer, wine, whiskey, ...).
type LiquorType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null"`
}

// Bottle is a liquor vertical item.
type Bottle struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name              string          `gorm:"column:name;not null"`
	LiquorTypeID      uuid.UUID       `gorm:"column:liquor_type_id;type:uuid;not null"`
	AlcoholPercentage decimal.Decimal `gorm:"column:alcohol_percentage;type:numeric(4,1);not null"`
	VolumeML          int             `gorm:"column:volume_ml;not null"`
	Origin            string          `gorm:"column:origin"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL          string          `gorm:"column:image_url"`
}
