package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatoapp/mercato-backend/pkg/enums"
)

// Aisle groups market products (dairy, produce, bakery, ...).
type Aisle struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null"`
}

// MarketProduct is a grocery item in the market vertical.
type MarketProduct struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	AisleID     uuid.UUID         `gorm:"column:aisle_id;type:uuid;not null"`
	Brand       string            `gorm:"column:brand"`
	NetContent  decimal.Decimal   `gorm:"column:net_content;type:numeric(6,2);not null"`
	UnitMeasure enums.UnitMeasure `gorm:"column:unit_measure;type:text;not null"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	IsOrganic   bool              `gorm:"column:is_organic;not null;default:false"`
	ImageURL    string            `gorm:"column:image_url"`
}
