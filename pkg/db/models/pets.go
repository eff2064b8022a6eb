package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatoapp/mercato-backend/pkg/enums"
)

// PetType buckets pet products (dog, cat, bird, ...).
type PetType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null"`
}

// PetProduct is a pets vertical item.
type PetProduct struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	PetTypeID   uuid.UUID       `gorm:"column:pet_type_id;type:uuid;not null"`
	LifeStage   enums.LifeStage `gorm:"column:life_stage;type:text;not null;default:'all'"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL    string          `gorm:"column:image_url"`
}
