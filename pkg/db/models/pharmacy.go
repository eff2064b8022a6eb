package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lab is a pharmaceutical manufacturer.
type Lab struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null"`
}

// Medicine is a pharmacy vertical item.
type Medicine struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                 string          `gorm:"column:name;not null"`
	LabID                uuid.UUID       `gorm:"column:lab_id;type:uuid;not null"`
	Presentation         string          `gorm:"column:presentation;not null"`
	ActiveComponent      string          `gorm:"column:active_component;not null"`
	RequiresPrescription bool            `gorm:"column:requires_prescription;not null;default:false"`
	Price                decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock                int             `gorm:"column:stock;not null;default:0"`
	ImageURL             string          `gorm:"column:image_url"`
}
