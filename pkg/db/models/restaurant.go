package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantCategory buckets restaurants by cuisine (burgers, sushi, ...).
type RestaurantCategory struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	ImageURL string    `gorm:"column:image_url"`
}

// Restaurant is a storefront in the restaurants vertical.
type Restaurant struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	CategoryID    uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	DeliveryTime  string          `gorm:"column:delivery_time;not null;default:'30-45 min'"`
	Rating        decimal.Decimal `gorm:"column:rating;type:numeric(3,1);not null;default:4.5"`
	CoverImageURL string          `gorm:"column:cover_image_url"`
	Dishes        []Dish          `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// Dish is a menu entry belonging to a restaurant.
type Dish struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null"`
	Name         string          `gorm:"column:name;not null"`
	Description  string          `gorm:"column:description"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL     string          `gorm:"column:image_url"`
	IsPopular    bool            `gorm:"column:is_popular;not null;default:false"`
}
