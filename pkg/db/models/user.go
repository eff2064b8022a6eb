package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Email is the login handle
// and is stored lowercased.
type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email           string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash    string     `gorm:"column:password_hash;not null"`
	FirstName       string     `gorm:"column:first_name;not null"`
	LastName        string     `gorm:"column:last_name;not null"`
	Phone           *string    `gorm:"column:phone"`
	Address         *string    `gorm:"column:address"`
	IsClient        bool       `gorm:"column:is_client;not null;default:true"`
	IsBusinessOwner bool       `gorm:"column:is_business_owner;not null;default:false"`
	IsActive        bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
