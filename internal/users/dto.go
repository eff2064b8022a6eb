package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Phone           *string    `json:"phone,omitempty"`
	Address         *string    `json:"address,omitempty"`
	IsClient        bool       `json:"is_client"`
	IsBusinessOwner bool       `json:"is_business_owner"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Phone           *string
	Address         *string
	IsBusinessOwner bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		Address:         u.Address,
		IsClient:        u.IsClient,
		IsBusinessOwner: u.IsBusinessOwner,
		IsActive:        u.IsActive,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:              uuid.New(),
		Email:           c.Email,
		PasswordHash:    c.PasswordHash,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Phone:           c.Phone,
		Address:         c.Address,
		IsClient:        !c.IsBusinessOwner,
		IsBusinessOwner: c.IsBusinessOwner,
		IsActive:        true,
	}
}
