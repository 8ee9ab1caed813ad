package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleBarber = "barber"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

// Profile espelha o usuário do provedor de autenticação; o ID é o "sub" do token.
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:100;uniqueIndex" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"size:20;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
