package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Phone         *string        `gorm:"unique" json:"phone"`
	Password      string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	Role          Role           `json:"role" gorm:"foreignKey:RoleID"`
	RoleID        uint           `json:"role_id"`
	Cars          []Car          `json:"cars" gorm:"foreignKey:OwnerID"`
	Penalties     []Penalty      `json:"penalties" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"refresh_tokens" gorm:"foreignKey:UserID"`
	AccountStatus string         `gorm:"default:'active'" json:"account_status"`
	EmailVerified bool           `json:"email_verified"`
}
