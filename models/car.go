package models

import (
	"time"

	"gorm.io/gorm"
)

type Car struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"owner"`
	PlateNumber string `gorm:"uniqueIndex;not null" json:"plate_number"` // stored normalized, see types.NormalizePlate
	Make        string `json:"make"`
	Model       string `json:"model"`
	Color       string `json:"color"`
	Year        int    `json:"year"`
}
