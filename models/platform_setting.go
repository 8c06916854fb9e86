package models

import (
	"time"
)

// Well-known setting keys.
const (
	SettingReportsEnabled      = "reports_enabled"
	SettingChatEnabled         = "chat_enabled"
	SettingRegistrationEnabled = "registration_enabled"
	SettingEmergencyNumbers    = "emergency_numbers" // JSON list, see controllers.EmergencyService
)

type PlatformSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Key   string `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (PlatformSetting) TableName() string { return "platform_settings" }
