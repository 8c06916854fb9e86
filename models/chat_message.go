package models

import (
	"time"
)

// ChatMessage is a directed message. Rows are append-only: the only
// in-app mutation is flipping IsRead.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SenderID   uint   `gorm:"not null;index:idx_chat_pair,priority:1" json:"sender_id"`
	ReceiverID uint   `gorm:"not null;index:idx_chat_pair,priority:2" json:"receiver_id"`
	Body       string `gorm:"not null" json:"body"`
	IsRead     bool   `gorm:"not null;default:false" json:"is_read"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver"`
}
