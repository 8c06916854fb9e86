package models

import (
	"time"
)

const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
	FriendshipStatusBlocked  = "blocked"
)

// Friendship is an undirected social edge stored as a directed row. The
// composite unique index keeps retried requests from creating a second row
// for the same (requester, addressee) pair. No soft delete here: removing
// the edge deletes the row, otherwise the unique index would block a later
// re-request.
type Friendship struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RequesterID uint   `gorm:"not null;uniqueIndex:ux_friendships_pair,priority:1" json:"requester_id"`
	AddresseeID uint   `gorm:"not null;uniqueIndex:ux_friendships_pair,priority:2;index" json:"addressee_id"`
	Status      string `gorm:"not null;default:'pending'" json:"status"` // pending, accepted, blocked

	Requester User `gorm:"foreignKey:RequesterID" json:"requester"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee"`
}
