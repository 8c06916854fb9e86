package realtime

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is the envelope published on every change. Payload carries the full
// row for inserts; update/delete events may omit it, subscribers refetch.
type Event struct {
	Table   string          `json:"table"`
	Type    EventType       `json:"type"`
	ID      uint            `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewEvent(table string, typ EventType, id uint, payload interface{}) Event {
	ev := Event{Table: table, Type: typ, ID: id}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			ev.Payload = raw
		}
	}
	return ev
}

// SettingsChannel carries platform setting saves; every process refreshes
// its settings cache on any event here.
const SettingsChannel = "settings"

// ChatChannel scopes a conversation between two users. The pair is ordered
// so both sides subscribe to the same channel.
func ChatChannel(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("chat:%d:%d", a, b)
}

// FriendshipsChannel carries every friendship change touching one user.
func FriendshipsChannel(userID uint) string {
	return fmt.Sprintf("friendships:%d", userID)
}

// ReportsChannel carries report changes where the user is reporter or
// reported party.
func ReportsChannel(userID uint) string {
	return fmt.Sprintf("reports:%d", userID)
}
