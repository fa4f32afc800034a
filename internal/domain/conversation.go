package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents the chat_conversations table. At most one
// conversation exists per (room, user) pair, enforced by a unique index.
type Conversation struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	UserID        uuid.UUID
	LastMessageAt time.Time
	UnreadCount   int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Conversation) TableName() string {
	return "chat_conversations"
}

// Participants returns the two user ids taking part in the conversation:
// the end user and the room's owning admin.
func (c Conversation) Participants(room Room) []uuid.UUID {
	return []uuid.UUID{c.UserID, room.AdminID}
}
