package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds
const (
	NotificationChat    = "chat_message"
	NotificationBooking = "booking_update"
)

// Notification represents the notifications table: the in-app "bell" feed.
type Notification struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Kind           string
	Title          string
	Body           string
	ConversationID uuid.NullUUID
	IsRead         bool
	CreatedAt      time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
