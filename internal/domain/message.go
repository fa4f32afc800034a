package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Message types
const (
	MessageText       = "text"
	MessageCarDetails = "car_details"
	MessageImage      = "image"
	MessageFile       = "file"
)

func ValidMessageType(t string) bool {
	switch t {
	case MessageText, MessageCarDetails, MessageImage, MessageFile:
		return true
	}
	return false
}

// Message represents the chat_messages table. Rows are immutable once
// created except for IsRead, which transitions false to true when the
// non-sender views the conversation.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Body           string
	Type           string
	CarID          uuid.NullUUID
	FileURL        sql.NullString
	FileName       sql.NullString
	FileType       sql.NullString
	IsRead         bool
	CreatedAt      time.Time
}

func (Message) TableName() string {
	return "chat_messages"
}
