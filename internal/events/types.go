package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type constants, format: domain.action
const (
	EventChatMessageNew    = "chat.message_new"
	EventChatDeliveryState = "chat.delivery_status"
	EventBellNotification  = "bell.notification"
)

// ChatMessagePayload is the realtime payload published for a new chat
// message and the body persisted in the outbox row that fans it out.
type ChatMessagePayload struct {
	MessageID      uuid.UUID   `json:"message_id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	RoomID         uuid.UUID   `json:"room_id"`
	SenderID       uuid.UUID   `json:"sender_id"`
	Recipients     []uuid.UUID `json:"recipients"`
	Body           string      `json:"body"`
	MessageType    string      `json:"message_type"`
	SentAt         time.Time   `json:"sent_at"`
}

// DeliveryStatusPayload reports fan-out progress on the conversation channel.
type DeliveryStatusPayload struct {
	MessageID      uuid.UUID `json:"message_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	Status         string    `json:"status"`
	At             time.Time `json:"at"`
}

// BellPayload is the in-app "bell" event published on a user channel.
type BellPayload struct {
	UserID         uuid.UUID `json:"user_id"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	ConversationID uuid.UUID `json:"conversation_id,omitempty"`
	At             time.Time `json:"at"`
}
