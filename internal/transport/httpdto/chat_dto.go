package httpdto

import (
	"time"

	"carspace/internal/domain"
)

// PostMessageRequest carries a new message. The user-facing endpoint requires
// conversationId; the admin endpoint takes the chat id from the path and
// ignores the field.
type PostMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
	MessageType    string `json:"message_type"`
	CarID          string `json:"carId"`
	FileID         string `json:"fileId"`
	FileName       string `json:"fileName"`
	FileType       string `json:"fileType"`
}

type DeleteChatRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	Type           string    `json:"type"`
	CarID          string    `json:"car_id,omitempty"`
	FileURL        string    `json:"file_url,omitempty"`
	FileName       string    `json:"file_name,omitempty"`
	FileType       string    `json:"file_type,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToMessageResponse(m domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		SenderID:       m.SenderID.String(),
		Body:           m.Body,
		Type:           m.Type,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
	if m.CarID.Valid {
		resp.CarID = m.CarID.UUID.String()
	}
	if m.FileURL.Valid {
		resp.FileURL = m.FileURL.String
	}
	if m.FileName.Valid {
		resp.FileName = m.FileName.String
	}
	if m.FileType.Valid {
		resp.FileType = m.FileType.String
	}
	return resp
}

func ToMessageResponses(msgs []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToMessageResponse(m))
	}
	return out
}

type ConversationResponse struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"room_id"`
	UserID        string    `json:"user_id"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToConversationResponse(c domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            c.ID.String(),
		RoomID:        c.RoomID.String(),
		UserID:        c.UserID.String(),
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
	}
}

func ToConversationResponses(convs []domain.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, ToConversationResponse(c))
	}
	return out
}

type ChatResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}
