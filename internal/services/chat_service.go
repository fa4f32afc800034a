package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"carspace/internal/chatid"
	"carspace/internal/domain"
	"carspace/internal/events"
	"carspace/internal/repository"
	carspace_errors "carspace/pkg/errors"
	"carspace/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService implements the conversation-resolution and message-delivery
// flow: resolve identifier, find-or-create, authorize, persist, enqueue
// fan-out.
type ChatService struct {
	db     *gorm.DB
	convs  repository.ConversationRepository
	msgs   repository.MessageRepository
	rooms  repository.RoomRepository
	outbox repository.OutboxRepository
	log    *logger.Logger
}

func NewChatService(
	db *gorm.DB,
	convs repository.ConversationRepository,
	msgs repository.MessageRepository,
	rooms repository.RoomRepository,
	outboxRepo repository.OutboxRepository,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		db:     db,
		convs:  convs,
		msgs:   msgs,
		rooms:  rooms,
		outbox: outboxRepo,
		log:    log,
	}
}

// CanAccessConversation is the single authorization predicate shared by every
// chat endpoint: the room's owning admin, a superadmin, and the
// conversation's own user may access it.
func CanAccessConversation(id Identity, conv domain.Conversation, room domain.Room) bool {
	if id.IsSuperAdmin() {
		return true
	}
	if id.UserID == room.AdminID {
		return true
	}
	return id.UserID == conv.UserID
}

// ResolveChat turns a chat path parameter into a conversation and its room.
// A canonical conversation id is looked up verbatim; a composite
// "<roomID>-<userID>" id is split, the room existence checked, and the
// conversation found or lazily created.
func (s *ChatService) ResolveChat(ctx context.Context, chatID string) (domain.Conversation, domain.Room, error) {
	if chatid.IsConversationID(chatID) {
		conv, err := s.convs.GetByID(ctx, uuid.MustParse(chatID))
		if err == nil {
			room, err := s.rooms.GetByID(ctx, conv.RoomID)
			if err != nil {
				return domain.Conversation{}, domain.Room{}, err
			}
			return conv, room, nil
		}
		if !errors.Is(err, carspace_errors.ErrNotFound) {
			return domain.Conversation{}, domain.Room{}, err
		}
	}

	composite, err := chatid.SplitComposite(chatID)
	if err != nil {
		return domain.Conversation{}, domain.Room{}, err
	}

	room, err := s.rooms.GetByID(ctx, composite.RoomID)
	if err != nil {
		return domain.Conversation{}, domain.Room{}, err
	}

	conv, err := s.convs.FindOrCreate(ctx, composite.RoomID, composite.UserID)
	if err != nil {
		return domain.Conversation{}, domain.Room{}, err
	}
	return conv, room, nil
}

// GetMessages fetches the conversation's messages for an authorized viewer.
// Messages not authored by the viewer are flipped to read and the unread
// counter zeroed; both steps are best-effort per the store contract.
func (s *ChatService) GetMessages(ctx context.Context, id Identity, conversationID uuid.UUID) ([]domain.Message, error) {
	conv, room, err := s.loadConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !CanAccessConversation(id, conv, room) {
		return nil, carspace_errors.ErrForbidden
	}

	flipped, err := s.msgs.MarkReadExcept(ctx, conversationID, id.UserID)
	if err != nil {
		s.log.Errorf("mark read for conversation %s: %v", conversationID, err)
	} else if flipped > 0 {
		if err := s.convs.ResetUnread(ctx, conversationID); err != nil {
			s.log.Errorf("reset unread for conversation %s: %v", conversationID, err)
		}
	}

	return s.msgs.ListByConversation(ctx, conversationID, 0)
}

type PostMessageInput struct {
	ConversationID uuid.UUID
	Body           string
	Type           string
	CarID          uuid.NullUUID
	FileURL        string
	FileName       string
	FileType       string
}

// PostMessage appends a message to the conversation and enqueues its fan-out.
// The message insert and outbox enqueue share a transaction; everything after
// them is best-effort and never fails the request.
func (s *ChatService) PostMessage(ctx context.Context, id Identity, in PostMessageInput) (domain.Message, error) {
	if in.Type == "" {
		in.Type = domain.MessageText
	}
	if !domain.ValidMessageType(in.Type) {
		return domain.Message{}, carspace_errors.ErrInvalidInput
	}
	if in.Body == "" && in.FileURL == "" {
		return domain.Message{}, carspace_errors.ErrInvalidInput
	}

	conv, room, err := s.loadConversation(ctx, in.ConversationID)
	if err != nil {
		return domain.Message{}, err
	}
	if !CanAccessConversation(id, conv, room) {
		return domain.Message{}, carspace_errors.ErrForbidden
	}

	now := time.Now()
	msg := domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       id.UserID,
		Body:           in.Body,
		Type:           in.Type,
		CarID:          in.CarID,
		FileURL:        toNullString(in.FileURL),
		FileName:       toNullString(in.FileName),
		FileType:       toNullString(in.FileType),
		CreatedAt:      now,
	}

	if err := s.persistWithFanout(ctx, &msg, conv, room); err != nil {
		return domain.Message{}, err
	}

	if err := s.convs.TouchLastMessage(ctx, conv.ID, now); err != nil {
		s.log.Errorf("touch last message for conversation %s: %v", conv.ID, err)
	}
	if err := s.convs.IncrementUnread(ctx, conv.ID); err != nil {
		s.log.Errorf("increment unread for conversation %s: %v", conv.ID, err)
	}

	return msg, nil
}

// persistWithFanout inserts the message row and the outbox event together.
// When no database handle is present (tests), the two writes run directly.
func (s *ChatService) persistWithFanout(ctx context.Context, msg *domain.Message, conv domain.Conversation, room domain.Room) error {
	if s.db == nil {
		if err := s.msgs.Create(ctx, msg); err != nil {
			return err
		}
		if err := s.enqueueFanout(ctx, nil, *msg, conv, room); err != nil {
			s.log.Errorf("enqueue fan-out for message %s: %v", msg.ID, err)
		}
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewMessageRepository(tx).Create(ctx, msg); err != nil {
			return err
		}
		return s.enqueueFanout(ctx, tx, *msg, conv, room)
	})
}

func (s *ChatService) enqueueFanout(ctx context.Context, tx *gorm.DB, msg domain.Message, conv domain.Conversation, room domain.Room) error {
	recipients := make([]uuid.UUID, 0, 2)
	for _, participantID := range conv.Participants(room) {
		if participantID != msg.SenderID {
			recipients = append(recipients, participantID)
		}
	}

	payload, err := json.Marshal(events.ChatMessagePayload{
		MessageID:      msg.ID,
		ConversationID: conv.ID,
		RoomID:         room.ID,
		SenderID:       msg.SenderID,
		Recipients:     recipients,
		Body:           msg.Body,
		MessageType:    msg.Type,
		SentAt:         msg.CreatedAt.UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, tx, &domain.OutboxEvent{
		EventType:     events.EventChatMessageNew,
		AggregateType: "message",
		AggregateID:   msg.ID.String(),
		Payload:       payload,
	})
}

// DeleteConversation removes a conversation and its messages. Restricted to
// the room's admin and superadmins.
func (s *ChatService) DeleteConversation(ctx context.Context, id Identity, conversationID uuid.UUID) error {
	conv, room, err := s.loadConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if !id.IsSuperAdmin() && id.UserID != room.AdminID {
		return carspace_errors.ErrForbidden
	}

	if err := s.msgs.DeleteByConversation(ctx, conv.ID); err != nil {
		return err
	}
	return s.convs.Delete(ctx, conv.ID)
}

// ListConversations returns the requester's own conversations.
func (s *ChatService) ListConversations(ctx context.Context, id Identity) ([]domain.Conversation, error) {
	return s.convs.ListByUser(ctx, id.UserID)
}

// ListAdminConversations returns conversations for the rooms the requester
// administers; superadmins see every room's conversations.
func (s *ChatService) ListAdminConversations(ctx context.Context, id Identity) ([]domain.Conversation, error) {
	if id.IsSuperAdmin() {
		return s.convs.ListByRooms(ctx, nil)
	}

	rooms, err := s.rooms.ListByAdmin(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	roomIDs := make([]uuid.UUID, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}
	if len(roomIDs) == 0 {
		return []domain.Conversation{}, nil
	}
	return s.convs.ListByRooms(ctx, roomIDs)
}

func (s *ChatService) loadConversation(ctx context.Context, conversationID uuid.UUID) (domain.Conversation, domain.Room, error) {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if err != nil {
		return domain.Conversation{}, domain.Room{}, err
	}
	room, err := s.rooms.GetByID(ctx, conv.RoomID)
	if err != nil {
		return domain.Conversation{}, domain.Room{}, err
	}
	return conv, room, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
