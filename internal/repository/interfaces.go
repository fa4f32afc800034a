package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carspace/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	Update(ctx context.Context, r domain.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Room, error)
	List(ctx context.Context, onlyActive bool, page, limit int) ([]domain.Room, int64, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Room, error)
}

// CarFilter narrows car listings; zero values mean "no constraint".
type CarFilter struct {
	RoomID uuid.NullUUID
	Make   string
	Status string
}

type CarRepository interface {
	Create(ctx context.Context, c *domain.Car) error
	Update(ctx context.Context, c domain.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error)
	List(ctx context.Context, filter CarFilter, page, limit int) ([]domain.Car, int64, error)
	CountByStatus(ctx context.Context, roomIDs []uuid.UUID) (map[string]int64, error)
}

type ConversationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Conversation, error)
	GetByRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (domain.Conversation, error)
	FindOrCreate(ctx context.Context, roomID, userID uuid.UUID) (domain.Conversation, error)
	TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementUnread(ctx context.Context, id uuid.UUID) error
	ResetUnread(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	ListByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]domain.Conversation, error)
	CountByRooms(ctx context.Context, roomIDs []uuid.UUID) (int64, error)
	SumUnreadByRooms(ctx context.Context, roomIDs []uuid.UUID) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]domain.Message, error)
	MarkReadExcept(ctx context.Context, conversationID, viewerID uuid.UUID) (int64, error)
	DeleteByConversation(ctx context.Context, conversationID uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListByRooms(ctx context.Context, roomIDs []uuid.UUID, limit int) ([]domain.Booking, error)
	CountByStatus(ctx context.Context, roomIDs []uuid.UUID) (map[string]int64, error)
	SumAmountByStatus(ctx context.Context, roomIDs []uuid.UUID, status string) (float64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type OutboxRepository interface {
	// Create writes the event inside tx when tx is non-nil, so enqueueing
	// shares the transaction that persisted the message.
	Create(ctx context.Context, tx *gorm.DB, ev *domain.OutboxEvent) error
	GetPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error
	IncrementRetry(ctx context.Context, id uuid.UUID) error
}
