package repository

import (
	"context"
	"errors"
	"time"

	"carspace/internal/domain"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Conversation, error) {
	var c domain.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Conversation{}, carspace_errors.ErrNotFound
		}
		return domain.Conversation{}, err
	}
	return c, nil
}

func (r *PostgresConversationRepository) GetByRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (domain.Conversation, error) {
	var c domain.Conversation
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Conversation{}, carspace_errors.ErrNotFound
		}
		return domain.Conversation{}, err
	}
	return c, nil
}

// FindOrCreate returns the conversation for (roomID, userID), creating it if
// absent. The insert is guarded by the unique index on (room_id, user_id):
// concurrent creators hit DoNothing and converge on the same row via the
// re-read.
func (r *PostgresConversationRepository) FindOrCreate(ctx context.Context, roomID, userID uuid.UUID) (domain.Conversation, error) {
	existing, err := r.GetByRoomAndUser(ctx, roomID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, carspace_errors.ErrNotFound) {
		return domain.Conversation{}, err
	}

	now := time.Now()
	c := domain.Conversation{
		ID:            uuid.New(),
		RoomID:        roomID,
		UserID:        userID,
		LastMessageAt: now,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&c)
	if res.Error != nil {
		return domain.Conversation{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race; the winner's row is the conversation.
		return r.GetByRoomAndUser(ctx, roomID, userID)
	}
	return c, nil
}

func (r *PostgresConversationRepository) TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"last_message_at": at, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return carspace_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresConversationRepository) IncrementUnread(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("unread_count", gorm.Expr("unread_count + 1")).Error
}

func (r *PostgresConversationRepository) ResetUnread(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("unread_count", 0).Error
}

func (r *PostgresConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Conversation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return carspace_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userID).
		Order("last_message_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// ListByRooms returns conversations for the given rooms; a nil slice means
// every room (superadmin view).
func (r *PostgresConversationRepository) ListByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	q := r.db.WithContext(ctx).Where("is_active = true")
	if roomIDs != nil {
		q = q.Where("room_id IN ?", roomIDs)
	}
	err := q.Order("last_message_at DESC").Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *PostgresConversationRepository) CountByRooms(ctx context.Context, roomIDs []uuid.UUID) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&domain.Conversation{})
	if roomIDs != nil {
		q = q.Where("room_id IN ?", roomIDs)
	}
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresConversationRepository) SumUnreadByRooms(ctx context.Context, roomIDs []uuid.UUID) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&domain.Conversation{}).
		Select("COALESCE(SUM(unread_count), 0)")
	if roomIDs != nil {
		q = q.Where("room_id IN ?", roomIDs)
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
