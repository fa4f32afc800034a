package repository

import (
	"context"
	"errors"

	"carspace/internal/domain"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresRoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &PostgresRoomRepository{db: db}
}

func (r *PostgresRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *PostgresRoomRepository) Update(ctx context.Context, room domain.Room) error {
	res := r.db.WithContext(ctx).Save(&room)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return carspace_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Room{}, carspace_errors.ErrRoomNotFound
		}
		return domain.Room{}, err
	}
	return room, nil
}

func (r *PostgresRoomRepository) List(ctx context.Context, onlyActive bool, page, limit int) ([]domain.Room, int64, error) {
	var rooms []domain.Room
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Room{})
	if onlyActive {
		q = q.Where("is_active = true")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (r *PostgresRoomRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
