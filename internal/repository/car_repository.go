package repository

import (
	"context"
	"errors"

	"carspace/internal/domain"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresCarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &PostgresCarRepository{db: db}
}

func (r *PostgresCarRepository) Create(ctx context.Context, c *domain.Car) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresCarRepository) Update(ctx context.Context, c domain.Car) error {
	res := r.db.WithContext(ctx).Save(&c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return carspace_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresCarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Car{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return carspace_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresCarRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error) {
	var c domain.Car
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Car{}, carspace_errors.ErrNotFound
		}
		return domain.Car{}, err
	}
	return c, nil
}

func (r *PostgresCarRepository) List(ctx context.Context, filter CarFilter, page, limit int) ([]domain.Car, int64, error) {
	var cars []domain.Car
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Car{})
	if filter.RoomID.Valid {
		q = q.Where("room_id = ?", filter.RoomID.UUID)
	}
	if filter.Make != "" {
		q = q.Where("make ILIKE ?", filter.Make)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
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
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&cars).Error; err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

func (r *PostgresCarRepository) CountByStatus(ctx context.Context, roomIDs []uuid.UUID) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	q := r.db.WithContext(ctx).Model(&domain.Car{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if roomIDs != nil {
		q = q.Where("room_id IN ?", roomIDs)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
