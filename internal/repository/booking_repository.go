package repository

import (
	"context"
	"errors"
	"time"

	"carspace/internal/domain"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &PostgresBookingRepository{db: db}
}

func (r *PostgresBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PostgresBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Booking{}, carspace_errors.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *PostgresBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return carspace_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PostgresBookingRepository) ListByRooms(ctx context.Context, roomIDs []uuid.UUID, limit int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if roomIDs != nil {
		q = q.Where("room_id IN ?", roomIDs)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PostgresBookingRepository) CountByStatus(ctx context.Context, roomIDs []uuid.UUID) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	q := r.db.WithContext(ctx).Model(&domain.Booking{}).
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

func (r *PostgresBookingRepository) SumAmountByStatus(ctx context.Context, roomIDs []uuid.UUID, status string) (float64, error) {
	var total float64
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", status)
	if roomIDs != nil {
		q = q.Where("room_id IN ?", roomIDs)
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
