package services

import (
	"context"
	"database/sql"
	"time"

	"carspace/internal/domain"
	"carspace/internal/repository"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
)

type RoomService struct {
	repo repository.RoomRepository
}

func NewRoomService(repo repository.RoomRepository) *RoomService {
	return &RoomService{repo: repo}
}

type CreateRoomInput struct {
	Name        string
	ContactInfo string
	City        string
}

func (s *RoomService) Create(ctx context.Context, id Identity, in CreateRoomInput) (domain.Room, error) {
	if in.Name == "" {
		return domain.Room{}, carspace_errors.ErrInvalidInput
	}

	room := domain.Room{
		ID:          uuid.New(),
		Name:        in.Name,
		AdminID:     id.UserID,
		ContactInfo: nullString(in.ContactInfo),
		City:        nullString(in.City),
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, &room); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

type UpdateRoomInput struct {
	Name        string
	ContactInfo string
	City        string
	IsActive    *bool
}

func (s *RoomService) Update(ctx context.Context, id Identity, roomID uuid.UUID, in UpdateRoomInput) (domain.Room, error) {
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if !id.IsSuperAdmin() && id.UserID != room.AdminID {
		return domain.Room{}, carspace_errors.ErrForbidden
	}

	if in.Name != "" {
		room.Name = in.Name
	}
	if in.ContactInfo != "" {
		room.ContactInfo = nullString(in.ContactInfo)
	}
	if in.City != "" {
		room.City = nullString(in.City)
	}
	if in.IsActive != nil {
		room.IsActive = *in.IsActive
	}
	room.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (s *RoomService) GetByID(ctx context.Context, roomID uuid.UUID) (domain.Room, error) {
	return s.repo.GetByID(ctx, roomID)
}

func (s *RoomService) List(ctx context.Context, page, limit int) ([]domain.Room, int64, error) {
	return s.repo.List(ctx, true, page, limit)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
