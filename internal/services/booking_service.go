package services

import (
	"context"
	"time"

	"carspace/internal/domain"
	"carspace/internal/repository"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
)

type BookingService struct {
	bookings repository.BookingRepository
	cars     repository.CarRepository
	rooms    repository.RoomRepository
}

func NewBookingService(bookings repository.BookingRepository, cars repository.CarRepository, rooms repository.RoomRepository) *BookingService {
	return &BookingService{bookings: bookings, cars: cars, rooms: rooms}
}

type CreateBookingInput struct {
	CarID    uuid.UUID
	FullName string
	Phone    string
	Amount   float64
	Method   string
}

func (s *BookingService) Create(ctx context.Context, id Identity, in CreateBookingInput) (domain.Booking, error) {
	if in.FullName == "" || in.Phone == "" || in.Amount <= 0 {
		return domain.Booking{}, carspace_errors.ErrInvalidInput
	}

	car, err := s.cars.GetByID(ctx, in.CarID)
	if err != nil {
		return domain.Booking{}, err
	}
	if car.Status != domain.CarAvailable {
		return domain.Booking{}, carspace_errors.ErrConflict
	}

	booking := domain.Booking{
		ID:        uuid.New(),
		CarID:     car.ID,
		RoomID:    car.RoomID,
		UserID:    id.UserID,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Amount:    in.Amount,
		Method:    in.Method,
		Status:    domain.BookingPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.bookings.Create(ctx, &booking); err != nil {
		return domain.Booking{}, err
	}
	return booking, nil
}

func (s *BookingService) ListOwn(ctx context.Context, id Identity) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, id.UserID)
}

// UpdateStatus moves a booking through its lifecycle; room admin or
// superadmin only. Confirming a booking reserves the car.
func (s *BookingService) UpdateStatus(ctx context.Context, id Identity, bookingID uuid.UUID, status string) (domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return domain.Booking{}, carspace_errors.ErrInvalidStatus
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	room, err := s.rooms.GetByID(ctx, booking.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !id.IsSuperAdmin() && id.UserID != room.AdminID {
		return domain.Booking{}, carspace_errors.ErrForbidden
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return domain.Booking{}, err
	}

	if status == domain.BookingConfirmed {
		if car, err := s.cars.GetByID(ctx, booking.CarID); err == nil {
			car.Status = domain.CarReserved
			car.UpdatedAt = time.Now()
			_ = s.cars.Update(ctx, car)
		}
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	return booking, nil
}
