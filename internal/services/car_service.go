package services

import (
	"context"
	"time"

	"carspace/internal/domain"
	"carspace/internal/repository"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
)

type CarService struct {
	cars  repository.CarRepository
	rooms repository.RoomRepository
}

func NewCarService(cars repository.CarRepository, rooms repository.RoomRepository) *CarService {
	return &CarService{cars: cars, rooms: rooms}
}

type CarInput struct {
	RoomID   uuid.UUID
	Make     string
	Model    string
	Year     int
	Mileage  int
	Price    float64
	PhotoURL string
}

func (s *CarService) Create(ctx context.Context, id Identity, in CarInput) (domain.Car, error) {
	if in.Make == "" || in.Model == "" || in.Year == 0 || in.Price <= 0 {
		return domain.Car{}, carspace_errors.ErrInvalidInput
	}

	room, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return domain.Car{}, err
	}
	if !id.IsSuperAdmin() && id.UserID != room.AdminID {
		return domain.Car{}, carspace_errors.ErrForbidden
	}

	car := domain.Car{
		ID:        uuid.New(),
		RoomID:    in.RoomID,
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		Mileage:   in.Mileage,
		Price:     in.Price,
		Status:    domain.CarAvailable,
		PhotoURL:  nullString(in.PhotoURL),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.cars.Create(ctx, &car); err != nil {
		return domain.Car{}, err
	}
	return car, nil
}

type UpdateCarInput struct {
	Mileage  *int
	Price    *float64
	Status   string
	PhotoURL string
}

func (s *CarService) Update(ctx context.Context, id Identity, carID uuid.UUID, in UpdateCarInput) (domain.Car, error) {
	car, err := s.authorizedCar(ctx, id, carID)
	if err != nil {
		return domain.Car{}, err
	}

	if in.Mileage != nil {
		car.Mileage = *in.Mileage
	}
	if in.Price != nil {
		car.Price = *in.Price
	}
	if in.Status != "" {
		switch in.Status {
		case domain.CarAvailable, domain.CarReserved, domain.CarSold:
			car.Status = in.Status
		default:
			return domain.Car{}, carspace_errors.ErrInvalidStatus
		}
	}
	if in.PhotoURL != "" {
		car.PhotoURL = nullString(in.PhotoURL)
	}
	car.UpdatedAt = time.Now()

	if err := s.cars.Update(ctx, car); err != nil {
		return domain.Car{}, err
	}
	return car, nil
}

func (s *CarService) Delete(ctx context.Context, id Identity, carID uuid.UUID) error {
	if _, err := s.authorizedCar(ctx, id, carID); err != nil {
		return err
	}
	return s.cars.Delete(ctx, carID)
}

func (s *CarService) GetByID(ctx context.Context, carID uuid.UUID) (domain.Car, error) {
	return s.cars.GetByID(ctx, carID)
}

func (s *CarService) List(ctx context.Context, filter repository.CarFilter, page, limit int) ([]domain.Car, int64, error) {
	return s.cars.List(ctx, filter, page, limit)
}

func (s *CarService) authorizedCar(ctx context.Context, id Identity, carID uuid.UUID) (domain.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return domain.Car{}, err
	}
	room, err := s.rooms.GetByID(ctx, car.RoomID)
	if err != nil {
		return domain.Car{}, err
	}
	if !id.IsSuperAdmin() && id.UserID != room.AdminID {
		return domain.Car{}, carspace_errors.ErrForbidden
	}
	return car, nil
}
