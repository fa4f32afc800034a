package services

import (
	"context"

	"carspace/internal/domain"
	"carspace/internal/repository"

	"github.com/google/uuid"
)

// AnalyticsService assembles the admin dashboard aggregates. Admins see only
// their own rooms; superadmins see everything.
type AnalyticsService struct {
	rooms    repository.RoomRepository
	cars     repository.CarRepository
	bookings repository.BookingRepository
	convs    repository.ConversationRepository
}

func NewAnalyticsService(
	rooms repository.RoomRepository,
	cars repository.CarRepository,
	bookings repository.BookingRepository,
	convs repository.ConversationRepository,
) *AnalyticsService {
	return &AnalyticsService{rooms: rooms, cars: cars, bookings: bookings, convs: convs}
}

type Dashboard struct {
	RoomCount         int              `json:"room_count"`
	CarsByStatus      map[string]int64 `json:"cars_by_status"`
	BookingsByStatus  map[string]int64 `json:"bookings_by_status"`
	ConversationCount int64            `json:"conversation_count"`
	TotalUnread       int64            `json:"total_unread"`
	ConfirmedRevenue  float64          `json:"confirmed_revenue"`
	RecentBookings    []domain.Booking `json:"recent_bookings"`
}

const recentBookingsLimit = 10

func (s *AnalyticsService) Dashboard(ctx context.Context, id Identity) (Dashboard, error) {
	var roomIDs []uuid.UUID
	var roomCount int

	if id.IsSuperAdmin() {
		// nil roomIDs means "all rooms" to the repositories.
		_, total, err := s.rooms.List(ctx, false, 1, 1)
		if err != nil {
			return Dashboard{}, err
		}
		roomCount = int(total)
	} else {
		rooms, err := s.rooms.ListByAdmin(ctx, id.UserID)
		if err != nil {
			return Dashboard{}, err
		}
		roomIDs = make([]uuid.UUID, 0, len(rooms))
		for _, r := range rooms {
			roomIDs = append(roomIDs, r.ID)
		}
		roomCount = len(rooms)
		if len(roomIDs) == 0 {
			return Dashboard{
				CarsByStatus:     map[string]int64{},
				BookingsByStatus: map[string]int64{},
				RecentBookings:   []domain.Booking{},
			}, nil
		}
	}

	carsByStatus, err := s.cars.CountByStatus(ctx, roomIDs)
	if err != nil {
		return Dashboard{}, err
	}
	bookingsByStatus, err := s.bookings.CountByStatus(ctx, roomIDs)
	if err != nil {
		return Dashboard{}, err
	}
	conversationCount, err := s.convs.CountByRooms(ctx, roomIDs)
	if err != nil {
		return Dashboard{}, err
	}
	totalUnread, err := s.convs.SumUnreadByRooms(ctx, roomIDs)
	if err != nil {
		return Dashboard{}, err
	}
	revenue, err := s.bookings.SumAmountByStatus(ctx, roomIDs, domain.BookingConfirmed)
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := s.bookings.ListByRooms(ctx, roomIDs, recentBookingsLimit)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		RoomCount:         roomCount,
		CarsByStatus:      carsByStatus,
		BookingsByStatus:  bookingsByStatus,
		ConversationCount: conversationCount,
		TotalUnread:       totalUnread,
		ConfirmedRevenue:  revenue,
		RecentBookings:    recent,
	}, nil
}
