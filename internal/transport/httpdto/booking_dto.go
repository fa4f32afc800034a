package httpdto

import (
	"time"

	"carspace/internal/domain"
)

type CreateBookingRequest struct {
	CarID    string  `json:"car_id" binding:"required"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Method   string  `json:"method"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	CarID     string    `json:"car_id"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID.String(),
		CarID:     b.CarID.String(),
		RoomID:    b.RoomID.String(),
		UserID:    b.UserID.String(),
		FullName:  b.FullName,
		Phone:     b.Phone,
		Amount:    b.Amount,
		Method:    b.Method,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func ToBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(b))
	}
	return out
}
