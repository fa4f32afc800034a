package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking status
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
)

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected:
		return true
	}
	return false
}

// Booking represents the bookings table: a payment submission against a car.
type Booking struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	RoomID    uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Phone     string
	Amount    float64
	Method    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Booking) TableName() string {
	return "bookings"
}
