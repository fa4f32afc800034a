package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Car listing status
const (
	CarAvailable = "available"
	CarReserved  = "reserved"
	CarSold      = "sold"
)

// Car represents the cars table
type Car struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	Make      string
	Model     string
	Year      int
	Mileage   int
	Price     float64
	Status    string
	PhotoURL  sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Car) TableName() string {
	return "cars"
}
