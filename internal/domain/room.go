package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Room represents the rooms table. A room is a dealership showroom owned by
// exactly one admin.
type Room struct {
	ID          uuid.UUID
	Name        string
	AdminID     uuid.UUID
	ContactInfo sql.NullString
	City        sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Room) TableName() string {
	return "rooms"
}
