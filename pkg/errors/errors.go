package carspace_errors

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadyExists  = errors.New("already exists")
	ErrBadChatID      = errors.New("malformed chat identifier")
	ErrRoomNotFound   = errors.New("room not found")
	ErrInvalidStatus  = errors.New("invalid status transition")
	ErrUnknownVehicle = errors.New("no valuation data for this vehicle")
	ErrNotUploaded    = errors.New("file not uploaded")
)

// NowPtr returns a pointer to current time
func NowPtr() *time.Time {
	now := time.Now()
	return &now
}
