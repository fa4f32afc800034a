package httpdto

import (
	"time"

	"carspace/internal/domain"
)

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`
	City        string `json:"city"`
}

type UpdateRoomRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	City        string `json:"city"`
	IsActive    *bool  `json:"is_active"`
}

type RoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AdminID     string    `json:"admin_id"`
	ContactInfo string    `json:"contact_info,omitempty"`
	City        string    `json:"city,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToRoomResponse(r domain.Room) RoomResponse {
	resp := RoomResponse{
		ID:        r.ID.String(),
		Name:      r.Name,
		AdminID:   r.AdminID.String(),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
	if r.ContactInfo.Valid {
		resp.ContactInfo = r.ContactInfo.String
	}
	if r.City.Valid {
		resp.City = r.City.String
	}
	return resp
}

func ToRoomResponses(rooms []domain.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, ToRoomResponse(r))
	}
	return out
}

type PagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
