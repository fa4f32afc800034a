package httpdto

import (
	"time"

	"carspace/internal/domain"
)

type CreateCarRequest struct {
	RoomID   string  `json:"room_id" binding:"required"`
	Make     string  `json:"make" binding:"required"`
	Model    string  `json:"model" binding:"required"`
	Year     int     `json:"year" binding:"required"`
	Mileage  int     `json:"mileage"`
	Price    float64 `json:"price" binding:"required"`
	PhotoURL string  `json:"photo_url"`
}

type UpdateCarRequest struct {
	Mileage  *int     `json:"mileage"`
	Price    *float64 `json:"price"`
	Status   string   `json:"status"`
	PhotoURL string   `json:"photo_url"`
}

type CarResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Mileage   int       `json:"mileage"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCarResponse(c domain.Car) CarResponse {
	resp := CarResponse{
		ID:        c.ID.String(),
		RoomID:    c.RoomID.String(),
		Make:      c.Make,
		Model:     c.Model,
		Year:      c.Year,
		Mileage:   c.Mileage,
		Price:     c.Price,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
	if c.PhotoURL.Valid {
		resp.PhotoURL = c.PhotoURL.String
	}
	return resp
}

func ToCarResponses(cars []domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, ToCarResponse(c))
	}
	return out
}
