package studio

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /studios
type CreateRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=200"`
	Area       string  `json:"area" validate:"required,max=200"`
	City       string  `json:"city" validate:"required,max=100"`
	State      string  `json:"state" validate:"required,max=100"`
	MapLink    string  `json:"map_link" validate:"omitempty,url"`
	Capacity   int     `json:"capacity" validate:"required,min=1"`
	SizeSqft   int     `json:"size_sqft" validate:"omitempty,min=0"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

// UpdateRequest for PUT /studios/{id}
type UpdateRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=200"`
	Area       string  `json:"area" validate:"required,max=200"`
	City       string  `json:"city" validate:"required,max=100"`
	State      string  `json:"state" validate:"required,max=100"`
	MapLink    string  `json:"map_link" validate:"omitempty,url"`
	Capacity   int     `json:"capacity" validate:"required,min=1"`
	SizeSqft   int     `json:"size_sqft" validate:"omitempty,min=0"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
	IsActive   *bool   `json:"is_active" validate:"required"`
}

// Response represents a studio in API responses
type Response struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Area       string    `json:"area"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	MapLink    string    `json:"map_link,omitempty"`
	Capacity   int       `json:"capacity"`
	SizeSqft   int       `json:"size_sqft"`
	HourlyRate float64   `json:"hourly_rate"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  string    `json:"created_at"`
}

// NewResponse maps a Studio entity to its API shape
func NewResponse(s *Studio) Response {
	return Response{
		ID:         s.ID,
		Name:       s.Name,
		Area:       s.Area,
		City:       s.City,
		State:      s.State,
		MapLink:    s.MapLink.String,
		Capacity:   s.Capacity,
		SizeSqft:   s.SizeSqft,
		HourlyRate: s.HourlyRate,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}
