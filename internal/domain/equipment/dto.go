package equipment

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /equipment
type CreateRequest struct {
	Name              string  `json:"name" validate:"required,min=2,max=200"`
	Category          string  `json:"category" validate:"required,max=100"`
	Brand             string  `json:"brand" validate:"omitempty,max=100"`
	SKU               string  `json:"sku" validate:"required,min=2,max=64"`
	RatePerDay        float64 `json:"rate_per_day" validate:"required,gt=0"`
	Stock             int     `json:"stock" validate:"required,min=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// UpdateRequest for PUT /equipment/{id}
type UpdateRequest struct {
	Name              string  `json:"name" validate:"required,min=2,max=200"`
	Category          string  `json:"category" validate:"required,max=100"`
	Brand             string  `json:"brand" validate:"omitempty,max=100"`
	SKU               string  `json:"sku" validate:"required,min=2,max=64"`
	RatePerDay        float64 `json:"rate_per_day" validate:"required,gt=0"`
	Stock             int     `json:"stock" validate:"required,min=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"omitempty,min=0"`
	Status            string  `json:"status" validate:"required,oneof=available maintenance retired"`
}

// CreateRentalRequest for POST /equipment/{id}/rentals
type CreateRentalRequest struct {
	CustomerName string `json:"customer_name" validate:"required,min=2,max=200"`
	ContactNo    string `json:"contact_no" validate:"required,min=7,max=20"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	StartDate    string `json:"start_date" validate:"required,isodate"`
	EndDate      string `json:"end_date" validate:"required,isodate"`
}

// TransitionRequest for POST /equipment/rentals/{id}/status
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=picked returned cancelled"`
}

// Response represents an equipment item in API responses
type Response struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Brand             string    `json:"brand,omitempty"`
	SKU               string    `json:"sku"`
	RatePerDay        float64   `json:"rate_per_day"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	Status            string    `json:"status"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	CreatedAt         string    `json:"created_at"`
}

// NewResponse maps an Equipment entity to its API shape
func NewResponse(e *Equipment) Response {
	return Response{
		ID:                e.ID,
		Name:              e.Name,
		Category:          e.Category,
		Brand:             e.Brand,
		SKU:               e.SKU,
		RatePerDay:        e.RatePerDay,
		Stock:             e.Stock,
		LowStockThreshold: e.LowStockThreshold,
		Status:            e.Status,
		PhotoURL:          e.PhotoURL.String,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
}

// RentalResponse represents a rental in API responses
type RentalResponse struct {
	ID           uuid.UUID `json:"id"`
	EquipmentID  uuid.UUID `json:"equipment_id"`
	CustomerName string    `json:"customer_name"`
	ContactNo    string    `json:"contact_no"`
	Quantity     int       `json:"quantity"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Days         int       `json:"days"`
	Status       string    `json:"status"`
	RatePerDay   float64   `json:"rate_per_day"`
	TotalPrice   float64   `json:"total_price"`
	CreatedAt    string    `json:"created_at"`
}

// NewRentalResponse maps a Rental entity to its API shape
func NewRentalResponse(r *Rental) RentalResponse {
	return RentalResponse{
		ID:           r.ID,
		EquipmentID:  r.EquipmentID,
		CustomerName: r.CustomerName,
		ContactNo:    r.ContactNo,
		Quantity:     r.Quantity,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Days:         r.Days(),
		Status:       r.Status,
		RatePerDay:   r.RatePerDay,
		TotalPrice:   r.TotalPrice,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}
