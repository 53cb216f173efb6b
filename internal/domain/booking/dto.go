package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/imc/imc-api/internal/availability"
)

// CreateRequest for POST /bookings
type CreateRequest struct {
	StudioID      uuid.UUID `json:"studio_id" validate:"required"`
	CustomerName  string    `json:"customer_name" validate:"required,min=2,max=200"`
	ContactNo     string    `json:"contact_no" validate:"required,min=7,max=20"`
	Email         string    `json:"email" validate:"required,email"`
	Address       string    `json:"address" validate:"omitempty,max=500"`
	BookingDate   string    `json:"booking_date" validate:"required,isodate"`
	TimeSlot      string    `json:"time_slot" validate:"required,hhmm"`
	DurationHours float64   `json:"duration_hours" validate:"required,gte=0.5,lte=14"`
	PaymentMethod string    `json:"payment_method" validate:"required,payment_method"`
	AgreedPrice   float64   `json:"agreed_price" validate:"gte=0"`
	Notes         string    `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateRequest for PUT /bookings/{id} (staff edits contact and billing
// details; the slot itself is immutable, cancel and rebook to move it)
type UpdateRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=200"`
	ContactNo     string  `json:"contact_no" validate:"required,min=7,max=20"`
	Email         string  `json:"email" validate:"required,email"`
	Address       string  `json:"address" validate:"omitempty,max=500"`
	PaymentMethod string  `json:"payment_method" validate:"required,payment_method"`
	AgreedPrice   float64 `json:"agreed_price" validate:"gte=0"`
	Notes         string  `json:"notes" validate:"omitempty,max=1000"`
}

// Response represents a booking in API responses
type Response struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	StudioID      uuid.UUID `json:"studio_id"`
	CustomerName  string    `json:"customer_name"`
	ContactNo     string    `json:"contact_no"`
	Email         string    `json:"email"`
	Address       string    `json:"address,omitempty"`
	BookingDate   string    `json:"booking_date"`
	TimeSlot      string    `json:"time_slot"`
	DurationHours float64   `json:"duration_hours"`
	PaymentMethod string    `json:"payment_method"`
	AgreedPrice   float64   `json:"agreed_price"`
	Notes         string    `json:"notes,omitempty"`
	IsCancelled   bool      `json:"is_cancelled"`
	CreatedAt     string    `json:"created_at"`
}

// NewResponse maps a Booking entity to its API shape
func NewResponse(b *Booking) Response {
	resp := Response{
		ID:            b.ID,
		StudioID:      b.StudioID,
		CustomerName:  b.CustomerName,
		ContactNo:     b.ContactNo,
		Email:         b.Email,
		Address:       b.Address.String,
		BookingDate:   b.DateString(),
		TimeSlot:      b.TimeSlot,
		DurationHours: b.DurationHours,
		PaymentMethod: b.PaymentMethod,
		AgreedPrice:   b.AgreedPrice,
		Notes:         b.Notes.String,
		IsCancelled:   b.IsCancelled,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if b.UserID.Valid {
		resp.UserID = b.UserID.UUID.String()
	}
	return resp
}

// BlockedByInterval names a booking interval shading a slot.
type BlockedByInterval struct {
	StartTime     string  `json:"start_time"`
	DurationHours float64 `json:"duration_hours"`
}

// SlotResponse is one grid point in an availability response. Booked and
// CanStart answer different questions: Booked shades the slot itself,
// CanStart gates the full requested duration from that slot.
type SlotResponse struct {
	Time      string              `json:"time"`
	Booked    bool                `json:"booked"`
	CanStart  bool                `json:"can_start"`
	BlockedBy []BlockedByInterval `json:"blocked_by,omitempty"`
}

// AvailabilityResponse for GET /bookings/availability
type AvailabilityResponse struct {
	StudioID      uuid.UUID      `json:"studio_id"`
	Date          string         `json:"date"`
	DurationHours float64        `json:"duration_hours"`
	StepMinutes   int            `json:"step_minutes"`
	Slots         []SlotResponse `json:"slots"`
}

func newSlotResponse(sa availability.SlotAvailability, canStart bool) SlotResponse {
	resp := SlotResponse{
		Time:     sa.Slot.String(),
		Booked:   sa.Booked,
		CanStart: canStart,
	}
	for _, b := range sa.BlockedBy {
		resp.BlockedBy = append(resp.BlockedBy, BlockedByInterval{
			StartTime:     b.StartTime,
			DurationHours: b.DurationHours,
		})
	}
	return resp
}
