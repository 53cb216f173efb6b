// Package photography manages photoshoot bookings.
package photography

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Shoot is one photography booking.
type Shoot struct {
	ID         uuid.UUID `db:"id"`
	ClientName string    `db:"client_name"`
	ContactNo  string    `db:"contact_no"`
	EventType  string    `db:"event_type"` // wedding, birthday, corporate, portfolio...
	Package    string    `db:"package"`

	ShootDate     time.Time `db:"shoot_date"`
	StartTime     string    `db:"start_time"` // "HH:MM"
	DurationHours float64   `db:"duration_hours"`

	Photographers int  `db:"photographers"`
	Videographers int  `db:"videographers"`
	DroneCoverage bool `db:"drone_coverage"`

	BasePrice       float64        `db:"base_price"`
	DiscountPercent float64        `db:"discount_percent"`
	TaxPercent      float64        `db:"tax_percent"`
	PaymentMethod   string         `db:"payment_method"`
	Notes           sql.NullString `db:"notes"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FinalPrice applies discount then tax to the base price.
func (s *Shoot) FinalPrice() float64 {
	discounted := s.BasePrice * (1 - s.DiscountPercent/100)
	return discounted * (1 + s.TaxPercent/100)
}
