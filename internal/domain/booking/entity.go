// Package booking manages studio rental bookings: the admin ledger, the
// customer portal flow, and the slot availability computation both sit on.
package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Booking represents one studio rental.
type Booking struct {
	ID       uuid.UUID     `db:"id"`
	UserID   uuid.NullUUID `db:"user_id"` // set when booked through the portal
	StudioID uuid.UUID     `db:"studio_id"`

	CustomerName string         `db:"customer_name"`
	ContactNo    string         `db:"contact_no"`
	Email        string         `db:"email"`
	Address      sql.NullString `db:"address"`

	BookingDate   time.Time `db:"booking_date"`
	TimeSlot      string    `db:"time_slot"` // "HH:MM" grid start
	DurationHours float64   `db:"duration_hours"`

	PaymentMethod string          `db:"payment_method"`
	AgreedPrice   float64         `db:"agreed_price"`
	Notes         sql.NullString  `db:"notes"`
	IsCancelled   bool            `db:"is_cancelled"`
	CancelledAt   sql.NullTime    `db:"cancelled_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DateString returns the booking date in wire format.
func (b *Booking) DateString() string {
	return b.BookingDate.Format(DateLayout)
}
