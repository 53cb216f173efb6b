// Package studio manages the StudioMaster catalog: the rentable rooms
// that bookings and availability lookups hang off.
package studio

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Studio represents a rentable studio room.
type Studio struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	Area       string         `db:"area"`
	City       string         `db:"city"`
	State      string         `db:"state"`
	MapLink    sql.NullString `db:"map_link"`
	Capacity   int            `db:"capacity"`
	SizeSqft   int            `db:"size_sqft"`
	HourlyRate float64        `db:"hourly_rate"`
	IsActive   bool           `db:"is_active"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
