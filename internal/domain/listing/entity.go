// Package listing manages the public event calendar. Events and shows
// share one table and one code path; a Kind discriminator keeps the two
// admin pages and URL trees apart.
package listing

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two listing flavors.
type Kind string

const (
	KindEvent Kind = "event"
	KindShow  Kind = "show"
)

// Listing is one event or show.
type Listing struct {
	ID          uuid.UUID      `db:"id"`
	Kind        Kind           `db:"kind"`
	Title       string         `db:"title"`
	Location    string         `db:"location"`
	EventDate   time.Time      `db:"event_date"`
	StartTime   sql.NullString `db:"start_time"` // "HH:MM", optional
	TicketPrice float64        `db:"ticket_price"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
