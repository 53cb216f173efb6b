package singer

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for roster entries.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Singer is a performer on the roster available for event bookings.
type Singer struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	Genre           string         `db:"genre"`
	ExperienceYears int            `db:"experience_years"`
	Area            string         `db:"area"`
	City            string         `db:"city"`
	State           string         `db:"state"`
	RatePerEvent    float64        `db:"rate_per_event"`
	Gender          string         `db:"gender"`
	IsActive        bool           `db:"is_active"`
	PhotoURL        sql.NullString `db:"photo_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
