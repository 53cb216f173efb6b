// Package videography manages video production projects.
package videography

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Project is one videography job.
type Project struct {
	ID            uuid.UUID      `db:"id"`
	ProjectName   string         `db:"project_name"`
	ClientName    string         `db:"client_name"`
	Editor        sql.NullString `db:"editor"`
	ShootDate     time.Time      `db:"shoot_date"`
	StartTime     string         `db:"start_time"` // "HH:MM"
	DurationHours float64        `db:"duration_hours"`
	Package       string         `db:"package"`
	Price         float64        `db:"price"`
	PaymentMethod string         `db:"payment_method"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Stats aggregates the project table for the admin header cards.
type Stats struct {
	Count        int     `db:"count" json:"count"`
	TotalHours   float64 `db:"total_hours" json:"total_hours"`
	AverageHours float64 `db:"average_hours" json:"average_hours"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
}
