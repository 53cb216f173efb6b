// Package equipment manages the rental inventory: the equipment catalog
// and the rental ledger that stock availability is computed from.
package equipment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Equipment status values
const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Rental status values
const (
	RentalBooked    = "booked"
	RentalPicked    = "picked"
	RentalReturned  = "returned"
	RentalCancelled = "cancelled"
)

// Equipment is one catalog item with total stock.
type Equipment struct {
	ID                uuid.UUID      `db:"id"`
	Name              string         `db:"name"`
	Category          string         `db:"category"`
	Brand             string         `db:"brand"`
	SKU               string         `db:"sku"`
	RatePerDay        float64        `db:"rate_per_day"`
	Stock             int            `db:"stock"`
	LowStockThreshold int            `db:"low_stock_threshold"`
	Status            string         `db:"status"`
	PhotoURL          sql.NullString `db:"photo_url"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// Rental is one ledger entry against an equipment item. The per-day rate
// is snapshotted at booking time so later catalog edits don't reprice it.
type Rental struct {
	ID          uuid.UUID `db:"id"`
	EquipmentID uuid.UUID `db:"equipment_id"`

	CustomerName string `db:"customer_name"`
	ContactNo    string `db:"contact_no"`

	Quantity  int       `db:"quantity"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`

	Status     string  `db:"status"`
	RatePerDay float64 `db:"rate_per_day"`
	TotalPrice float64 `db:"total_price"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Days returns the billable rental days, first and last day inclusive.
func (r *Rental) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// Active reports whether the rental still holds stock.
func (r *Rental) Active() bool {
	return r.Status == RentalBooked || r.Status == RentalPicked
}
