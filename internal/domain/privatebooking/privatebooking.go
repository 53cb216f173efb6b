// Package privatebooking manages private event bookings: parties and
// functions booked into the studio space outside the normal room grid.
package privatebooking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrNotFound is returned for unknown booking IDs.
var ErrNotFound = errors.New("private booking not found")

// Booking is one private event booking. A booking can be paid through
// several methods (deposit by card, balance in cash), hence the list.
type Booking struct {
	ID             uuid.UUID      `db:"id"`
	CustomerName   string         `db:"customer_name"`
	ContactNo      string         `db:"contact_no"`
	EventType      string         `db:"event_type"`
	Venue          string         `db:"venue"`
	EventDate      time.Time      `db:"event_date"`
	TimeSlot       string         `db:"time_slot"` // "HH:MM"
	DurationHours  float64        `db:"duration_hours"`
	GuestCount     int            `db:"guest_count"`
	PaymentMethods pq.StringArray `db:"payment_methods"`
	Price          float64        `db:"price"`
	Notes          sql.NullString `db:"notes"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// Repository defines private booking data access interface
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, search string, limit, offset int) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new private booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO private_bookings (id, customer_name, contact_no, event_type, venue, event_date,
		        time_slot, duration_hours, guest_count, payment_methods, price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.CustomerName, b.ContactNo, b.EventType, b.Venue, b.EventDate,
		b.TimeSlot, b.DurationHours, b.GuestCount, b.PaymentMethods, b.Price, b.Notes, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("private booking repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM private_bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("private booking repository get: %w", err)
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, search string, limit, offset int) ([]*Booking, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(customer_name ILIKE $%d OR event_type ILIKE $%d OR venue ILIKE $%d)", n, n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM private_bookings WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("private booking repository count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT * FROM private_bookings WHERE %s ORDER BY event_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("private booking repository list: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	b.UpdatedAt = time.Now()
	query := `
		UPDATE private_bookings
		SET customer_name = $1, contact_no = $2, event_type = $3, venue = $4, event_date = $5,
		    time_slot = $6, duration_hours = $7, guest_count = $8, payment_methods = $9,
		    price = $10, notes = $11, updated_at = $12
		WHERE id = $13
	`
	res, err := r.db.ExecContext(ctx, query,
		b.CustomerName, b.ContactNo, b.EventType, b.Venue, b.EventDate,
		b.TimeSlot, b.DurationHours, b.GuestCount, b.PaymentMethods,
		b.Price, b.Notes, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("private booking repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM private_bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("private booking repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
