package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access interface
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, f ListFilter) ([]*Booking, int, error)
	ListActiveForStudioDate(ctx context.Context, studioID uuid.UUID, date time.Time) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// ListFilter narrows a booking listing.
type ListFilter struct {
	StudioID         uuid.UUID // zero value means all studios
	UserID           uuid.UUID // zero value means all users
	DateFrom         time.Time
	DateTo           time.Time
	Search           string // matches customer name, email, contact
	IncludeCancelled bool
	Limit            int
	Offset           int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, studio_id, customer_name, contact_no, email, address,
		                      booking_date, time_slot, duration_hours, payment_method, agreed_price,
		                      notes, is_cancelled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.StudioID, b.CustomerName, b.ContactNo, b.Email, b.Address,
		b.BookingDate, b.TimeSlot, b.DurationHours, b.PaymentMethod, b.AgreedPrice,
		b.Notes, b.IsCancelled, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("booking repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking repository get: %w", err)
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Booking, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if !f.IncludeCancelled {
		conds = append(conds, "is_cancelled = FALSE")
	}
	if f.StudioID != uuid.Nil {
		args = append(args, f.StudioID)
		conds = append(conds, fmt.Sprintf("studio_id = $%d", len(args)))
	}
	if f.UserID != uuid.Nil {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if !f.DateFrom.IsZero() {
		args = append(args, f.DateFrom)
		conds = append(conds, fmt.Sprintf("booking_date >= $%d", len(args)))
	}
	if !f.DateTo.IsZero() {
		args = append(args, f.DateTo)
		conds = append(conds, fmt.Sprintf("booking_date <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(customer_name ILIKE $%d OR email ILIKE $%d OR contact_no ILIKE $%d)", n, n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("booking repository count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT * FROM bookings WHERE %s ORDER BY booking_date ASC, time_slot ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("booking repository list: %w", err)
	}
	return bookings, total, nil
}

// ListActiveForStudioDate returns the non-cancelled bookings that the
// availability resolver and conflict check run against.
func (r *repository) ListActiveForStudioDate(ctx context.Context, studioID uuid.UUID, date time.Time) ([]*Booking, error) {
	bookings := []*Booking{}
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT * FROM bookings
		WHERE studio_id = $1 AND booking_date = $2 AND is_cancelled = FALSE
		ORDER BY time_slot ASC`, studioID, date)
	if err != nil {
		return nil, fmt.Errorf("booking repository list for studio date: %w", err)
	}
	return bookings, nil
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	b.UpdatedAt = time.Now()
	query := `
		UPDATE bookings
		SET customer_name = $1, contact_no = $2, email = $3, address = $4,
		    payment_method = $5, agreed_price = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		b.CustomerName, b.ContactNo, b.Email, b.Address,
		b.PaymentMethod, b.AgreedPrice, b.Notes, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("booking repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET is_cancelled = TRUE, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_cancelled = FALSE`, id)
	if err != nil {
		return fmt.Errorf("booking repository cancel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}
