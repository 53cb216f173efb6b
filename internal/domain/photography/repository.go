package photography

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

// ErrNotFound is returned for unknown shoot IDs.
var ErrNotFound = errors.New("photography booking not found")

// Repository defines photography data access interface
type Repository interface {
	Create(ctx context.Context, s *Shoot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shoot, error)
	List(ctx context.Context, search, eventType string, limit, offset int) ([]*Shoot, int, error)
	Update(ctx context.Context, s *Shoot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photography repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Shoot) error {
	query := `
		INSERT INTO photography_shoots (id, client_name, contact_no, event_type, package,
		        shoot_date, start_time, duration_hours, photographers, videographers,
		        drone_coverage, base_price, discount_percent, tax_percent, payment_method,
		        notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ClientName, s.ContactNo, s.EventType, s.Package,
		s.ShootDate, s.StartTime, s.DurationHours, s.Photographers, s.Videographers,
		s.DroneCoverage, s.BasePrice, s.DiscountPercent, s.TaxPercent, s.PaymentMethod,
		s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("photography repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Shoot, error) {
	var s Shoot
	err := r.db.GetContext(ctx, &s, `SELECT * FROM photography_shoots WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("photography repository get: %w", err)
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, search, eventType string, limit, offset int) ([]*Shoot, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if eventType != "" {
		args = append(args, eventType)
		conds = append(conds, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(client_name ILIKE $%d OR contact_no ILIKE $%d)", n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM photography_shoots WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("photography repository count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT * FROM photography_shoots WHERE %s ORDER BY shoot_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	shoots := []*Shoot{}
	if err := r.db.SelectContext(ctx, &shoots, query, args...); err != nil {
		return nil, 0, fmt.Errorf("photography repository list: %w", err)
	}
	return shoots, total, nil
}

func (r *repository) Update(ctx context.Context, s *Shoot) error {
	s.UpdatedAt = time.Now()
	query := `
		UPDATE photography_shoots
		SET client_name = $1, contact_no = $2, event_type = $3, package = $4,
		    shoot_date = $5, start_time = $6, duration_hours = $7,
		    photographers = $8, videographers = $9, drone_coverage = $10,
		    base_price = $11, discount_percent = $12, tax_percent = $13,
		    payment_method = $14, notes = $15, updated_at = $16
		WHERE id = $17
	`
	res, err := r.db.ExecContext(ctx, query,
		s.ClientName, s.ContactNo, s.EventType, s.Package,
		s.ShootDate, s.StartTime, s.DurationHours,
		s.Photographers, s.Videographers, s.DroneCoverage,
		s.BasePrice, s.DiscountPercent, s.TaxPercent,
		s.PaymentMethod, s.Notes, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("photography repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photography_shoots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("photography repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
