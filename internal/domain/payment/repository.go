package payment

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

// ErrNotFound is returned for unknown payment IDs.
var ErrNotFound = errors.New("payment not found")

// Repository defines payment data access interface
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, f ListFilter) ([]*Payment, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Total sums amounts, optionally within [from, to].
	Total(ctx context.Context, from, to time.Time) (float64, error)
}

// ListFilter narrows a payment listing.
type ListFilter struct {
	Search string // matches customer name, reference
	Method string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new payment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (id, customer_name, amount, method, reference, paid_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.CustomerName, p.Amount, p.Method, p.Reference, p.PaidAt, p.Notes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("payment repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, `SELECT * FROM payments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("payment repository get: %w", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Payment, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if f.Method != "" {
		args = append(args, f.Method)
		conds = append(conds, fmt.Sprintf("method = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("paid_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("paid_at <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(customer_name ILIKE $%d OR reference ILIKE $%d)", n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM payments WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("payment repository count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT * FROM payments WHERE %s ORDER BY paid_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	payments := []*Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("payment repository list: %w", err)
	}
	return payments, total, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("payment repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Total(ctx context.Context, from, to time.Time) (float64, error) {
	conds := []string{"1=1"}
	args := []interface{}{}
	if !from.IsZero() {
		args = append(args, from)
		conds = append(conds, fmt.Sprintf("paid_at >= $%d", len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		conds = append(conds, fmt.Sprintf("paid_at <= $%d", len(args)))
	}

	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE ` + strings.Join(conds, " AND ")
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("payment repository total: %w", err)
	}
	return total, nil
}
