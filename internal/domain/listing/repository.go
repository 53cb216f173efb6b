package listing

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

// Repository defines listing data access interface
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, kind Kind, id uuid.UUID) (*Listing, error)
	List(ctx context.Context, f ListFilter) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
}

// ListFilter narrows a listing query.
type ListFilter struct {
	Kind         Kind
	Search       string // matches title, location
	Location     string
	UpcomingFrom time.Time // only listings on/after this date
	Limit        int
	Offset       int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new listing repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Listing) error {
	query := `
		INSERT INTO listings (id, kind, title, location, event_date, start_time, ticket_price, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Kind, l.Title, l.Location, l.EventDate, l.StartTime,
		l.TicketPrice, l.Description, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("listing repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, kind Kind, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.db.GetContext(ctx, &l, `SELECT * FROM listings WHERE id = $1 AND kind = $2`, id, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("listing repository get: %w", err)
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Listing, int, error) {
	conds := []string{"kind = $1"}
	args := []interface{}{f.Kind}

	if f.Location != "" {
		args = append(args, f.Location)
		conds = append(conds, fmt.Sprintf("lower(location) = lower($%d)", len(args)))
	}
	if !f.UpcomingFrom.IsZero() {
		args = append(args, f.UpcomingFrom)
		conds = append(conds, fmt.Sprintf("event_date >= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR location ILIKE $%d)", n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM listings WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("listing repository count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT * FROM listings WHERE %s ORDER BY event_date ASC, title ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	listings := []*Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("listing repository list: %w", err)
	}
	return listings, total, nil
}

func (r *repository) Update(ctx context.Context, l *Listing) error {
	l.UpdatedAt = time.Now()
	query := `
		UPDATE listings
		SET title = $1, location = $2, event_date = $3, start_time = $4,
		    ticket_price = $5, description = $6, updated_at = $7
		WHERE id = $8 AND kind = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		l.Title, l.Location, l.EventDate, l.StartTime,
		l.TicketPrice, l.Description, l.UpdatedAt, l.ID, l.Kind)
	if err != nil {
		return fmt.Errorf("listing repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		return fmt.Errorf("listing repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM listings WHERE event_date >= $1`, from)
	if err != nil {
		return 0, fmt.Errorf("listing repository count upcoming: %w", err)
	}
	return count, nil
}
