package studio

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

// Repository defines studio data access interface
type Repository interface {
	Create(ctx context.Context, s *Studio) error
	GetByID(ctx context.Context, id uuid.UUID) (*Studio, error)
	List(ctx context.Context, f ListFilter) ([]*Studio, int, error)
	Update(ctx context.Context, s *Studio) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListFilter narrows a studio listing.
type ListFilter struct {
	Search     string // matches name, area, city
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new studio repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Studio) error {
	query := `
		INSERT INTO studios (id, name, area, city, state, map_link, capacity, size_sqft, hourly_rate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Area, s.City, s.State, s.MapLink,
		s.Capacity, s.SizeSqft, s.HourlyRate, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("studio repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Studio, error) {
	var s Studio
	err := r.db.GetContext(ctx, &s, `SELECT * FROM studios WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("studio repository get: %w", err)
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Studio, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if f.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if f.City != "" {
		args = append(args, f.City)
		conds = append(conds, fmt.Sprintf("lower(city) = lower($%d)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR area ILIKE $%d OR city ILIKE $%d)", n, n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM studios WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("studio repository count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT * FROM studios WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	studios := []*Studio{}
	if err := r.db.SelectContext(ctx, &studios, query, args...); err != nil {
		return nil, 0, fmt.Errorf("studio repository list: %w", err)
	}
	return studios, total, nil
}

func (r *repository) Update(ctx context.Context, s *Studio) error {
	s.UpdatedAt = time.Now()
	query := `
		UPDATE studios
		SET name = $1, area = $2, city = $3, state = $4, map_link = $5,
		    capacity = $6, size_sqft = $7, hourly_rate = $8, is_active = $9, updated_at = $10
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		s.Name, s.Area, s.City, s.State, s.MapLink,
		s.Capacity, s.SizeSqft, s.HourlyRate, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("studio repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM studios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("studio repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
