package singer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned for unknown singer IDs.
var ErrNotFound = errors.New("singer not found")

// ListFilter narrows roster listings.
type ListFilter struct {
	Search     string
	Genre      string
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository defines singer data access
type Repository interface {
	Create(ctx context.Context, s *Singer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Singer, error)
	List(ctx context.Context, f ListFilter) ([]*Singer, int, error)
	Update(ctx context.Context, s *Singer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates singer repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Singer) error {
	query := `
		INSERT INTO singers (id, name, genre, experience_years, area, city, state,
			rate_per_event, gender, is_active, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Genre, s.ExperienceYears, s.Area, s.City, s.State,
		s.RatePerEvent, s.Gender, s.IsActive, s.PhotoURL, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("singer repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Singer, error) {
	var s Singer
	err := r.db.GetContext(ctx, &s, `SELECT * FROM singers WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("singer repository get: %w", err)
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Singer, int, error) {
	conds := []string{}
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("(lower(name) LIKE $%d OR lower(genre) LIKE $%d)", len(args), len(args)))
	}
	if f.Genre != "" {
		args = append(args, strings.ToLower(f.Genre))
		conds = append(conds, fmt.Sprintf("lower(genre) = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, strings.ToLower(f.City))
		conds = append(conds, fmt.Sprintf("lower(city) = $%d", len(args)))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM singers"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("singer repository count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf("SELECT * FROM singers%s ORDER BY name LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	singers := []*Singer{}
	if err := r.db.SelectContext(ctx, &singers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("singer repository list: %w", err)
	}
	return singers, total, nil
}

func (r *repository) Update(ctx context.Context, s *Singer) error {
	query := `
		UPDATE singers
		SET name = $1, genre = $2, experience_years = $3, area = $4, city = $5,
			state = $6, rate_per_event = $7, gender = $8, is_active = $9,
			photo_url = $10, updated_at = $11
		WHERE id = $12`

	res, err := r.db.ExecContext(ctx, query,
		s.Name, s.Genre, s.ExperienceYears, s.Area, s.City, s.State,
		s.RatePerEvent, s.Gender, s.IsActive, s.PhotoURL, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("singer repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM singers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("singer repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
