package videography

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

// ErrNotFound is returned for unknown project IDs.
var ErrNotFound = errors.New("videography project not found")

// Repository defines videography data access interface
type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, search string, limit, offset int) ([]*Project, int, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new videography repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO videography_projects (id, project_name, client_name, editor, shoot_date,
		        start_time, duration_hours, package, price, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ProjectName, p.ClientName, p.Editor, p.ShootDate,
		p.StartTime, p.DurationHours, p.Package, p.Price, p.PaymentMethod, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("videography repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	err := r.db.GetContext(ctx, &p, `SELECT * FROM videography_projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("videography repository get: %w", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, search string, limit, offset int) ([]*Project, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(project_name ILIKE $%d OR client_name ILIKE $%d OR editor ILIKE $%d)", n, n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM videography_projects WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("videography repository count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT * FROM videography_projects WHERE %s ORDER BY shoot_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	projects := []*Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, 0, fmt.Errorf("videography repository list: %w", err)
	}
	return projects, total, nil
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now()
	query := `
		UPDATE videography_projects
		SET project_name = $1, client_name = $2, editor = $3, shoot_date = $4,
		    start_time = $5, duration_hours = $6, package = $7, price = $8,
		    payment_method = $9, updated_at = $10
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ProjectName, p.ClientName, p.Editor, p.ShootDate,
		p.StartTime, p.DurationHours, p.Package, p.Price,
		p.PaymentMethod, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("videography repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videography_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("videography repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.GetContext(ctx, &s, `
		SELECT COUNT(*) AS count,
		       COALESCE(SUM(duration_hours), 0) AS total_hours,
		       COALESCE(AVG(duration_hours), 0) AS average_hours,
		       COALESCE(SUM(price), 0) AS total_revenue
		FROM videography_projects`)
	if err != nil {
		return nil, fmt.Errorf("videography repository stats: %w", err)
	}
	return &s, nil
}
