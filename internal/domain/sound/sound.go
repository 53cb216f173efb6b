// Package sound manages sound-system hire jobs.
package sound

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

// ErrNotFound is returned for unknown job IDs.
var ErrNotFound = errors.New("sound job not found")

// Job is one sound-system hire.
type Job struct {
	ID            uuid.UUID      `db:"id"`
	CustomerName  string         `db:"customer_name"`
	ContactNo     string         `db:"contact_no"`
	SystemType    string         `db:"system_type"` // PA, line array, monitor rig...
	Speakers      int            `db:"speakers"`
	Microphones   int            `db:"microphones"`
	MixerIncluded bool           `db:"mixer_included"`
	EventDate     time.Time      `db:"event_date"`
	Venue         sql.NullString `db:"venue"`
	Price         float64        `db:"price"`
	PaymentMethod string         `db:"payment_method"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Repository defines sound job data access interface
type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, search, systemType string, limit, offset int) ([]*Job, int, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new sound repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, j *Job) error {
	query := `
		INSERT INTO sound_jobs (id, customer_name, contact_no, system_type, speakers, microphones,
		        mixer_included, event_date, venue, price, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		j.ID, j.CustomerName, j.ContactNo, j.SystemType, j.Speakers, j.Microphones,
		j.MixerIncluded, j.EventDate, j.Venue, j.Price, j.PaymentMethod, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sound repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := r.db.GetContext(ctx, &j, `SELECT * FROM sound_jobs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sound repository get: %w", err)
	}
	return &j, nil
}

func (r *repository) List(ctx context.Context, search, systemType string, limit, offset int) ([]*Job, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if systemType != "" {
		args = append(args, systemType)
		conds = append(conds, fmt.Sprintf("system_type = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(customer_name ILIKE $%d OR venue ILIKE $%d)", n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sound_jobs WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("sound repository count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT * FROM sound_jobs WHERE %s ORDER BY event_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	jobs := []*Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("sound repository list: %w", err)
	}
	return jobs, total, nil
}

func (r *repository) Update(ctx context.Context, j *Job) error {
	j.UpdatedAt = time.Now()
	query := `
		UPDATE sound_jobs
		SET customer_name = $1, contact_no = $2, system_type = $3, speakers = $4,
		    microphones = $5, mixer_included = $6, event_date = $7, venue = $8,
		    price = $9, payment_method = $10, updated_at = $11
		WHERE id = $12
	`
	res, err := r.db.ExecContext(ctx, query,
		j.CustomerName, j.ContactNo, j.SystemType, j.Speakers,
		j.Microphones, j.MixerIncluded, j.EventDate, j.Venue,
		j.Price, j.PaymentMethod, j.UpdatedAt, j.ID)
	if err != nil {
		return fmt.Errorf("sound repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sound_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sound repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
