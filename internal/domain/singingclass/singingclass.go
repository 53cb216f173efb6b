// Package singingclass manages singing-class enrollments.
package singingclass

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

// ErrNotFound is returned for unknown enrollment IDs.
var ErrNotFound = errors.New("enrollment not found")

// Class levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Enrollment is one student's singing-class subscription.
type Enrollment struct {
	ID          uuid.UUID      `db:"id"`
	StudentName string         `db:"student_name"`
	ContactNo   string         `db:"contact_no"`
	Level       string         `db:"level"`
	Weekday     string         `db:"weekday"`   // monday...sunday
	TimeSlot    string         `db:"time_slot"` // "HH:MM"
	MonthlyFee  float64        `db:"monthly_fee"`
	IsActive    bool           `db:"is_active"`
	Notes       sql.NullString `db:"notes"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Repository defines enrollment data access interface
type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)
	List(ctx context.Context, search, level string, activeOnly bool, limit, offset int) ([]*Enrollment, int, error)
	Update(ctx context.Context, e *Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new enrollment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Enrollment) error {
	query := `
		INSERT INTO singing_class_enrollments (id, student_name, contact_no, level, weekday,
		        time_slot, monthly_fee, is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.StudentName, e.ContactNo, e.Level, e.Weekday,
		e.TimeSlot, e.MonthlyFee, e.IsActive, e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("singing class repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error) {
	var e Enrollment
	err := r.db.GetContext(ctx, &e, `SELECT * FROM singing_class_enrollments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("singing class repository get: %w", err)
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, search, level string, activeOnly bool, limit, offset int) ([]*Enrollment, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if level != "" {
		args = append(args, level)
		conds = append(conds, fmt.Sprintf("level = $%d", len(args)))
	}
	if activeOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(student_name ILIKE $%d OR contact_no ILIKE $%d)", n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM singing_class_enrollments WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("singing class repository count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT * FROM singing_class_enrollments WHERE %s ORDER BY student_name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	enrollments := []*Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("singing class repository list: %w", err)
	}
	return enrollments, total, nil
}

func (r *repository) Update(ctx context.Context, e *Enrollment) error {
	e.UpdatedAt = time.Now()
	query := `
		UPDATE singing_class_enrollments
		SET student_name = $1, contact_no = $2, level = $3, weekday = $4,
		    time_slot = $5, monthly_fee = $6, is_active = $7, notes = $8, updated_at = $9
		WHERE id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		e.StudentName, e.ContactNo, e.Level, e.Weekday,
		e.TimeSlot, e.MonthlyFee, e.IsActive, e.Notes, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("singing class repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM singing_class_enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("singing class repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
