package equipment

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

// Repository defines equipment and rental data access
type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Equipment, error)
	List(ctx context.Context, f ListFilter) ([]*Equipment, int, error)
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountLowStock(ctx context.Context) (int, error)

	CreateRental(ctx context.Context, r *Rental) error
	GetRental(ctx context.Context, id uuid.UUID) (*Rental, error)
	ListRentals(ctx context.Context, f RentalFilter) ([]*Rental, int, error)
	UpdateRentalStatus(ctx context.Context, id uuid.UUID, status string) error
	// RentedQuantity sums active rental quantities for an item whose date
	// range covers the given day.
	RentedQuantity(ctx context.Context, equipmentID uuid.UUID, day time.Time) (int, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]*Rental, error)
}

// ListFilter narrows an equipment listing.
type ListFilter struct {
	Search   string // matches name, brand, sku
	Category string
	Status   string
	LowStock bool
	Limit    int
	Offset   int
}

// RentalFilter narrows a rental listing.
type RentalFilter struct {
	EquipmentID uuid.UUID
	Status      string
	Limit       int
	Offset      int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new equipment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Equipment) error {
	query := `
		INSERT INTO equipment (id, name, category, brand, sku, rate_per_day, stock, low_stock_threshold, status, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Category, e.Brand, e.SKU, e.RatePerDay,
		e.Stock, e.LowStockThreshold, e.Status, e.PhotoURL, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSKUTaken
		}
		return fmt.Errorf("equipment repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Equipment, error) {
	var e Equipment
	err := r.db.GetContext(ctx, &e, `SELECT * FROM equipment WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("equipment repository get: %w", err)
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Equipment, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.LowStock {
		conds = append(conds, "stock <= low_stock_threshold")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d OR sku ILIKE $%d)", n, n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM equipment WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("equipment repository count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT * FROM equipment WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	items := []*Equipment{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("equipment repository list: %w", err)
	}
	return items, total, nil
}

func (r *repository) Update(ctx context.Context, e *Equipment) error {
	e.UpdatedAt = time.Now()
	query := `
		UPDATE equipment
		SET name = $1, category = $2, brand = $3, sku = $4, rate_per_day = $5,
		    stock = $6, low_stock_threshold = $7, status = $8, photo_url = $9, updated_at = $10
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		e.Name, e.Category, e.Brand, e.SKU, e.RatePerDay,
		e.Stock, e.LowStockThreshold, e.Status, e.PhotoURL, e.UpdatedAt, e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSKUTaken
		}
		return fmt.Errorf("equipment repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("equipment repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CountLowStock(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM equipment WHERE stock <= low_stock_threshold AND status = $1`, StatusAvailable)
	if err != nil {
		return 0, fmt.Errorf("equipment repository count low stock: %w", err)
	}
	return count, nil
}

func (r *repository) CreateRental(ctx context.Context, rental *Rental) error {
	query := `
		INSERT INTO equipment_rentals (id, equipment_id, customer_name, contact_no, quantity,
		                               start_date, end_date, status, rate_per_day, total_price,
		                               created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		rental.ID, rental.EquipmentID, rental.CustomerName, rental.ContactNo, rental.Quantity,
		rental.StartDate, rental.EndDate, rental.Status, rental.RatePerDay, rental.TotalPrice,
		rental.CreatedAt, rental.UpdatedAt)
	if err != nil {
		return fmt.Errorf("equipment repository create rental: %w", err)
	}
	return nil
}

func (r *repository) GetRental(ctx context.Context, id uuid.UUID) (*Rental, error) {
	var rental Rental
	err := r.db.GetContext(ctx, &rental, `SELECT * FROM equipment_rentals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRentalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("equipment repository get rental: %w", err)
	}
	return &rental, nil
}

func (r *repository) ListRentals(ctx context.Context, f RentalFilter) ([]*Rental, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if f.EquipmentID != uuid.Nil {
		args = append(args, f.EquipmentID)
		conds = append(conds, fmt.Sprintf("equipment_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM equipment_rentals WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("equipment repository count rentals: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT * FROM equipment_rentals WHERE %s ORDER BY start_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rentals := []*Rental{}
	if err := r.db.SelectContext(ctx, &rentals, query, args...); err != nil {
		return nil, 0, fmt.Errorf("equipment repository list rentals: %w", err)
	}
	return rentals, total, nil
}

func (r *repository) UpdateRentalStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment_rentals SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("equipment repository update rental status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRentalNotFound
	}
	return nil
}

func (r *repository) RentedQuantity(ctx context.Context, equipmentID uuid.UUID, day time.Time) (int, error) {
	var rented int
	err := r.db.GetContext(ctx, &rented, `
		SELECT COALESCE(SUM(quantity), 0) FROM equipment_rentals
		WHERE equipment_id = $1 AND status IN ($2, $3)
		  AND start_date <= $4 AND end_date >= $4`,
		equipmentID, RentalBooked, RentalPicked, day)
	if err != nil {
		return 0, fmt.Errorf("equipment repository rented quantity: %w", err)
	}
	return rented, nil
}

func (r *repository) ListOverdue(ctx context.Context, asOf time.Time) ([]*Rental, error) {
	rentals := []*Rental{}
	err := r.db.SelectContext(ctx, &rentals, `
		SELECT * FROM equipment_rentals
		WHERE status = $1 AND end_date < $2
		ORDER BY end_date ASC`, RentalPicked, asOf)
	if err != nil {
		return nil, fmt.Errorf("equipment repository list overdue: %w", err)
	}
	return rentals, nil
}
