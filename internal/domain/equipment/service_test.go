package equipment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeEquipmentRepo struct {
	equipment *Equipment
	rentals   map[uuid.UUID]*Rental
	rentedBy  map[string]int // date string -> quantity out
	created   *Rental
	statusSet string
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, e *Equipment) error { return nil }

func (f *fakeEquipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*Equipment, error) {
	if f.equipment == nil || f.equipment.ID != id {
		return nil, ErrNotFound
	}
	return f.equipment, nil
}

func (f *fakeEquipmentRepo) List(ctx context.Context, filter ListFilter) ([]*Equipment, int, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepo) Update(ctx context.Context, e *Equipment) error { return nil }
func (f *fakeEquipmentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeEquipmentRepo) CountLowStock(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeEquipmentRepo) CreateRental(ctx context.Context, r *Rental) error {
	f.created = r
	return nil
}

func (f *fakeEquipmentRepo) GetRental(ctx context.Context, id uuid.UUID) (*Rental, error) {
	if r, ok := f.rentals[id]; ok {
		return r, nil
	}
	return nil, ErrRentalNotFound
}

func (f *fakeEquipmentRepo) ListRentals(ctx context.Context, filter RentalFilter) ([]*Rental, int, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepo) UpdateRentalStatus(ctx context.Context, id uuid.UUID, status string) error {
	f.statusSet = status
	return nil
}

func (f *fakeEquipmentRepo) RentedQuantity(ctx context.Context, equipmentID uuid.UUID, day time.Time) (int, error) {
	return f.rentedBy[day.Format("2006-01-02")], nil
}

func (f *fakeEquipmentRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]*Rental, error) {
	return nil, nil
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse day %s: %v", s, err)
	}
	return d
}

func testEquipment(stock int) *Equipment {
	return &Equipment{
		ID:         uuid.New(),
		Name:       "Shure SM58",
		SKU:        "MIC-SM58",
		RatePerDay: 200,
		Stock:      stock,
		Status:     StatusAvailable,
	}
}

func TestCreateRental(t *testing.T) {
	eq := testEquipment(5)
	repo := &fakeEquipmentRepo{equipment: eq}
	svc := NewService(repo)

	rental, err := svc.CreateRental(context.Background(), eq.ID, "Ravi Menon", "9000000002", 2,
		day(t, "2026-09-10"), day(t, "2026-09-12"))
	if err != nil {
		t.Fatalf("CreateRental: %v", err)
	}
	if repo.created == nil {
		t.Fatal("rental not persisted")
	}
	if rental.Status != RentalBooked {
		t.Errorf("status = %s, want booked", rental.Status)
	}
	// 3 inclusive days x 2 units x 200/day
	if rental.TotalPrice != 1200 {
		t.Errorf("total price = %.2f, want 1200", rental.TotalPrice)
	}
	if rental.RatePerDay != 200 {
		t.Errorf("rate snapshot = %.2f", rental.RatePerDay)
	}
}

func TestCreateRentalStockWalk(t *testing.T) {
	eq := testEquipment(5)

	tests := []struct {
		name     string
		rented   map[string]int
		quantity int
		wantErr  error
	}{
		{"fits every day", map[string]int{"2026-09-10": 2, "2026-09-11": 3}, 2, nil},
		{"middle day short", map[string]int{"2026-09-11": 4}, 2, ErrInsufficientStock},
		{"last day short", map[string]int{"2026-09-12": 5}, 1, ErrInsufficientStock},
		{"exact fit", map[string]int{"2026-09-10": 3}, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEquipmentRepo{equipment: eq, rentedBy: tt.rented}
			svc := NewService(repo)

			_, err := svc.CreateRental(context.Background(), eq.ID, "Ravi Menon", "9000000002", tt.quantity,
				day(t, "2026-09-10"), day(t, "2026-09-12"))
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && repo.created != nil {
				t.Error("rental must not be persisted when stock is short")
			}
		})
	}
}

func TestCreateRentalNotRentable(t *testing.T) {
	for _, status := range []string{StatusMaintenance, StatusRetired} {
		eq := testEquipment(5)
		eq.Status = status
		svc := NewService(&fakeEquipmentRepo{equipment: eq})

		_, err := svc.CreateRental(context.Background(), eq.ID, "Ravi Menon", "9000000002", 1,
			day(t, "2026-09-10"), day(t, "2026-09-10"))
		if err != ErrNotRentable {
			t.Errorf("status %s: err = %v, want ErrNotRentable", status, err)
		}
	}
}

func TestCreateRentalBadRange(t *testing.T) {
	eq := testEquipment(5)
	svc := NewService(&fakeEquipmentRepo{equipment: eq})

	// end before start
	_, err := svc.CreateRental(context.Background(), eq.ID, "Ravi Menon", "9000000002", 1,
		day(t, "2026-09-12"), day(t, "2026-09-10"))
	if err != ErrInsufficientStock {
		t.Errorf("reversed range: err = %v", err)
	}

	// range longer than the walk bound
	_, err = svc.CreateRental(context.Background(), eq.ID, "Ravi Menon", "9000000002", 1,
		day(t, "2026-09-10"), day(t, "2026-12-31"))
	if err != ErrInsufficientStock {
		t.Errorf("oversized range: err = %v", err)
	}
}

func TestRentalTransitions(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		wantErr error
	}{
		{RentalBooked, RentalPicked, nil},
		{RentalBooked, RentalCancelled, nil},
		{RentalBooked, RentalReturned, ErrBadTransition},
		{RentalPicked, RentalReturned, nil},
		{RentalPicked, RentalCancelled, ErrBadTransition},
		{RentalReturned, RentalPicked, ErrBadTransition},
		{RentalCancelled, RentalBooked, ErrBadTransition},
	}
	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			rental := &Rental{ID: uuid.New(), Status: tt.from}
			repo := &fakeEquipmentRepo{rentals: map[uuid.UUID]*Rental{rental.ID: rental}}
			svc := NewService(repo)

			got, err := svc.Transition(context.Background(), rental.ID, tt.to)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if got.Status != tt.to {
					t.Errorf("status = %s, want %s", got.Status, tt.to)
				}
				if repo.statusSet != tt.to {
					t.Errorf("repository status = %s", repo.statusSet)
				}
			}
		})
	}
}

func TestAvailabilityOnDate(t *testing.T) {
	eq := testEquipment(5)
	repo := &fakeEquipmentRepo{equipment: eq, rentedBy: map[string]int{"2026-09-10": 3}}
	svc := NewService(repo)

	avail, err := svc.AvailabilityOnDate(context.Background(), eq.ID, day(t, "2026-09-10"))
	if err != nil {
		t.Fatalf("AvailabilityOnDate: %v", err)
	}
	if avail.Stock != 5 || avail.Rented != 3 || avail.Available != 2 {
		t.Errorf("availability = %+v", avail)
	}

	eq.Status = StatusMaintenance
	avail, err = svc.AvailabilityOnDate(context.Background(), eq.ID, day(t, "2026-09-10"))
	if err != nil {
		t.Fatalf("AvailabilityOnDate: %v", err)
	}
	if avail.Available != 0 {
		t.Errorf("maintenance item should report 0 available, got %d", avail.Available)
	}
}
