package equipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// maxRentalDays bounds the per-day stock walk on rental creation.
const maxRentalDays = 60

// Service handles equipment business logic
type Service struct {
	repo Repository
}

// NewService creates equipment service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// StockAvailability reports stock on one day.
type StockAvailability struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	Date        string    `json:"date"`
	Stock       int       `json:"stock"`
	Rented      int       `json:"rented"`
	Available   int       `json:"available"`
}

// AvailabilityOnDate returns stock minus active rentals covering the day.
func (s *Service) AvailabilityOnDate(ctx context.Context, id uuid.UUID, day time.Time) (*StockAvailability, error) {
	eq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rented, err := s.repo.RentedQuantity(ctx, id, day)
	if err != nil {
		return nil, err
	}

	available := eq.Stock - rented
	if eq.Status != StatusAvailable || available < 0 {
		available = 0
	}

	return &StockAvailability{
		EquipmentID: id,
		Date:        day.Format("2006-01-02"),
		Stock:       eq.Stock,
		Rented:      rented,
		Available:   available,
	}, nil
}

// CreateRental books quantity against an item for a date range, checking
// stock for every day of the range.
func (s *Service) CreateRental(ctx context.Context, equipmentID uuid.UUID, customerName, contactNo string, quantity int, start, end time.Time) (*Rental, error) {
	eq, err := s.repo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.Status != StatusAvailable {
		return nil, ErrNotRentable
	}
	if end.Before(start) || int(end.Sub(start).Hours()/24) >= maxRentalDays {
		return nil, ErrInsufficientStock
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rented, err := s.repo.RentedQuantity(ctx, equipmentID, day)
		if err != nil {
			return nil, err
		}
		if eq.Stock-rented < quantity {
			return nil, ErrInsufficientStock
		}
	}

	now := time.Now()
	rental := &Rental{
		ID:           uuid.New(),
		EquipmentID:  equipmentID,
		CustomerName: customerName,
		ContactNo:    contactNo,
		Quantity:     quantity,
		StartDate:    start,
		EndDate:      end,
		Status:       RentalBooked,
		RatePerDay:   eq.RatePerDay,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	rental.TotalPrice = rental.RatePerDay * float64(rental.Quantity) * float64(rental.Days())

	if err := s.repo.CreateRental(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// Transition moves a rental through its lifecycle:
// booked -> picked -> returned, with cancel allowed only before pickup.
func (s *Service) Transition(ctx context.Context, rentalID uuid.UUID, target string) (*Rental, error) {
	rental, err := s.repo.GetRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	allowed := map[string][]string{
		RentalBooked: {RentalPicked, RentalCancelled},
		RentalPicked: {RentalReturned},
	}
	ok := false
	for _, next := range allowed[rental.Status] {
		if next == target {
			ok = true
			break
		}
	}
	if !ok {
		return nil, ErrBadTransition
	}

	if err := s.repo.UpdateRentalStatus(ctx, rentalID, target); err != nil {
		return nil, err
	}
	rental.Status = target
	return rental, nil
}
