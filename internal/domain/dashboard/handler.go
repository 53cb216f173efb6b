package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/domain/booking"
	"github.com/imc/imc-api/internal/pkg/response"
)

// BookingCounter is the slice of the booking repository the dashboard needs.
type BookingCounter interface {
	List(ctx context.Context, f booking.ListFilter) ([]*booking.Booking, int, error)
}

// RevenueTotaler reports total payment revenue for a period.
type RevenueTotaler interface {
	Total(ctx context.Context, from, to time.Time) (float64, error)
}

// StockCounter reports items at or below their low-stock threshold.
type StockCounter interface {
	CountLowStock(ctx context.Context) (int, error)
}

// UpcomingCounter reports events and shows dated today or later.
type UpcomingCounter interface {
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
}

// Summary is the admin dashboard payload.
type Summary struct {
	BookingsToday    int     `json:"bookings_today"`
	BookingsThisWeek int     `json:"bookings_this_week"`
	RevenueTotal     float64 `json:"revenue_total"`
	LowStockCount    int     `json:"low_stock_count"`
	UpcomingListings int     `json:"upcoming_listings"`
}

// Handler serves the admin dashboard aggregates
type Handler struct {
	bookings BookingCounter
	payments RevenueTotaler
	stock    StockCounter
	listings UpcomingCounter
}

// NewHandler creates dashboard handler
func NewHandler(bookings BookingCounter, payments RevenueTotaler, stock StockCounter, listings UpcomingCounter) *Handler {
	return &Handler{bookings: bookings, payments: payments, stock: stock, listings: listings}
}

// Summary handles GET /dashboard
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Monday-based week.
	offset := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var s Summary

	_, count, err := h.bookings.List(ctx, booking.ListFilter{DateFrom: today, DateTo: today, Limit: 1})
	if err != nil {
		log.Error().Err(err).Msg("dashboard: bookings today")
		response.InternalError(w)
		return
	}
	s.BookingsToday = count

	_, count, err = h.bookings.List(ctx, booking.ListFilter{DateFrom: weekStart, DateTo: weekEnd, Limit: 1})
	if err != nil {
		log.Error().Err(err).Msg("dashboard: bookings this week")
		response.InternalError(w)
		return
	}
	s.BookingsThisWeek = count

	s.RevenueTotal, err = h.payments.Total(ctx, time.Time{}, time.Time{})
	if err != nil {
		log.Error().Err(err).Msg("dashboard: revenue total")
		response.InternalError(w)
		return
	}

	s.LowStockCount, err = h.stock.CountLowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: low stock count")
		response.InternalError(w)
		return
	}

	s.UpcomingListings, err = h.listings.CountUpcoming(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: upcoming listings")
		response.InternalError(w)
		return
	}

	response.OK(w, s)
}

// Routes returns the dashboard router, staff-only.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(staffOnly)

	r.Get("/", h.Summary)

	return r
}
