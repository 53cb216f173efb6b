package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imc/imc-api/internal/domain/booking"
)

type fakeBookings struct {
	counts []int // consumed in call order: today, this week
	calls  int
	err    error
}

func (f *fakeBookings) List(ctx context.Context, filter booking.ListFilter) ([]*booking.Booking, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	n := f.counts[f.calls]
	f.calls++
	return nil, n, nil
}

type fakePayments struct{ total float64 }

func (f *fakePayments) Total(ctx context.Context, from, to time.Time) (float64, error) {
	return f.total, nil
}

type fakeStock struct{ low int }

func (f *fakeStock) CountLowStock(ctx context.Context) (int, error) { return f.low, nil }

type fakeListings struct{ upcoming int }

func (f *fakeListings) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	return f.upcoming, nil
}

func TestSummary(t *testing.T) {
	h := NewHandler(
		&fakeBookings{counts: []int{3, 11}},
		&fakePayments{total: 45250.50},
		&fakeStock{low: 2},
		&fakeListings{upcoming: 4},
	)

	rr := httptest.NewRecorder()
	h.Summary(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var out struct {
		Data Summary `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := Summary{
		BookingsToday:    3,
		BookingsThisWeek: 11,
		RevenueTotal:     45250.50,
		LowStockCount:    2,
		UpcomingListings: 4,
	}
	if out.Data != want {
		t.Errorf("summary = %+v, want %+v", out.Data, want)
	}
}

func TestSummaryRepositoryError(t *testing.T) {
	h := NewHandler(
		&fakeBookings{err: errors.New("db down")},
		&fakePayments{},
		&fakeStock{},
		&fakeListings{},
	)

	rr := httptest.NewRecorder()
	h.Summary(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
