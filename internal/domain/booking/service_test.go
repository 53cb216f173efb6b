package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/imc/imc-api/internal/domain/studio"
	"github.com/imc/imc-api/internal/pkg/email"
	"github.com/imc/imc-api/internal/realtime"
)

type fakeRepo struct {
	active     []*Booking
	byID       map[uuid.UUID]*Booking
	created    *Booking
	cancelled  []uuid.UUID
	lastFilter ListFilter
	listErr    error
}

func (f *fakeRepo) Create(ctx context.Context, b *Booking) error {
	f.created = b
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]*Booking, int, error) {
	f.lastFilter = filter
	return f.active, len(f.active), f.listErr
}

func (f *fakeRepo) ListActiveForStudioDate(ctx context.Context, studioID uuid.UUID, date time.Time) ([]*Booking, error) {
	return f.active, f.listErr
}

func (f *fakeRepo) Update(ctx context.Context, b *Booking) error { return nil }

func (f *fakeRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeStudios struct {
	studio *studio.Studio
	err    error
}

func (f *fakeStudios) GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.studio, nil
}

type fakeHub struct {
	events []*realtime.Event
}

func (f *fakeHub) Broadcast(event *realtime.Event) {
	f.events = append(f.events, event)
}

type fakeMailer struct {
	sent []*email.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg *email.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func testGrid() GridConfig {
	return GridConfig{Open: "08:00", Close: "22:00", StepMinutes: 60}
}

func activeStudio() *studio.Studio {
	return &studio.Studio{ID: uuid.New(), Name: "Studio A", IsActive: true}
}

func createRequest(studioID uuid.UUID, slot string, duration float64) *CreateRequest {
	return &CreateRequest{
		StudioID:      studioID,
		CustomerName:  "Asha Rao",
		ContactNo:     "9000000001",
		Email:         "asha@example.com",
		BookingDate:   "2026-09-10",
		TimeSlot:      slot,
		DurationHours: duration,
		PaymentMethod: "UPI",
		AgreedPrice:   1500,
	}
}

func TestCreateBooksFreeSlot(t *testing.T) {
	st := activeStudio()
	repo := &fakeRepo{}
	hub := &fakeHub{}
	mailer := &fakeMailer{}
	svc := NewService(repo, &fakeStudios{studio: st}, testGrid(), nil, mailer, hub)

	userID := uuid.New()
	bk, err := svc.Create(context.Background(), createRequest(st.ID, "10:00", 2), userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected booking to be persisted")
	}
	if !bk.UserID.Valid || bk.UserID.UUID != userID {
		t.Errorf("expected booking linked to user %s", userID)
	}

	if len(hub.events) != 1 {
		t.Fatalf("expected 1 broadcast event, got %d", len(hub.events))
	}
	ev := hub.events[0]
	if ev.Type != realtime.EventBookingCreated {
		t.Errorf("event type = %s, want %s", ev.Type, realtime.EventBookingCreated)
	}
	if ev.TimeSlot != "10:00" || ev.Date != "2026-09-10" {
		t.Errorf("event slot/date = %s %s", ev.TimeSlot, ev.Date)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected confirmation email, got %d messages", len(mailer.sent))
	}
	if mailer.sent[0].To != "asha@example.com" {
		t.Errorf("confirmation sent to %s", mailer.sent[0].To)
	}
}

func TestCreateAnonymousBooking(t *testing.T) {
	st := activeStudio()
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeStudios{studio: st}, testGrid(), nil, nil, nil)

	bk, err := svc.Create(context.Background(), createRequest(st.ID, "09:00", 1), uuid.Nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if bk.UserID.Valid {
		t.Error("walk-in booking should not be linked to a user")
	}
}

func TestCreateConflict(t *testing.T) {
	st := activeStudio()
	existing := &Booking{TimeSlot: "10:00", DurationHours: 2}

	tests := []struct {
		name     string
		slot     string
		duration float64
		wantErr  error
	}{
		{"same slot", "10:00", 1, ErrSlotConflict},
		{"overlaps tail", "11:00", 1, ErrSlotConflict},
		{"spans existing", "09:00", 4, ErrSlotConflict},
		{"ends at start", "08:00", 2, nil},
		{"starts at end", "12:00", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{active: []*Booking{existing}}
			svc := NewService(repo, &fakeStudios{studio: st}, testGrid(), nil, nil, nil)

			_, err := svc.Create(context.Background(), createRequest(st.ID, tt.slot, tt.duration), uuid.Nil)
			if !errors.Is(err, tt.wantErr) && err != tt.wantErr {
				t.Fatalf("Create(%s, %.1fh) err = %v, want %v", tt.slot, tt.duration, err, tt.wantErr)
			}
			if tt.wantErr != nil && repo.created != nil {
				t.Error("conflicting booking must not be persisted")
			}
		})
	}
}

func TestCreateSlotDoesNotFit(t *testing.T) {
	st := activeStudio()

	tests := []struct {
		name     string
		slot     string
		duration float64
	}{
		{"runs past the grid", "22:00", 2},
		{"off the hourly grid", "08:30", 1},
		{"before opening", "07:00", 1},
		{"not a clock time", "25:00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo, &fakeStudios{studio: st}, testGrid(), nil, nil, nil)

			_, err := svc.Create(context.Background(), createRequest(st.ID, tt.slot, tt.duration), uuid.Nil)
			if err != ErrSlotDoesNotFit {
				t.Fatalf("Create(%s, %.1fh) err = %v, want ErrSlotDoesNotFit", tt.slot, tt.duration, err)
			}
			if repo.created != nil {
				t.Error("out-of-grid booking must not be persisted")
			}
		})
	}
}

func TestCreateStudioChecks(t *testing.T) {
	inactive := activeStudio()
	inactive.IsActive = false

	_, err := NewService(&fakeRepo{}, &fakeStudios{studio: inactive}, testGrid(), nil, nil, nil).
		Create(context.Background(), createRequest(inactive.ID, "10:00", 1), uuid.Nil)
	if err != ErrStudioInactive {
		t.Errorf("inactive studio: err = %v, want ErrStudioInactive", err)
	}

	_, err = NewService(&fakeRepo{}, &fakeStudios{err: studio.ErrNotFound}, testGrid(), nil, nil, nil).
		Create(context.Background(), createRequest(uuid.New(), "10:00", 1), uuid.Nil)
	if err != ErrStudioNotFound {
		t.Errorf("unknown studio: err = %v, want ErrStudioNotFound", err)
	}
}

func TestAvailabilityGrid(t *testing.T) {
	st := activeStudio()
	repo := &fakeRepo{active: []*Booking{{TimeSlot: "10:00", DurationHours: 2}}}
	svc := NewService(repo, &fakeStudios{studio: st}, testGrid(), nil, nil, nil)

	resp, err := svc.Availability(context.Background(), st.ID, "2026-09-10", 2)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(resp.Slots) != 15 {
		t.Fatalf("expected 15 slots for 08:00-22:00 hourly grid, got %d", len(resp.Slots))
	}

	byTime := map[string]SlotResponse{}
	for _, s := range resp.Slots {
		byTime[s.Time] = s
	}

	if !byTime["10:00"].Booked || !byTime["11:00"].Booked {
		t.Error("slots under the 10:00-12:00 booking should be marked booked")
	}
	if byTime["08:00"].Booked {
		t.Error("08:00 should be free")
	}

	// 2h requested: 09:00 would run into the booking, 12:00 would not
	if byTime["09:00"].CanStart {
		t.Error("2h booking cannot start at 09:00 against a 10:00 occupation")
	}
	if !byTime["12:00"].CanStart {
		t.Error("2h booking should be able to start at 12:00")
	}
	// 22:00 is free but a 2h booking runs past the end of the grid
	if byTime["22:00"].CanStart {
		t.Error("2h booking cannot start on the last slot of the grid")
	}

	if len(byTime["10:00"].BlockedBy) != 1 || byTime["10:00"].BlockedBy[0].StartTime != "10:00" {
		t.Errorf("10:00 blocked_by = %+v", byTime["10:00"].BlockedBy)
	}
}

func TestUpcomingWindowIsLocalMidnight(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeStudios{studio: activeStudio()}, testGrid(), nil, nil, nil)

	if _, _, err := svc.Upcoming(context.Background(), 7, 10, 0); err != nil {
		t.Fatalf("Upcoming: %v", err)
	}

	now := time.Now()
	wantFrom := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	f := repo.lastFilter
	if !f.DateFrom.Equal(wantFrom) {
		t.Errorf("DateFrom = %v, want local midnight %v", f.DateFrom, wantFrom)
	}
	if f.DateFrom.Location() != now.Location() {
		t.Errorf("DateFrom location = %v, want %v", f.DateFrom.Location(), now.Location())
	}
	if !f.DateTo.Equal(wantFrom.AddDate(0, 0, 7)) {
		t.Errorf("DateTo = %v, want %v", f.DateTo, wantFrom.AddDate(0, 0, 7))
	}
}

func TestCancelOwnership(t *testing.T) {
	owner := uuid.New()
	bk := &Booking{
		ID:       uuid.New(),
		StudioID: uuid.New(),
		UserID:   uuid.NullUUID{UUID: owner, Valid: true},
		TimeSlot: "10:00",
	}

	newSvc := func() (*Service, *fakeRepo, *fakeHub) {
		repo := &fakeRepo{byID: map[uuid.UUID]*Booking{bk.ID: bk}}
		hub := &fakeHub{}
		return NewService(repo, &fakeStudios{studio: activeStudio()}, testGrid(), nil, nil, hub), repo, hub
	}

	t.Run("stranger cannot cancel", func(t *testing.T) {
		bk.IsCancelled = false
		svc, repo, _ := newSvc()
		if _, err := svc.Cancel(context.Background(), bk.ID, uuid.New(), false); err != ErrNotOwner {
			t.Fatalf("err = %v, want ErrNotOwner", err)
		}
		if len(repo.cancelled) != 0 {
			t.Error("cancel must not reach the repository")
		}
	})

	t.Run("owner cancels", func(t *testing.T) {
		bk.IsCancelled = false
		svc, repo, hub := newSvc()
		got, err := svc.Cancel(context.Background(), bk.ID, owner, false)
		if err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if !got.IsCancelled || len(repo.cancelled) != 1 {
			t.Error("expected booking cancelled in repository")
		}
		if len(hub.events) != 1 || hub.events[0].Type != realtime.EventBookingCancelled {
			t.Errorf("expected cancellation broadcast, got %+v", hub.events)
		}
	})

	t.Run("staff cancels any booking", func(t *testing.T) {
		bk.IsCancelled = false
		svc, _, _ := newSvc()
		if _, err := svc.Cancel(context.Background(), bk.ID, uuid.New(), true); err != nil {
			t.Fatalf("staff cancel: %v", err)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		bk.IsCancelled = true
		svc, _, _ := newSvc()
		if _, err := svc.Cancel(context.Background(), bk.ID, owner, false); err != ErrAlreadyCancelled {
			t.Fatalf("err = %v, want ErrAlreadyCancelled", err)
		}
	})
}
