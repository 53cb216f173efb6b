package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/availability"
	"github.com/imc/imc-api/internal/domain/studio"
	"github.com/imc/imc-api/internal/pkg/email"
	"github.com/imc/imc-api/internal/realtime"
)

// availabilityCacheTTL bounds how stale a cached slot grid can get. The
// cache is invalidated on every create/cancel, so the TTL only covers
// writes from other instances when Redis pub/sub is not configured.
const availabilityCacheTTL = 30 * time.Second

const keyPrefixAvailability = "avail:"

// StudioGetter is the slice of the studio repository the booking service needs.
type StudioGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error)
}

// Broadcaster pushes booking events to open availability views.
type Broadcaster interface {
	Broadcast(event *realtime.Event)
}

// GridConfig is the booking grid the studio operates on.
type GridConfig struct {
	Open        string // "HH:MM"
	Close       string // "HH:MM"
	StepMinutes int
}

// Service handles booking business logic
type Service struct {
	repo    Repository
	studios StudioGetter
	grid    GridConfig
	redis   *redis.Client // nil if Redis disabled
	mailer  email.Sender  // nil disables confirmations
	hub     Broadcaster   // nil disables realtime events
}

// NewService creates booking service
func NewService(repo Repository, studios StudioGetter, grid GridConfig, redisClient *redis.Client, mailer email.Sender, hub Broadcaster) *Service {
	return &Service{
		repo:    repo,
		studios: studios,
		grid:    grid,
		redis:   redisClient,
		mailer:  mailer,
		hub:     hub,
	}
}

// Availability computes the slot grid for a studio and date. Each slot
// reports both predicates: booked (the slot interval itself intersects a
// booking) and can_start (a booking of the requested duration could begin
// there). The grid a client renders is a snapshot; create re-checks.
func (s *Service) Availability(ctx context.Context, studioID uuid.UUID, dateStr string, durationHours float64) (*AvailabilityResponse, error) {
	st, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		return nil, ErrStudioNotFound
	}
	if !st.IsActive {
		return nil, ErrStudioInactive
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	intervals, err := s.loadIntervals(ctx, studioID, date)
	if err != nil {
		return nil, err
	}

	slots := availability.Generate(s.grid.Open, s.grid.Close, s.grid.StepMinutes)
	resolver := availability.NewResolver(slots, s.grid.StepMinutes, intervals)

	resolved := resolver.Resolve()
	out := make([]SlotResponse, 0, len(resolved))
	for _, sa := range resolved {
		out = append(out, newSlotResponse(sa, resolver.CanStartAt(sa.Slot, durationHours)))
	}

	return &AvailabilityResponse{
		StudioID:      studioID,
		Date:          dateStr,
		DurationHours: durationHours,
		StepMinutes:   s.grid.StepMinutes,
		Slots:         out,
	}, nil
}

// Create books a slot. The conflict check runs against fresh repository
// state, never the cache: a client holding a stale grid gets ErrSlotConflict
// and re-fetches, last write wins.
func (s *Service) Create(ctx context.Context, req *CreateRequest, userID uuid.UUID) (*Booking, error) {
	st, err := s.studios.GetByID(ctx, req.StudioID)
	if err != nil {
		return nil, ErrStudioNotFound
	}
	if !st.IsActive {
		return nil, ErrStudioInactive
	}

	date, err := time.Parse(DateLayout, req.BookingDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListActiveForStudioDate(ctx, req.StudioID, date)
	if err != nil {
		return nil, err
	}

	start, err := availability.ParseClock(req.TimeSlot)
	if err != nil {
		return nil, ErrSlotDoesNotFit
	}

	slots := availability.Generate(s.grid.Open, s.grid.Close, s.grid.StepMinutes)
	resolver := availability.NewResolver(slots, s.grid.StepMinutes, nil)
	if resolver.RangeForStart(availability.Slot(start), req.DurationHours) == nil {
		return nil, ErrSlotDoesNotFit
	}

	for _, b := range existing {
		if availability.Overlaps(req.TimeSlot, req.DurationHours, b.TimeSlot, b.DurationHours) {
			return nil, ErrSlotConflict
		}
	}

	now := time.Now()
	bk := &Booking{
		ID:            uuid.New(),
		StudioID:      req.StudioID,
		CustomerName:  req.CustomerName,
		ContactNo:     req.ContactNo,
		Email:         req.Email,
		BookingDate:   date,
		TimeSlot:      req.TimeSlot,
		DurationHours: req.DurationHours,
		PaymentMethod: req.PaymentMethod,
		AgreedPrice:   req.AgreedPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if userID != uuid.Nil {
		bk.UserID = uuid.NullUUID{UUID: userID, Valid: true}
	}
	if req.Address != "" {
		bk.Address = sql.NullString{String: req.Address, Valid: true}
	}
	if req.Notes != "" {
		bk.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := s.repo.Create(ctx, bk); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, bk.StudioID, bk.DateString())
	s.broadcast(realtime.EventBookingCreated, bk)
	s.sendConfirmation(ctx, bk, st)

	return bk, nil
}

// Cancel soft-cancels a booking. Customers may only cancel their own.
func (s *Service) Cancel(ctx context.Context, id, requesterID uuid.UUID, staff bool) (*Booking, error) {
	bk, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !staff {
		if !bk.UserID.Valid || bk.UserID.UUID != requesterID {
			return nil, ErrNotOwner
		}
	}
	if bk.IsCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return nil, err
	}
	bk.IsCancelled = true

	s.invalidateCache(ctx, bk.StudioID, bk.DateString())
	s.broadcast(realtime.EventBookingCancelled, bk)

	return bk, nil
}

// Get returns one booking
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// Update edits contact and billing details of a booking
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Booking, error) {
	bk, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bk.CustomerName = req.CustomerName
	bk.ContactNo = req.ContactNo
	bk.Email = req.Email
	bk.Address = sql.NullString{String: req.Address, Valid: req.Address != ""}
	bk.PaymentMethod = req.PaymentMethod
	bk.AgreedPrice = req.AgreedPrice
	bk.Notes = sql.NullString{String: req.Notes, Valid: req.Notes != ""}

	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}
	return bk, nil
}

// List returns bookings matching the filter
func (s *Service) List(ctx context.Context, f ListFilter) ([]*Booking, int, error) {
	return s.repo.List(ctx, f)
}

// Upcoming returns non-cancelled bookings in the next N days
func (s *Service) Upcoming(ctx context.Context, days, limit, offset int) ([]*Booking, int, error) {
	if days < 1 {
		days = 7
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.List(ctx, ListFilter{
		DateFrom: today,
		DateTo:   today.AddDate(0, 0, days),
		Limit:    limit,
		Offset:   offset,
	})
}

// loadIntervals returns the occupied intervals for studio+date, via the
// short-TTL Redis snapshot when available.
func (s *Service) loadIntervals(ctx context.Context, studioID uuid.UUID, date time.Time) ([]availability.Booking, error) {
	key := keyPrefixAvailability + studioID.String() + ":" + date.Format(DateLayout)

	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			var cached []availability.Booking
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	existing, err := s.repo.ListActiveForStudioDate(ctx, studioID, date)
	if err != nil {
		return nil, err
	}

	intervals := make([]availability.Booking, 0, len(existing))
	for _, b := range existing {
		intervals = append(intervals, availability.Booking{
			StartTime:     b.TimeSlot,
			DurationHours: b.DurationHours,
		})
	}

	if s.redis != nil {
		if data, err := json.Marshal(intervals); err == nil {
			if err := s.redis.Set(ctx, key, data, availabilityCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to cache availability snapshot")
			}
		}
	}

	return intervals, nil
}

func (s *Service) invalidateCache(ctx context.Context, studioID uuid.UUID, date string) {
	if s.redis == nil {
		return
	}
	key := keyPrefixAvailability + studioID.String() + ":" + date
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to invalidate availability snapshot")
	}
}

func (s *Service) broadcast(eventType realtime.EventType, bk *Booking) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(&realtime.Event{
		Type:      eventType,
		StudioID:  bk.StudioID,
		Date:      bk.DateString(),
		TimeSlot:  bk.TimeSlot,
		Duration:  bk.DurationHours,
		BookingID: bk.ID,
	})
}

func (s *Service) sendConfirmation(ctx context.Context, bk *Booking, st *studio.Studio) {
	if s.mailer == nil {
		return
	}
	msg := email.BookingConfirmation(bk.Email, bk.CustomerName, st.Name, bk.DateString(), bk.TimeSlot, bk.DurationHours)
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("booking_id", bk.ID.String()).Msg("failed to send booking confirmation")
	}
}
