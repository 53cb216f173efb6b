package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/domain/booking"
	"github.com/imc/imc-api/internal/domain/equipment"
	"github.com/imc/imc-api/internal/pkg/email"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs the recurring background jobs: day-before booking
// reminders and the overdue rental sweep.
type Scheduler struct {
	cron      *cron.Cron
	bookings  booking.Repository
	studios   booking.StudioGetter
	equipment equipment.Repository
	mailer    email.Sender // nil disables reminder mail
}

// NewScheduler creates the job scheduler
func NewScheduler(bookings booking.Repository, studios booking.StudioGetter, equipmentRepo equipment.Repository, mailer email.Sender) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		bookings:  bookings,
		studios:   studios,
		equipment: equipmentRepo,
		mailer:    mailer,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", s.sendBookingReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 8 * * *", s.sweepOverdueRentals); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Msg("job scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("job scheduler stopped")
}

// sendBookingReminders mails every customer with a booking tomorrow.
func (s *Scheduler) sendBookingReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if s.mailer == nil {
		return
	}

	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	bookings, _, err := s.bookings.List(ctx, booking.ListFilter{
		DateFrom: tomorrow,
		DateTo:   tomorrow,
		Limit:    500,
	})
	if err != nil {
		log.Error().Err(err).Msg("reminder job: list bookings")
		return
	}

	sent := 0
	for _, b := range bookings {
		if b.Email == "" {
			continue
		}
		studioName := "the studio"
		if st, err := s.studios.GetByID(ctx, b.StudioID); err == nil {
			studioName = st.Name
		}
		msg := email.BookingReminder(b.Email, b.CustomerName, studioName, b.DateString(), b.TimeSlot)
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.Error().Err(err).Str("booking_id", b.ID.String()).Msg("reminder job: send failed")
			continue
		}
		sent++
	}
	log.Info().Int("sent", sent).Int("bookings", len(bookings)).Msg("booking reminders dispatched")
}

// sweepOverdueRentals logs rentals still out past their end date so staff
// can chase them up.
func (s *Scheduler) sweepOverdueRentals() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	today := time.Now().Truncate(24 * time.Hour)
	overdue, err := s.equipment.ListOverdue(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("overdue sweep: list rentals")
		return
	}

	for _, r := range overdue {
		log.Warn().
			Str("rental_id", r.ID.String()).
			Str("equipment_id", r.EquipmentID.String()).
			Str("customer", r.CustomerName).
			Str("contact", r.ContactNo).
			Time("end_date", r.EndDate).
			Msg("rental overdue")
	}
	log.Info().Int("overdue", len(overdue)).Msg("overdue rental sweep complete")
}
