package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/staynest/staynest-backend/internal/service"
)

// Scheduler runs periodic maintenance. Currently one job: marking past
// confirmed bookings as completed so guests become eligible to review.
type Scheduler struct {
	cron     *cron.Cron
	bookings service.BookingService
}

func NewScheduler(bookings service.BookingService) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		bookings: bookings,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", s.completeEndedBookings)
	if err != nil {
		return err
	}
	s.cron.Start()
	// Run once at startup so restarts do not delay completion by an hour.
	go s.completeEndedBookings()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) completeEndedBookings() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.bookings.CompleteEnded(ctx, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).Error("booking completion sweep failed")
		return
	}
	if n > 0 {
		logrus.WithField("completed", n).Info("marked ended bookings completed")
	}
}
