package service

import (
	"context"
	"errors"
	"time"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/pricing"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/staynest/staynest-backend/internal/repository"
	"gorm.io/gorm"
)

type BookingService interface {
	Create(ctx context.Context, propertyID uint64, guestUID string, checkIn, checkOut time.Time, guests int) (*model.Booking, error)
	ListByGuest(ctx context.Context, guestUID string) ([]model.Booking, error)
	ListByHost(ctx context.Context, hostUID string) ([]model.Booking, error)
	Confirm(ctx context.Context, bookingID uint64, uid string) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID uint64, uid string) (*model.Booking, error)
	CompleteEnded(ctx context.Context, now time.Time) (int, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	cache        *querycache.Cache
	notify       NotificationService
}

func NewBookingService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository, cache *querycache.Cache, notify NotificationService) BookingService {
	return &bookingService{bookingRepo: bookingRepo, propertyRepo: propertyRepo, cache: cache, notify: notify}
}

// Create inserts a pending booking. The guest uid comes from the session, the
// host uid and the total price are derived server-side; the client is never
// trusted with either.
func (s *bookingService) Create(ctx context.Context, propertyID uint64, guestUID string, checkIn, checkOut time.Time, guests int) (*model.Booking, error) {
	if guestUID == "" {
		return nil, ErrUnauthenticated
	}
	if !checkOut.After(checkIn) {
		return nil, errors.New("check-out must be after check-in")
	}
	p, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrNotFound
	}
	if p.HostUID == guestUID {
		return nil, errors.New("cannot book your own property")
	}
	if guests <= 0 {
		guests = 1
	}
	if guests > p.MaxGuests {
		return nil, errors.New("too many guests for this property")
	}

	b := &model.Booking{
		PropertyID: propertyID,
		GuestUID:   guestUID,
		HostUID:    p.HostUID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: pricing.Total(checkIn, checkOut, p.PricePerNight),
		Status:     model.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationBookingCreate)
	if s.notify != nil {
		s.notify.Notify(ctx, p.HostUID, "booking_requested", "New booking request",
			"A guest requested to book "+p.Title+".", &propertyID, &b.ID, nil)
	}
	return b, nil
}

func (s *bookingService) ListByGuest(ctx context.Context, guestUID string) ([]model.Booking, error) {
	if guestUID == "" {
		return nil, ErrUnauthenticated
	}
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(querycache.EntityBookings, guestUID),
		func(ctx context.Context) ([]model.Booking, error) {
			return s.bookingRepo.ListByGuest(ctx, guestUID)
		})
}

func (s *bookingService) ListByHost(ctx context.Context, hostUID string) ([]model.Booking, error) {
	if hostUID == "" {
		return nil, ErrUnauthenticated
	}
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(querycache.EntityHostBookings, hostUID),
		func(ctx context.Context) ([]model.Booking, error) {
			return s.bookingRepo.ListByHost(ctx, hostUID)
		})
}

// Confirm is host-only and valid from pending.
func (s *bookingService) Confirm(ctx context.Context, bookingID uint64, uid string) (*model.Booking, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	b, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostUID != uid {
		return nil, ErrForbidden
	}
	if b.Status != model.BookingStatusPending {
		return nil, ErrInvalidTransition
	}
	b.Status = model.BookingStatusConfirmed
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationBookingStatusUpdate)
	if s.notify != nil {
		s.notify.Notify(ctx, b.GuestUID, "booking_confirmed", "Booking confirmed",
			"Your booking was confirmed by the host.", &b.PropertyID, &b.ID, nil)
	}
	return b, nil
}

// Cancel is allowed for the host, or for the guest on their own pending booking.
func (s *bookingService) Cancel(ctx context.Context, bookingID uint64, uid string) (*model.Booking, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	b, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostUID != uid && b.GuestUID != uid {
		return nil, ErrForbidden
	}
	if b.Status != model.BookingStatusPending && b.Status != model.BookingStatusConfirmed {
		return nil, ErrInvalidTransition
	}
	if b.GuestUID == uid && b.Status != model.BookingStatusPending {
		return nil, ErrInvalidTransition
	}
	b.Status = model.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationBookingStatusUpdate)
	if s.notify != nil {
		target := b.GuestUID
		if uid == b.GuestUID {
			target = b.HostUID
		}
		s.notify.Notify(ctx, target, "booking_cancelled", "Booking cancelled",
			"The booking was cancelled.", &b.PropertyID, &b.ID, nil)
	}
	return b, nil
}

// CompleteEnded moves confirmed bookings whose check-out has passed to
// completed. Run periodically by the jobs scheduler.
func (s *bookingService) CompleteEnded(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.bookingRepo.ListConfirmedEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}
	done := 0
	for i := range ended {
		b := ended[i]
		b.Status = model.BookingStatusCompleted
		if err := s.bookingRepo.Update(ctx, &b); err != nil {
			return done, err
		}
		done++
	}
	if done > 0 {
		s.cache.InvalidateFor(querycache.MutationBookingStatusUpdate)
	}
	return done, nil
}

func (s *bookingService) find(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
