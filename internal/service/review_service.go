package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/staynest/staynest-backend/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, bookingID uint64, guestUID string, rating int, comment string) (*model.Review, error)
	ListByProperty(ctx context.Context, propertyID uint64) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	cache        *querycache.Cache
	notify       NotificationService
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository, cache *querycache.Cache, notify NotificationService) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo, propertyRepo: propertyRepo, cache: cache, notify: notify}
}

// Create attaches a review to the guest's own completed (or confirmed)
// booking, at most one per booking. The property, host and guest references
// are derived from the booking row, never taken from the request. The
// property's rating columns are recomputed afterwards, which is why review
// creation also invalidates the property caches.
func (s *reviewService) Create(ctx context.Context, bookingID uint64, guestUID string, rating int, comment string) (*model.Review, error) {
	if guestUID == "" {
		return nil, ErrUnauthenticated
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.GuestUID != guestUID {
		return nil, ErrForbidden
	}
	if b.Status != model.BookingStatusCompleted && b.Status != model.BookingStatusConfirmed {
		return nil, errors.New("booking is not reviewable yet")
	}
	existing, err := s.reviewRepo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	rv := &model.Review{
		BookingID:  bookingID,
		PropertyID: b.PropertyID,
		GuestUID:   guestUID,
		HostUID:    b.HostUID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, err
	}

	// The review row is committed; the derived rating columns are best-effort
	// from here, and the caches are invalidated no matter what.
	if avg, count, err := s.reviewRepo.RatingStats(ctx, b.PropertyID); err != nil {
		logrus.WithError(err).WithField("property_id", b.PropertyID).Warn("rating stats query failed")
	} else if err := s.propertyRepo.UpdateRatingStats(ctx, b.PropertyID, avg, count); err != nil {
		logrus.WithError(err).WithField("property_id", b.PropertyID).Warn("rating stats update failed")
	}

	s.cache.InvalidateFor(querycache.MutationReviewCreate)
	if s.notify != nil {
		s.notify.Notify(ctx, b.HostUID, "review_received", "New review",
			"A guest reviewed their stay.", &b.PropertyID, &bookingID, nil)
	}
	return rv, nil
}

// ListByProperty returns an empty result without querying when the property
// id is absent.
func (s *reviewService) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Review, error) {
	if propertyID == 0 {
		return []model.Review{}, nil
	}
	return querycache.Fetch(ctx, s.cache, querycache.IDKey(querycache.EntityReviews, propertyID),
		func(ctx context.Context) ([]model.Review, error) {
			return s.reviewRepo.ListByProperty(ctx, propertyID)
		})
}
