package repository

import (
	"context"
	"errors"

	"github.com/staynest/staynest-backend/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	FindByBooking(ctx context.Context, bookingID uint64) (*model.Review, error)
	ListByProperty(ctx context.Context, propertyID uint64) ([]model.Review, error)
	RatingStats(ctx context.Context, propertyID uint64) (average float64, count int, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(rv).Error
}

// FindByBooking returns (nil, nil) when no review exists for the booking.
func (r *reviewRepository) FindByBooking(ctx context.Context, bookingID uint64) (*model.Review, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rv model.Review
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&rv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Review, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) RatingStats(ctx context.Context, propertyID uint64) (float64, int, error) {
	if r.db == nil {
		return 0, 0, ErrDBNotReady
	}
	var stats struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("property_id = ?", propertyID).
		Scan(&stats).Error; err != nil {
		return 0, 0, err
	}
	return stats.Avg, int(stats.Count), nil
}
