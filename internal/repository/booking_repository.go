package repository

import (
	"context"
	"time"

	"github.com/staynest/staynest-backend/internal/model"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByGuest(ctx context.Context, guestUID string) ([]model.Booking, error)
	ListByHost(ctx context.Context, hostUID string) ([]model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]model.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestUID string) ([]model.Booking, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Where("guest_uid = ?", guestUID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostUID string) ([]model.Booking, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Where("host_uid = ?", hostUID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *model.Booking) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bookingRepository) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Booking
	if err := r.db.WithContext(ctx).
		Where("status = ? AND check_out < ?", model.BookingStatusConfirmed, cutoff).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
