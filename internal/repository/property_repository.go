package repository

import (
	"context"
	"errors"

	"github.com/staynest/staynest-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type PropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id uint64) (*model.Property, error)
	ListActive(ctx context.Context) ([]model.Property, error)
	ListByHost(ctx context.Context, hostUID string) ([]model.Property, error)
	Update(ctx context.Context, p *model.Property) error
	Delete(ctx context.Context, id uint64) error
	UpdateRatingStats(ctx context.Context, id uint64, averageRating float64, totalReviews int) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *model.Property) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *propertyRepository) FindByID(ctx context.Context, id uint64) (*model.Property, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) ListActive(ctx context.Context) ([]model.Property, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var props []model.Property
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

func (r *propertyRepository) ListByHost(ctx context.Context, hostUID string) ([]model.Property, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var props []model.Property
	if err := r.db.WithContext(ctx).
		Where("host_uid = ?", hostUID).
		Order("created_at DESC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *model.Property) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *propertyRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Delete(&model.Property{}, id).Error
}

func (r *propertyRepository) UpdateRatingStats(ctx context.Context, id uint64, averageRating float64, totalReviews int) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.Property{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"total_reviews":  totalReviews,
		}).Error
}
