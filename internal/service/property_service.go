package service

import (
	"context"
	"errors"
	"strings"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/staynest/staynest-backend/internal/repository"
	"github.com/staynest/staynest-backend/internal/search"
	"gorm.io/gorm"
)

type PropertyInput struct {
	Title         string
	Description   string
	PropertyType  string
	Address       string
	City          string
	State         string
	Country       string
	PostalCode    string
	Latitude      *float64
	Longitude     *float64
	PricePerNight *float64
	Bedrooms      int
	Bathrooms     int
	MaxGuests     int
	Amenities     []string
	Images        []string
	IsActive      *bool
}

type PropertyService interface {
	List(ctx context.Context) ([]model.Property, error)
	Search(ctx context.Context, filters search.Filters) ([]model.Property, error)
	Get(ctx context.Context, id uint64) (*model.Property, error)
	ListByHost(ctx context.Context, hostUID string) ([]model.Property, error)
	Create(ctx context.Context, hostUID string, in PropertyInput) (*model.Property, error)
	Update(ctx context.Context, id uint64, hostUID string, in PropertyInput) (*model.Property, error)
	Delete(ctx context.Context, id uint64, hostUID string) error
}

type propertyService struct {
	repo  repository.PropertyRepository
	cache *querycache.Cache
}

func NewPropertyService(repo repository.PropertyRepository, cache *querycache.Cache) PropertyService {
	return &propertyService{repo: repo, cache: cache}
}

func (s *propertyService) List(ctx context.Context) ([]model.Property, error) {
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(querycache.EntityProperties, ""),
		func(ctx context.Context) ([]model.Property, error) {
			return s.repo.ListActive(ctx)
		})
}

// Search fetches the active collection through the shared cache and filters it
// in memory; there is no server-side push-down.
func (s *propertyService) Search(ctx context.Context, filters search.Filters) ([]model.Property, error) {
	props, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Apply(props, filters), nil
}

func (s *propertyService) Get(ctx context.Context, id uint64) (*model.Property, error) {
	p, err := querycache.Fetch(ctx, s.cache, querycache.IDKey(querycache.EntityProperty, id),
		func(ctx context.Context) (*model.Property, error) {
			return s.repo.FindByID(ctx, id)
		})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *propertyService) ListByHost(ctx context.Context, hostUID string) ([]model.Property, error) {
	if hostUID == "" {
		return nil, ErrUnauthenticated
	}
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(querycache.EntityHostProperties, hostUID),
		func(ctx context.Context) ([]model.Property, error) {
			return s.repo.ListByHost(ctx, hostUID)
		})
}

func (s *propertyService) Create(ctx context.Context, hostUID string, in PropertyInput) (*model.Property, error) {
	if hostUID == "" {
		return nil, ErrUnauthenticated
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Title) > 120 {
		return nil, errors.New("invalid title")
	}
	if in.Address == "" || in.City == "" || in.State == "" {
		return nil, errors.New("address, city and state are required")
	}
	var price float64
	if in.PricePerNight != nil {
		if *in.PricePerNight < 0 {
			return nil, errors.New("price must not be negative")
		}
		price = *in.PricePerNight
	}

	p := &model.Property{
		HostUID:       hostUID,
		Title:         in.Title,
		Description:   in.Description,
		PropertyType:  in.PropertyType,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Country:       in.Country,
		PostalCode:    in.PostalCode,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		PricePerNight: price,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		MaxGuests:     in.MaxGuests,
		Amenities:     in.Amenities,
		Images:        in.Images,
		IsActive:      true,
	}
	if in.Bedrooms <= 0 {
		p.Bedrooms = 1
	}
	if in.Bathrooms <= 0 {
		p.Bathrooms = 1
	}
	if in.MaxGuests <= 0 {
		p.MaxGuests = 1
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationPropertyCreate)
	return p, nil
}

func (s *propertyService) Update(ctx context.Context, id uint64, hostUID string, in PropertyInput) (*model.Property, error) {
	if hostUID == "" {
		return nil, ErrUnauthenticated
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.HostUID != hostUID {
		return nil, ErrForbidden
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		p.Title = t
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.PropertyType != "" {
		p.PropertyType = in.PropertyType
	}
	if in.Address != "" {
		p.Address = in.Address
	}
	if in.City != "" {
		p.City = in.City
	}
	if in.State != "" {
		p.State = in.State
	}
	if in.Country != "" {
		p.Country = in.Country
	}
	if in.PostalCode != "" {
		p.PostalCode = in.PostalCode
	}
	if in.Latitude != nil {
		p.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		p.Longitude = in.Longitude
	}
	// Nil means "leave unchanged"; zero is a valid price (free listings).
	if in.PricePerNight != nil {
		if *in.PricePerNight < 0 {
			return nil, errors.New("price must not be negative")
		}
		p.PricePerNight = *in.PricePerNight
	}
	if in.Bedrooms > 0 {
		p.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms > 0 {
		p.Bathrooms = in.Bathrooms
	}
	if in.MaxGuests > 0 {
		p.MaxGuests = in.MaxGuests
	}
	if in.Amenities != nil {
		p.Amenities = in.Amenities
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationPropertyUpdate)
	return p, nil
}

func (s *propertyService) Delete(ctx context.Context, id uint64, hostUID string) error {
	if hostUID == "" {
		return ErrUnauthenticated
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.HostUID != hostUID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateFor(querycache.MutationPropertyDelete)
	return nil
}
