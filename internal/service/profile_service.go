package service

import (
	"context"
	"errors"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/repository"
	"gorm.io/gorm"
)

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	AvatarURL *string
}

type ProfileService interface {
	GetOrCreate(ctx context.Context, uid, email string) (*model.Profile, error)
	Update(ctx context.Context, uid string, in ProfileUpdate) (*model.Profile, error)
	BecomeHost(ctx context.Context, uid string) (*model.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// GetOrCreate creates the profile row on the first authenticated read.
func (s *profileService) GetOrCreate(ctx context.Context, uid, email string) (*model.Profile, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.repo.Upsert(ctx, &model.Profile{UID: uid, Email: email}); err != nil {
		return nil, err
	}
	return s.repo.FindByUID(ctx, uid)
}

func (s *profileService) Update(ctx context.Context, uid string, in ProfileUpdate) (*model.Profile, error) {
	p, err := s.find(ctx, uid)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.AvatarURL != nil {
		p.AvatarURL = in.AvatarURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) BecomeHost(ctx context.Context, uid string) (*model.Profile, error) {
	p, err := s.find(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p.IsHost {
		return p, nil
	}
	p.IsHost = true
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) find(ctx context.Context, uid string) (*model.Profile, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	p, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
