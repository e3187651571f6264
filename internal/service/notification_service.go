package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/staynest/staynest-backend/internal/mailer"
	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/repository"
)

type NotificationService interface {
	Notify(ctx context.Context, userUID, typ, title, body string, propertyID, bookingID, conversationID *uint64)
	List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, userUID string) error
}

type notificationService struct {
	repo     repository.NotificationRepository
	profiles repository.ProfileRepository
	mail     mailer.Mailer
}

// NewNotificationService builds the in-app notification feed. profiles and
// mail may be nil; email delivery is skipped when either is missing.
func NewNotificationService(repo repository.NotificationRepository, profiles repository.ProfileRepository, mail mailer.Mailer) NotificationService {
	return &notificationService{repo: repo, profiles: profiles, mail: mail}
}

// Notify is best-effort; failures are logged and never break the main flow.
func (s *notificationService) Notify(ctx context.Context, userUID, typ, title, body string, propertyID, bookingID, conversationID *uint64) {
	if userUID == "" || typ == "" {
		return
	}
	n := &model.Notification{
		UserUID:        userUID,
		Type:           typ,
		Title:          title,
		Body:           body,
		PropertyID:     propertyID,
		BookingID:      bookingID,
		ConversationID: conversationID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		logrus.WithError(err).WithField("type", typ).Warn("notification insert failed")
	}
	s.sendEmail(ctx, userUID, title, body)
}

func (s *notificationService) sendEmail(ctx context.Context, userUID, title, body string) {
	if s.mail == nil || s.profiles == nil {
		return
	}
	p, err := s.profiles.FindByUID(ctx, userUID)
	if err != nil || p.Email == "" {
		return
	}
	if err := s.mail.Send(p.Email, title, body); err != nil {
		logrus.WithError(err).WithField("to", p.Email).Warn("notification email failed")
	}
}

func (s *notificationService) List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if userUID == "" {
		return nil, 0, ErrUnauthenticated
	}
	list, err := s.repo.ListByUser(ctx, userUID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, userUID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) error {
	if userUID == "" {
		return ErrUnauthenticated
	}
	return s.repo.MarkAllRead(ctx, userUID)
}
