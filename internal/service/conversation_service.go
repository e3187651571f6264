package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/staynest/staynest-backend/internal/repository"
	"gorm.io/gorm"
)

type ConversationService interface {
	ContactHost(ctx context.Context, propertyID uint64, guestUID string) (*model.Conversation, error)
	ListByUser(ctx context.Context, uid string) ([]model.Conversation, error)
	Get(ctx context.Context, convID uint64, uid string) (*model.Conversation, error)
	ListMessages(ctx context.Context, convID uint64, uid string) ([]model.Message, error)
	SendMessage(ctx context.Context, convID uint64, senderUID, content string, bookingID *uint64) (*model.Message, error)
	MarkRead(ctx context.Context, convID uint64, uid string) error
}

type conversationService struct {
	convRepo     repository.ConversationRepository
	propertyRepo repository.PropertyRepository
	cache        *querycache.Cache
	notify       NotificationService
}

func NewConversationService(convRepo repository.ConversationRepository, propertyRepo repository.PropertyRepository, cache *querycache.Cache, notify NotificationService) ConversationService {
	return &conversationService{convRepo: convRepo, propertyRepo: propertyRepo, cache: cache, notify: notify}
}

// ContactHost finds or creates the one conversation for (property, guest).
func (s *conversationService) ContactHost(ctx context.Context, propertyID uint64, guestUID string) (*model.Conversation, error) {
	if guestUID == "" {
		return nil, ErrUnauthenticated
	}
	p, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.HostUID == guestUID {
		return nil, errors.New("cannot message yourself")
	}
	cv, err := s.convRepo.FindOrCreate(ctx, propertyID, p.HostUID, guestUID)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationConversationCreate)
	return cv, nil
}

func (s *conversationService) ListByUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(querycache.EntityConversations, uid),
		func(ctx context.Context) ([]model.Conversation, error) {
			return s.convRepo.FindByUser(ctx, uid)
		})
}

func (s *conversationService) Get(ctx context.Context, convID uint64, uid string) (*model.Conversation, error) {
	cv, err := s.participantConversation(ctx, convID, uid)
	if err != nil {
		return nil, err
	}
	return cv, nil
}

func (s *conversationService) ListMessages(ctx context.Context, convID uint64, uid string) ([]model.Message, error) {
	if _, err := s.participantConversation(ctx, convID, uid); err != nil {
		return nil, err
	}
	return querycache.Fetch(ctx, s.cache, querycache.IDKey(querycache.EntityMessages, convID),
		func(ctx context.Context) ([]model.Message, error) {
			return s.convRepo.ListMessages(ctx, convID)
		})
}

// SendMessage inserts the message, bumps the parent conversation's
// last_message_at, and only then invalidates the message and conversation
// caches; readers re-fetching after invalidation must already see the new
// inbox ordering.
func (s *conversationService) SendMessage(ctx context.Context, convID uint64, senderUID, content string, bookingID *uint64) (*model.Message, error) {
	if senderUID == "" {
		return nil, ErrUnauthenticated
	}
	if content == "" {
		return nil, errors.New("content is required")
	}
	cv, err := s.participantConversation(ctx, convID, senderUID)
	if err != nil {
		return nil, err
	}
	recipient := cv.HostUID
	if senderUID == cv.HostUID {
		recipient = cv.GuestUID
	}
	propertyID := cv.PropertyID
	msg := &model.Message{
		ConversationID: convID,
		SenderUID:      senderUID,
		RecipientUID:   recipient,
		PropertyID:     &propertyID,
		BookingID:      bookingID,
		Content:        content,
	}
	if err := s.convRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.convRepo.TouchLastMessageAt(ctx, convID, time.Now()); err != nil {
		return nil, err
	}
	s.cache.InvalidateFor(querycache.MutationMessageSend)
	if s.notify != nil {
		s.notify.Notify(ctx, recipient, "message_received", "New message",
			"You received a new message about listing #"+strconv.FormatUint(propertyID, 10)+".",
			&propertyID, nil, &convID)
	}
	return msg, nil
}

func (s *conversationService) MarkRead(ctx context.Context, convID uint64, uid string) error {
	if _, err := s.participantConversation(ctx, convID, uid); err != nil {
		return err
	}
	return s.convRepo.MarkMessagesRead(ctx, convID, uid)
}

func (s *conversationService) participantConversation(ctx context.Context, convID uint64, uid string) (*model.Conversation, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	cv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cv.HostUID != uid && cv.GuestUID != uid {
		return nil, ErrForbidden
	}
	return cv, nil
}
