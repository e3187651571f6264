package service

import (
	"context"
	"time"

	"github.com/staynest/staynest-backend/internal/model"
	"gorm.io/gorm"
)

// Counting in-memory fakes for the repository interfaces. Calls tracks every
// repository operation in order so tests can assert both call counts and
// ordering.

type fakePropertyRepo struct {
	props          map[uint64]*model.Property
	calls          []string
	ratingStatsErr error
}

func newFakePropertyRepo(props ...*model.Property) *fakePropertyRepo {
	m := make(map[uint64]*model.Property)
	for _, p := range props {
		m[p.ID] = p
	}
	return &fakePropertyRepo{props: m}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *model.Property) error {
	f.calls = append(f.calls, "create")
	if p.ID == 0 {
		p.ID = uint64(len(f.props) + 1)
	}
	f.props[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) FindByID(ctx context.Context, id uint64) (*model.Property, error) {
	f.calls = append(f.calls, "find")
	p, ok := f.props[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePropertyRepo) ListActive(ctx context.Context) ([]model.Property, error) {
	f.calls = append(f.calls, "list_active")
	var out []model.Property
	for _, p := range f.props {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListByHost(ctx context.Context, hostUID string) ([]model.Property, error) {
	f.calls = append(f.calls, "list_by_host")
	var out []model.Property
	for _, p := range f.props {
		if p.HostUID == hostUID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *model.Property) error {
	f.calls = append(f.calls, "update")
	f.props[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, id uint64) error {
	f.calls = append(f.calls, "delete")
	delete(f.props, id)
	return nil
}

func (f *fakePropertyRepo) UpdateRatingStats(ctx context.Context, id uint64, avg float64, count int) error {
	f.calls = append(f.calls, "update_rating_stats")
	if f.ratingStatsErr != nil {
		return f.ratingStatsErr
	}
	if p, ok := f.props[id]; ok {
		p.AverageRating = avg
		p.TotalReviews = count
	}
	return nil
}

type fakeBookingRepo struct {
	bookings map[uint64]*model.Booking
	calls    []string
}

func newFakeBookingRepo(bookings ...*model.Booking) *fakeBookingRepo {
	m := make(map[uint64]*model.Booking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	f.calls = append(f.calls, "create")
	if b.ID == 0 {
		b.ID = uint64(len(f.bookings) + 1)
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	f.calls = append(f.calls, "find")
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListByGuest(ctx context.Context, guestUID string) ([]model.Booking, error) {
	f.calls = append(f.calls, "list_by_guest")
	var out []model.Booking
	for _, b := range f.bookings {
		if b.GuestUID == guestUID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByHost(ctx context.Context, hostUID string) ([]model.Booking, error) {
	f.calls = append(f.calls, "list_by_host")
	var out []model.Booking
	for _, b := range f.bookings {
		if b.HostUID == hostUID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *model.Booking) error {
	f.calls = append(f.calls, "update")
	if existing, ok := f.bookings[b.ID]; ok {
		*existing = *b
		return nil
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
	f.calls = append(f.calls, "list_confirmed_ended")
	var out []model.Booking
	for _, b := range f.bookings {
		if b.Status == model.BookingStatusConfirmed && b.CheckOut.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeConversationRepo struct {
	convs    map[uint64]*model.Conversation
	messages []model.Message
	calls    []string
}

func newFakeConversationRepo(convs ...*model.Conversation) *fakeConversationRepo {
	m := make(map[uint64]*model.Conversation)
	for _, cv := range convs {
		m[cv.ID] = cv
	}
	return &fakeConversationRepo{convs: m}
}

func (f *fakeConversationRepo) FindOrCreate(ctx context.Context, propertyID uint64, hostUID, guestUID string) (*model.Conversation, error) {
	f.calls = append(f.calls, "find_or_create")
	for _, cv := range f.convs {
		if cv.PropertyID == propertyID && cv.GuestUID == guestUID {
			return cv, nil
		}
	}
	cv := &model.Conversation{
		ID:         uint64(len(f.convs) + 1),
		PropertyID: propertyID,
		HostUID:    hostUID,
		GuestUID:   guestUID,
	}
	f.convs[cv.ID] = cv
	return cv, nil
}

func (f *fakeConversationRepo) FindByUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	f.calls = append(f.calls, "find_by_user")
	var out []model.Conversation
	for _, cv := range f.convs {
		if cv.HostUID == uid || cv.GuestUID == uid {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	f.calls = append(f.calls, "find")
	cv, ok := f.convs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cv, nil
}

func (f *fakeConversationRepo) TouchLastMessageAt(ctx context.Context, id uint64, at time.Time) error {
	f.calls = append(f.calls, "touch_last_message_at")
	if cv, ok := f.convs[id]; ok {
		cv.LastMessageAt = at
	}
	return nil
}

func (f *fakeConversationRepo) CreateMessage(ctx context.Context, msg *model.Message) error {
	f.calls = append(f.calls, "create_message")
	msg.ID = uint64(len(f.messages) + 1)
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeConversationRepo) ListMessages(ctx context.Context, convID uint64) ([]model.Message, error) {
	f.calls = append(f.calls, "list_messages")
	var out []model.Message
	for _, m := range f.messages {
		if m.ConversationID == convID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) MarkMessagesRead(ctx context.Context, convID uint64, recipientUID string) error {
	f.calls = append(f.calls, "mark_messages_read")
	for i := range f.messages {
		if f.messages[i].ConversationID == convID && f.messages[i].RecipientUID == recipientUID {
			f.messages[i].IsRead = true
		}
	}
	return nil
}

type fakeReviewRepo struct {
	reviews map[uint64]*model.Review
	calls   []string
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uint64]*model.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	f.calls = append(f.calls, "create")
	rv.ID = uint64(len(f.reviews) + 1)
	f.reviews[rv.BookingID] = rv
	return nil
}

func (f *fakeReviewRepo) FindByBooking(ctx context.Context, bookingID uint64) (*model.Review, error) {
	f.calls = append(f.calls, "find_by_booking")
	rv, ok := f.reviews[bookingID]
	if !ok {
		return nil, nil
	}
	return rv, nil
}

func (f *fakeReviewRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Review, error) {
	f.calls = append(f.calls, "list_by_property")
	var out []model.Review
	for _, rv := range f.reviews {
		if rv.PropertyID == propertyID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) RatingStats(ctx context.Context, propertyID uint64) (float64, int, error) {
	f.calls = append(f.calls, "rating_stats")
	sum, count := 0, 0
	for _, rv := range f.reviews {
		if rv.PropertyID == propertyID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeNotificationRepo struct {
	created []model.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.created {
		if n.UserUID == userUID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userUID string) (int64, error) {
	var cnt int64
	for _, n := range f.created {
		if n.UserUID == userUID && n.ReadAt == nil {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userUID string) error {
	now := time.Now()
	for i := range f.created {
		if f.created[i].UserUID == userUID {
			f.created[i].ReadAt = &now
		}
	}
	return nil
}
