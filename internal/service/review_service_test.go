package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedBooking() *model.Booking {
	return &model.Booking{ID: 1, PropertyID: 10, GuestUID: "guest1", HostUID: "host1", Status: model.BookingStatusCompleted}
}

func TestCreateReviewRequiresOwnBooking(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(completedBooking())
	svc := NewReviewService(reviews, bookings, newFakePropertyRepo(testProperty()), querycache.New(time.Minute), nil)

	_, err := svc.Create(context.Background(), 99, "guest1", 5, "great")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), 1, "other", 5, "great")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReviewUnauthenticatedIssuesNoQueries(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(completedBooking())
	svc := NewReviewService(reviews, bookings, newFakePropertyRepo(testProperty()), querycache.New(time.Minute), nil)

	_, err := svc.Create(context.Background(), 1, "", 5, "great")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, bookings.calls, "anonymous attempt must not hit the store")
	assert.Empty(t, reviews.calls)
}

func TestCreateReviewRejectsPendingBookingAndBadRating(t *testing.T) {
	pending := &model.Booking{ID: 2, PropertyID: 10, GuestUID: "guest1", HostUID: "host1", Status: model.BookingStatusPending}
	svc := NewReviewService(newFakeReviewRepo(), newFakeBookingRepo(pending), newFakePropertyRepo(testProperty()), querycache.New(time.Minute), nil)

	_, err := svc.Create(context.Background(), 2, "guest1", 5, "")
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), 2, "guest1", 0, "")
	assert.Error(t, err)
	_, err = svc.Create(context.Background(), 2, "guest1", 6, "")
	assert.Error(t, err)
}

func TestCreateReviewOncePerBooking(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeBookingRepo(completedBooking()), newFakePropertyRepo(testProperty()), querycache.New(time.Minute), nil)

	_, err := svc.Create(context.Background(), 1, "guest1", 4, "nice stay")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, "guest1", 5, "again")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewUpdatesRatingAndInvalidatesPropertyCaches(t *testing.T) {
	props := newFakePropertyRepo(testProperty())
	cache := querycache.New(time.Minute)
	reviewKey := querycache.IDKey(querycache.EntityReviews, 10)
	listKey := querycache.NewKey(querycache.EntityProperties, "")
	detailKey := querycache.IDKey(querycache.EntityProperty, 10)
	bookingKey := querycache.NewKey(querycache.EntityBookings, "guest1")
	prime(t, cache, reviewKey, listKey, detailKey, bookingKey)

	svc := NewReviewService(newFakeReviewRepo(), newFakeBookingRepo(completedBooking()), props, cache, nil)
	rv, err := svc.Create(context.Background(), 1, "guest1", 4, "nice stay")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), rv.PropertyID, "property derived from booking")
	assert.Equal(t, "host1", rv.HostUID)

	assert.Equal(t, float64(4), props.props[10].AverageRating)
	assert.Equal(t, 1, props.props[10].TotalReviews)

	assert.False(t, cache.Contains(reviewKey), "review list stale")
	assert.False(t, cache.Contains(listKey), "property list stale (derived rating)")
	assert.False(t, cache.Contains(detailKey), "property detail stale (derived rating)")
	assert.True(t, cache.Contains(bookingKey), "booking lists unaffected")
}

func TestCreateReviewSurvivesRatingStatsFailure(t *testing.T) {
	props := newFakePropertyRepo(testProperty())
	props.ratingStatsErr = errors.New("stats write rejected")
	reviews := newFakeReviewRepo()
	cache := querycache.New(time.Minute)
	reviewKey := querycache.IDKey(querycache.EntityReviews, 10)
	listKey := querycache.NewKey(querycache.EntityProperties, "")
	prime(t, cache, reviewKey, listKey)

	svc := NewReviewService(reviews, newFakeBookingRepo(completedBooking()), props, cache, nil)
	rv, err := svc.Create(context.Background(), 1, "guest1", 4, "nice stay")
	require.NoError(t, err, "a failed derived-column write must not fail the review")
	require.NotNil(t, rv)
	assert.Len(t, reviews.reviews, 1, "review row persisted")

	assert.False(t, cache.Contains(reviewKey), "review list stale despite stats failure")
	assert.False(t, cache.Contains(listKey), "property list stale despite stats failure")

	_, err = svc.Create(context.Background(), 1, "guest1", 5, "again")
	assert.ErrorIs(t, err, ErrAlreadyReviewed, "retry after the insert sees the duplicate")
}

func TestListReviewsWithoutPropertyIDIsGuarded(t *testing.T) {
	reviews := newFakeReviewRepo()
	svc := NewReviewService(reviews, newFakeBookingRepo(), newFakePropertyRepo(), querycache.New(time.Minute), nil)

	got, err := svc.ListByProperty(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, reviews.calls, "guard condition issues no query")
}
