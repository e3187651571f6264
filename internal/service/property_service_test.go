package service

import (
	"context"
	"testing"
	"time"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/staynest/staynest-backend/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceOf(v float64) *float64 { return &v }

func validInput() PropertyInput {
	return PropertyInput{
		Title: "Seaside Cottage", Address: "1 Shore Rd", City: "Brighton",
		State: "East Sussex", Country: "UK", PricePerNight: priceOf(120),
		Bedrooms: 2, Bathrooms: 1, MaxGuests: 4,
		Amenities: []string{"WiFi"},
	}
}

func TestCreatePropertyFillsHostFromSession(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := NewPropertyService(repo, querycache.New(time.Minute))

	p, err := svc.Create(context.Background(), "host1", validInput())
	require.NoError(t, err)
	assert.Equal(t, "host1", p.HostUID)
	assert.True(t, p.IsActive)
}

func TestCreatePropertyUnauthenticated(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := NewPropertyService(repo, querycache.New(time.Minute))

	_, err := svc.Create(context.Background(), "", validInput())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, repo.calls)
}

func TestPropertyMutationsInvalidateBothListKeys(t *testing.T) {
	repo := newFakePropertyRepo()
	cache := querycache.New(time.Minute)
	svc := NewPropertyService(repo, cache)

	listKey := querycache.NewKey(querycache.EntityProperties, "")
	hostKey := querycache.NewKey(querycache.EntityHostProperties, "host1")

	prime(t, cache, listKey, hostKey)
	p, err := svc.Create(context.Background(), "host1", validInput())
	require.NoError(t, err)
	assert.False(t, cache.Contains(listKey))
	assert.False(t, cache.Contains(hostKey))

	prime(t, cache, listKey, hostKey)
	_, err = svc.Update(context.Background(), p.ID, "host1", PropertyInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.False(t, cache.Contains(listKey))
	assert.False(t, cache.Contains(hostKey))

	prime(t, cache, listKey, hostKey)
	require.NoError(t, svc.Delete(context.Background(), p.ID, "host1"))
	assert.False(t, cache.Contains(listKey))
	assert.False(t, cache.Contains(hostKey))
}

func TestUpdateAndDeleteAreOwnerGated(t *testing.T) {
	repo := newFakePropertyRepo(&model.Property{ID: 10, HostUID: "host1", Title: "x", IsActive: true})
	svc := NewPropertyService(repo, querycache.New(time.Minute))

	_, err := svc.Update(context.Background(), 10, "intruder", PropertyInput{Title: "mine now"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), 10, "intruder"), ErrForbidden)

	_, err = svc.Update(context.Background(), 77, "host1", PropertyInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCanSetPriceToZero(t *testing.T) {
	repo := newFakePropertyRepo(&model.Property{ID: 10, HostUID: "host1", Title: "x", PricePerNight: 120, IsActive: true})
	svc := NewPropertyService(repo, querycache.New(time.Minute))

	p, err := svc.Update(context.Background(), 10, "host1", PropertyInput{PricePerNight: priceOf(0)})
	require.NoError(t, err)
	assert.Equal(t, float64(0), p.PricePerNight, "zero is a valid price, not an omitted field")

	p, err = svc.Update(context.Background(), 10, "host1", PropertyInput{Title: "y"})
	require.NoError(t, err)
	assert.Equal(t, float64(0), p.PricePerNight, "absent price leaves the stored value alone")

	_, err = svc.Update(context.Background(), 10, "host1", PropertyInput{PricePerNight: priceOf(-1)})
	assert.Error(t, err)
}

func TestListCachesUntilInvalidated(t *testing.T) {
	repo := newFakePropertyRepo(&model.Property{ID: 1, HostUID: "h", Title: "a", IsActive: true})
	cache := querycache.New(time.Minute)
	svc := NewPropertyService(repo, cache)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"list_active"}, repo.calls, "second read served from cache")

	cache.InvalidateFor(querycache.MutationPropertyCreate)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"list_active", "list_active"}, repo.calls)
}

func TestSearchFiltersCachedCollection(t *testing.T) {
	repo := newFakePropertyRepo(
		&model.Property{ID: 1, HostUID: "h", Title: "Beach House", City: "Malibu", State: "CA", PricePerNight: 300, MaxGuests: 6, IsActive: true},
		&model.Property{ID: 2, HostUID: "h", Title: "City Flat", City: "Austin", State: "TX", PricePerNight: 90, MaxGuests: 2, IsActive: true},
	)
	svc := NewPropertyService(repo, querycache.New(time.Minute))

	got, err := svc.Search(context.Background(), search.Filters{Location: "malibu"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
}
