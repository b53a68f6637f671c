package domain_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soamaka/AirBnB-clone/internal/adapters/filestore"
	"github.com/soamaka/AirBnB-clone/internal/domain"
)

func newStore(t *testing.T) *filestore.Storage {
	t.Helper()
	return filestore.New(filepath.Join(t.TempDir(), "file.json"), zerolog.Nop())
}

func create(t *testing.T, store domain.Storage, kind domain.Kind, attrs map[string]any) *domain.Object {
	t.Helper()
	obj := domain.New(kind)
	for name, v := range attrs {
		obj.Set(name, v)
	}
	require.NoError(t, obj.Save(context.Background(), store))
	return obj
}

func ids(objs []*domain.Object) []string {
	out := make([]string, 0, len(objs))
	for _, obj := range objs {
		out = append(out, obj.ID)
	}
	return out
}

func TestRelationshipViews(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	user := create(t, store, domain.KindUser, map[string]any{"email": "a@b.c"})
	ca := create(t, store, domain.KindState, map[string]any{"name": "California"})
	nv := create(t, store, domain.KindState, map[string]any{"name": "Nevada"})
	sf := create(t, store, domain.KindCity, map[string]any{"state_id": ca.ID, "name": "San Francisco"})
	la := create(t, store, domain.KindCity, map[string]any{"state_id": ca.ID, "name": "Los Angeles"})
	create(t, store, domain.KindCity, map[string]any{"state_id": nv.ID, "name": "Reno"})
	loft := create(t, store, domain.KindPlace, map[string]any{"city_id": sf.ID, "user_id": user.ID})
	review := create(t, store, domain.KindReview, map[string]any{"place_id": loft.ID, "user_id": user.ID})

	cities, err := domain.Cities(ctx, store, ca)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{sf.ID, la.ID}, ids(cities))

	places, err := domain.Places(ctx, store, sf)
	require.NoError(t, err)
	assert.Equal(t, []string{loft.ID}, ids(places))

	places, err = domain.Places(ctx, store, user)
	require.NoError(t, err)
	assert.Equal(t, []string{loft.ID}, ids(places))

	reviews, err := domain.Reviews(ctx, store, loft)
	require.NoError(t, err)
	assert.Equal(t, []string{review.ID}, ids(reviews))

	reviews, err = domain.Reviews(ctx, store, user)
	require.NoError(t, err)
	assert.Equal(t, []string{review.ID}, ids(reviews))

	empty, err := domain.Places(ctx, store, la)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAddAmenity(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	place := create(t, store, domain.KindPlace, nil)
	wifi := create(t, store, domain.KindAmenity, map[string]any{"name": "Wifi"})
	pool := create(t, store, domain.KindAmenity, map[string]any{"name": "Pool"})
	state := create(t, store, domain.KindState, nil)

	domain.AddAmenity(place, wifi)
	domain.AddAmenity(place, wifi)
	domain.AddAmenity(place, state)
	domain.AddAmenity(place, nil)
	assert.Equal(t, []string{wifi.ID}, domain.AmenityIDs(place))

	domain.AddAmenity(place, pool)
	amenities, err := domain.Amenities(ctx, store, place)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{wifi.ID, pool.ID}, ids(amenities))
}

func TestAmenityIDsAcceptsDecodedLists(t *testing.T) {
	place := domain.New(domain.KindPlace)
	place.Set("amenity_ids", []any{"a", 3, "b"})
	assert.Equal(t, []string{"a", "b"}, domain.AmenityIDs(place))

	assert.Empty(t, domain.AmenityIDs(domain.New(domain.KindPlace)))
}

func TestSaveAndDeleteThroughStore(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	obj := domain.New(domain.KindState)
	created := obj.CreatedAt
	require.NoError(t, obj.Save(ctx, store))
	assert.Equal(t, created, obj.CreatedAt)
	assert.False(t, obj.UpdatedAt.Before(created))

	all, err := store.All(ctx, domain.KindState)
	require.NoError(t, err)
	assert.Contains(t, all, obj.Key())

	require.NoError(t, obj.Delete(ctx, store))
	all, err = store.All(ctx, "")
	require.NoError(t, err)
	assert.NotContains(t, all, obj.Key())
}
