package domain

import (
	"context"
	"slices"
	"sort"
)

// Where scans every object of kind and keeps those matching pred.
// Cost is linear in the number of stored objects of that kind.
func Where(ctx context.Context, store Storage, kind Kind, pred func(*Object) bool) ([]*Object, error) {
	all, err := store.All(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]*Object, 0)
	for _, obj := range all {
		if pred(obj) {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Children returns the objects of kind child whose field equals ownerID.
func Children(ctx context.Context, store Storage, child Kind, field, ownerID string) ([]*Object, error) {
	return Where(ctx, store, child, func(obj *Object) bool {
		return obj.GetString(field) == ownerID
	})
}

func Cities(ctx context.Context, store Storage, state *Object) ([]*Object, error) {
	return Children(ctx, store, KindCity, "state_id", state.ID)
}

// Places returns the places of a city or a user.
func Places(ctx context.Context, store Storage, owner *Object) ([]*Object, error) {
	field := "city_id"
	if owner.Kind == KindUser {
		field = "user_id"
	}
	return Children(ctx, store, KindPlace, field, owner.ID)
}

// Reviews returns the reviews of a place or a user.
func Reviews(ctx context.Context, store Storage, owner *Object) ([]*Object, error) {
	field := "place_id"
	if owner.Kind == KindUser {
		field = "user_id"
	}
	return Children(ctx, store, KindReview, field, owner.ID)
}

// AmenityIDs returns the amenity ids linked to a place.
func AmenityIDs(place *Object) []string {
	v, _ := place.Get("amenity_ids")
	switch ids := v.(type) {
	case []string:
		return ids
	case []any:
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if s, ok := id.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func Amenities(ctx context.Context, store Storage, place *Object) ([]*Object, error) {
	ids := AmenityIDs(place)
	return Where(ctx, store, KindAmenity, func(obj *Object) bool {
		return slices.Contains(ids, obj.ID)
	})
}

// AddAmenity links an amenity to a place. Objects of any other kind are ignored.
func AddAmenity(place, amenity *Object) {
	if amenity == nil || amenity.Kind != KindAmenity {
		return
	}
	ids := AmenityIDs(place)
	if slices.Contains(ids, amenity.ID) {
		return
	}
	place.Set("amenity_ids", append(slices.Clone(ids), amenity.ID))
}
