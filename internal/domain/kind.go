package domain

import "strings"

// TypeTag is the attribute carrying the kind name in a dict representation.
const TypeTag = "__class__"

type Kind string

const (
	KindUser    Kind = "User"
	KindState   Kind = "State"
	KindCity    Kind = "City"
	KindAmenity Kind = "Amenity"
	KindPlace   Kind = "Place"
	KindReview  Kind = "Review"
)

type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldFloat
	FieldStringList
)

type Field struct {
	Name string
	Type FieldType
}

// Zero returns the class-level default of the field.
func (f Field) Zero() any {
	switch f.Type {
	case FieldInt:
		return 0
	case FieldFloat:
		return 0.0
	case FieldStringList:
		return []string{}
	default:
		return ""
	}
}

// kinds is ordered so that owners come before the kinds referencing them.
var kinds = []Kind{KindUser, KindState, KindCity, KindAmenity, KindPlace, KindReview}

var schemas = map[Kind][]Field{
	KindUser: {
		{Name: "email"},
		{Name: "password"},
		{Name: "first_name"},
		{Name: "last_name"},
	},
	KindState: {
		{Name: "name"},
	},
	KindCity: {
		{Name: "state_id"},
		{Name: "name"},
	},
	KindAmenity: {
		{Name: "name"},
	},
	KindPlace: {
		{Name: "city_id"},
		{Name: "user_id"},
		{Name: "name"},
		{Name: "description"},
		{Name: "number_rooms", Type: FieldInt},
		{Name: "number_bathrooms", Type: FieldInt},
		{Name: "max_guest", Type: FieldInt},
		{Name: "price_by_night", Type: FieldInt},
		{Name: "latitude", Type: FieldFloat},
		{Name: "longitude", Type: FieldFloat},
		{Name: "amenity_ids", Type: FieldStringList},
	},
	KindReview: {
		{Name: "place_id"},
		{Name: "user_id"},
		{Name: "text"},
	},
}

// Kinds lists every known kind, owners first.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Lookup resolves a class name to a known kind.
func Lookup(name string) (Kind, bool) {
	k := Kind(name)
	_, ok := schemas[k]
	return k, ok
}

// Fields returns the declared attributes of a kind.
func Fields(kind Kind) []Field {
	return schemas[kind]
}

// FieldOf returns the declared attribute of a kind with the given name.
func FieldOf(kind Kind, name string) (Field, bool) {
	for _, f := range schemas[kind] {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Key builds the registry key "<Kind>.<id>".
func Key(kind Kind, id string) string {
	return string(kind) + "." + id
}

// KindOf returns the kind prefix of a registry key.
func KindOf(key string) string {
	name, _, _ := strings.Cut(key, ".")
	return name
}
