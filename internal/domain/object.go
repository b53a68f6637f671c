package domain

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TimeLayout is the ISO-8601 form used for timestamps in dict representations.
const TimeLayout = "2006-01-02T15:04:05.000000"

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

var ErrTypeKind = errors.New("attribute keys must be text")

var reserved = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	TypeTag:      true,
}

// IsReserved reports whether name is managed by the object itself.
func IsReserved(name string) bool {
	return reserved[name]
}

type Object struct {
	Kind      Kind
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	attrs map[string]any
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// New returns a fresh object with a random id and both timestamps set to now.
func New(kind Kind) *Object {
	t := now()
	return &Object{
		Kind:      kind,
		ID:        uuid.NewString(),
		CreatedAt: t,
		UpdatedAt: t,
		attrs:     map[string]any{},
	}
}

// Restore rebuilds an object from trusted typed state, e.g. a database row.
func Restore(kind Kind, id string, createdAt, updatedAt time.Time, attrs map[string]any) *Object {
	obj := &Object{
		Kind:      kind,
		ID:        id,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
		attrs:     make(map[string]any, len(attrs)),
	}
	for name, v := range attrs {
		obj.attrs[name] = v
	}
	return obj
}

// FromMap reconstructs an object of the given kind from an attribute map.
// The type tag is ignored, timestamps are parsed from ISO-8601 text and
// missing id or timestamps are backfilled. Keys that are not strings fail
// with ErrTypeKind.
func FromMap[K comparable](kind Kind, kwargs map[K]any) (*Object, error) {
	if len(kwargs) == 0 {
		return New(kind), nil
	}

	obj := &Object{Kind: kind, attrs: make(map[string]any, len(kwargs))}
	for k, v := range kwargs {
		name, ok := any(k).(string)
		if !ok {
			return nil, errors.Wrapf(ErrTypeKind, "got %T key %v", k, k)
		}
		switch name {
		case TypeTag:
		case "id":
			id, ok := v.(string)
			if !ok {
				return nil, errors.Wrapf(ErrTypeKind, "id must be text, got %T", v)
			}
			obj.ID = id
		case "created_at", "updated_at":
			t, err := toTime(v)
			if err != nil {
				return nil, errors.Wrapf(err, "parse %s", name)
			}
			if name == "created_at" {
				obj.CreatedAt = t
			} else {
				obj.UpdatedAt = t
			}
		default:
			obj.attrs[name] = v
		}
	}

	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = now()
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = now()
	}
	return obj, nil
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return ParseTime(t)
	default:
		return time.Time{}, errors.Errorf("timestamp must be ISO-8601 text, got %T", v)
	}
}

// ParseTime parses an ISO-8601 timestamp, assuming UTC when no zone is given.
func ParseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Key returns the registry key of the object.
func (o *Object) Key() string {
	return Key(o.Kind, o.ID)
}

// Get returns an instance attribute, falling back to the declared default.
func (o *Object) Get(name string) (any, bool) {
	if v, ok := o.attrs[name]; ok {
		return v, true
	}
	if f, ok := FieldOf(o.Kind, name); ok {
		return f.Zero(), true
	}
	return nil, false
}

// GetString returns a text attribute or "" when unset or not text.
func (o *Object) GetString(name string) string {
	v, _ := o.Get(name)
	s, _ := v.(string)
	return s
}

func (o *Object) Set(name string, value any) {
	if o.attrs == nil {
		o.attrs = map[string]any{}
	}
	o.attrs[name] = value
}

// Has reports whether the attribute was set on the instance.
func (o *Object) Has(name string) bool {
	_, ok := o.attrs[name]
	return ok
}

// Attributes returns the names of instance attributes in sorted order.
func (o *Object) Attributes() []string {
	names := make([]string, 0, len(o.attrs))
	for name := range o.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToDict renders every instance attribute plus the type tag.
func (o *Object) ToDict() map[string]any {
	out := make(map[string]any, len(o.attrs)+4)
	for name, v := range o.attrs {
		out[name] = v
	}
	out["id"] = o.ID
	out["created_at"] = o.CreatedAt.Format(TimeLayout)
	out["updated_at"] = o.UpdatedAt.Format(TimeLayout)
	out[TypeTag] = string(o.Kind)
	return out
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(o.Kind))
	b.WriteString("] (")
	b.WriteString(o.ID)
	b.WriteString(") {")
	b.WriteString(FormatLiteral("id"))
	b.WriteString(": ")
	b.WriteString(FormatLiteral(o.ID))
	b.WriteString(", ")
	b.WriteString(FormatLiteral("created_at"))
	b.WriteString(": ")
	b.WriteString(FormatLiteral(o.CreatedAt))
	b.WriteString(", ")
	b.WriteString(FormatLiteral("updated_at"))
	b.WriteString(": ")
	b.WriteString(FormatLiteral(o.UpdatedAt))
	for _, name := range o.Attributes() {
		b.WriteString(", ")
		b.WriteString(FormatLiteral(name))
		b.WriteString(": ")
		b.WriteString(FormatLiteral(o.attrs[name]))
	}
	b.WriteString("}")
	return b.String()
}

// Save stamps updated_at, registers the object and flushes the store.
func (o *Object) Save(ctx context.Context, store Storage) error {
	o.UpdatedAt = now()
	if err := store.New(ctx, o); err != nil {
		return err
	}
	return store.Save(ctx)
}

// Delete removes the object from the registry without flushing.
func (o *Object) Delete(ctx context.Context, store Storage) error {
	return store.Delete(ctx, o)
}
