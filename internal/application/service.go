package application

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/soamaka/AirBnB-clone/internal/domain"
)

var (
	ErrClassNameMissing     = errors.New("class name missing")
	ErrClassDoesNotExist    = errors.New("class doesn't exist")
	ErrInstanceIDMissing    = errors.New("instance id missing")
	ErrNoInstanceFound      = errors.New("no instance found")
	ErrAttributeNameMissing = errors.New("attribute name missing")
	ErrValueMissing         = errors.New("value missing")
	ErrValueNotNumber       = errors.New("value is not a number")
)

var inputErrors = []error{
	ErrClassNameMissing,
	ErrClassDoesNotExist,
	ErrInstanceIDMissing,
	ErrNoInstanceFound,
	ErrAttributeNameMissing,
	ErrValueMissing,
	ErrValueNotNumber,
}

// InputMessage returns the operator facing message of err when err is an
// input error rather than a failure.
func InputMessage(err error) (string, bool) {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}

// numericAttrs lists the attributes converted to numbers on update. Other
// attributes are stored as given.
var numericAttrs = map[string]domain.FieldType{
	"number_rooms":     domain.FieldInt,
	"number_bathrooms": domain.FieldInt,
	"max_guest":        domain.FieldInt,
	"price_by_night":   domain.FieldInt,
	"latitude":         domain.FieldFloat,
	"longitude":        domain.FieldFloat,
}

// Attr is one attribute name/value pair given by the operator.
type Attr struct {
	Name  string
	Value any
}

type Service struct {
	store domain.Storage
}

func NewService(store domain.Storage) *Service {
	return &Service{store: store}
}

func (s *Service) Store() domain.Storage {
	return s.store
}

func (s *Service) kind(class string) (domain.Kind, error) {
	if class == "" {
		return "", ErrClassNameMissing
	}
	kind, ok := domain.Lookup(class)
	if !ok {
		return "", ErrClassDoesNotExist
	}
	return kind, nil
}

// Create builds a fresh object of class, applies attrs except the reserved
// ones and saves it.
func (s *Service) Create(ctx context.Context, class string, attrs []Attr) (*domain.Object, error) {
	kind, err := s.kind(class)
	if err != nil {
		return nil, err
	}

	obj := domain.New(kind)
	for _, attr := range attrs {
		if domain.IsReserved(attr.Name) {
			continue
		}
		obj.Set(attr.Name, attr.Value)
	}
	if err := obj.Save(ctx, s.store); err != nil {
		return nil, err
	}
	return obj, nil
}

// Find resolves class and id to a stored object. Checks run in a fixed
// order: class name, class, id, then the registry lookup.
func (s *Service) Find(ctx context.Context, class, id string) (*domain.Object, error) {
	kind, err := s.kind(class)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrInstanceIDMissing
	}

	objects, err := s.store.All(ctx, kind)
	if err != nil {
		return nil, err
	}
	obj, ok := objects[domain.Key(kind, id)]
	if !ok {
		return nil, ErrNoInstanceFound
	}
	return obj, nil
}

// Destroy removes the object and flushes the store.
func (s *Service) Destroy(ctx context.Context, class, id string) error {
	obj, err := s.Find(ctx, class, id)
	if err != nil {
		return err
	}
	if err := obj.Delete(ctx, s.store); err != nil {
		return err
	}
	return s.store.Save(ctx)
}

// All lists stored objects, oldest first. An empty class lists every kind.
func (s *Service) All(ctx context.Context, class string) ([]*domain.Object, error) {
	var kind domain.Kind
	if class != "" {
		k, ok := domain.Lookup(class)
		if !ok {
			return nil, ErrClassDoesNotExist
		}
		kind = k
	}

	objects, err := s.store.All(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Object, 0, len(objects))
	for _, obj := range objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Key() < out[j].Key()
	})
	return out, nil
}

// Count returns the number of registry keys whose kind prefix equals class.
// Unknown or empty classes count zero.
func (s *Service) Count(ctx context.Context, class string) (int, error) {
	objects, err := s.store.All(ctx, "")
	if err != nil {
		return 0, err
	}
	n := 0
	for key := range objects {
		if domain.KindOf(key) == class {
			n++
		}
	}
	return n, nil
}

// Update applies attrs in order and saves. It stops at the first pair with a
// missing name or value; pairs applied before that stay on the live object
// but are not saved.
func (s *Service) Update(ctx context.Context, obj *domain.Object, attrs []Attr) error {
	for _, attr := range attrs {
		if attr.Name == "" {
			return ErrAttributeNameMissing
		}
		if isEmpty(attr.Value) {
			return ErrValueMissing
		}
		if domain.IsReserved(attr.Name) {
			continue
		}
		value, err := coerce(attr.Name, attr.Value)
		if err != nil {
			return err
		}
		obj.Set(attr.Name, value)
	}
	return obj.Save(ctx, s.store)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func coerce(name string, v any) (any, error) {
	switch numericAttrs[name] {
	case domain.FieldInt:
		return toInt(v)
	case domain.FieldFloat:
		return toFloat(v)
	}
	return v, nil
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if math.IsNaN(t) || t < math.MinInt || t >= math.MaxInt {
			return 0, ErrValueNotNumber
		}
		return int(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, ErrValueNotNumber
		}
		return n, nil
	}
	return 0, ErrValueNotNumber
}

// toFloat converts v to a finite float. NaN and infinities cannot be
// encoded by the backends and are refused.
func toFloat(v any) (float64, error) {
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrValueNotNumber
	}
	return f, nil
}

func parseFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, ErrValueNotNumber
		}
		return f, nil
	}
	return 0, ErrValueNotNumber
}
