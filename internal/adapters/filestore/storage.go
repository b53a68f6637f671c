// Package filestore keeps the registry in memory and persists it as a single
// JSON document keyed by "<Kind>.<id>".
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/soamaka/AirBnB-clone/internal/domain"
)

const DefaultPath = "file.json"

type Storage struct {
	path    string
	objects map[string]*domain.Object
	log     zerolog.Logger
}

func New(path string, logger zerolog.Logger) *Storage {
	if path == "" {
		path = DefaultPath
	}
	return &Storage{
		path:    path,
		objects: map[string]*domain.Object{},
		log:     logger.With().Str("backend", "file").Str("path", path).Logger(),
	}
}

// Path returns the location of the JSON document.
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) All(_ context.Context, kind domain.Kind) (map[string]*domain.Object, error) {
	out := make(map[string]*domain.Object, len(s.objects))
	for key, obj := range s.objects {
		if kind == "" || obj.Kind == kind {
			out[key] = obj
		}
	}
	return out, nil
}

func (s *Storage) New(_ context.Context, obj *domain.Object) error {
	s.objects[obj.Key()] = obj
	return nil
}

func (s *Storage) Delete(_ context.Context, obj *domain.Object) error {
	if obj == nil {
		return nil
	}
	delete(s.objects, obj.Key())
	return nil
}

// Save overwrites the document with the whole registry.
func (s *Storage) Save(_ context.Context) error {
	doc := make(map[string]map[string]any, len(s.objects))
	for key, obj := range s.objects {
		doc[key] = obj.ToDict()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode registry")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	s.log.Debug().Int("objects", len(doc)).Msg("registry saved")
	return nil
}

// Reload merges the document into the registry. A missing document is not an
// error; an empty or malformed one is.
func (s *Storage) Reload(_ context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "read %s", s.path)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]map[string]any
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrapf(err, "decode %s", s.path)
	}

	loaded := 0
	for key, raw := range doc {
		tag, _ := raw[domain.TypeTag].(string)
		kind, ok := domain.Lookup(tag)
		if !ok {
			s.log.Debug().Str("key", key).Str("tag", tag).Msg("skipping unknown type tag")
			continue
		}
		obj, err := domain.FromMap(kind, normalize(kind, raw))
		if err != nil {
			return errors.Wrapf(err, "rebuild %s", key)
		}
		s.objects[key] = obj
		loaded++
	}
	s.log.Debug().Int("objects", loaded).Msg("registry reloaded")
	return nil
}

// Close is equivalent to Reload.
func (s *Storage) Close(ctx context.Context) error {
	return s.Reload(ctx)
}

// normalize converts decoded JSON values back into the types the object
// model uses: int and float64 numbers, []string for string lists.
func normalize(kind domain.Kind, raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for name, v := range raw {
		f, declared := domain.FieldOf(kind, name)
		switch {
		case declared && f.Type == domain.FieldInt:
			out[name] = asInt(v)
		case declared && f.Type == domain.FieldFloat:
			out[name] = asFloat(v)
		case declared && f.Type == domain.FieldStringList:
			out[name] = asStrings(v)
		default:
			out[name] = plain(v)
		}
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			if n, err := strconv.Atoi(s); err == nil {
				return n
			}
		}
		f, _ := t.Float64()
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	default:
		return v
	}
}

func asInt(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return plain(v)
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	return plain(v)
}

func asFloat(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return plain(v)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return plain(v)
}

func asStrings(v any) any {
	items, ok := v.([]any)
	if !ok {
		return plain(v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return plain(v)
		}
		out = append(out, s)
	}
	return out
}
