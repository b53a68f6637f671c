package domain

import "context"

// Storage is the registry of live objects and its durable form.
// Keys are "<Kind>.<id>". An empty kind passed to All selects every kind.
type Storage interface {
	All(ctx context.Context, kind Kind) (map[string]*Object, error)
	New(ctx context.Context, obj *Object) error
	Delete(ctx context.Context, obj *Object) error
	Save(ctx context.Context) error
	Reload(ctx context.Context) error
	Close(ctx context.Context) error
}
