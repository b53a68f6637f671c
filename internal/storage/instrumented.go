package storage

import (
	"context"

	"github.com/soamaka/AirBnB-clone/internal/domain"
)

// instrumented decorates a backend with operation metrics.
type instrumented struct {
	next    domain.Storage
	metrics *Metrics
}

// Instrument wraps store so that every operation is counted.
func Instrument(store domain.Storage, metrics *Metrics) domain.Storage {
	return &instrumented{next: store, metrics: metrics}
}

func (s *instrumented) observe(err error) error {
	if err != nil {
		s.metrics.errorCounter.Inc(1)
	}
	return err
}

func (s *instrumented) All(ctx context.Context, kind domain.Kind) (map[string]*domain.Object, error) {
	objects, err := s.next.All(ctx, kind)
	if err == nil && kind == "" {
		s.metrics.objects.Update(float64(len(objects)))
	}
	return objects, s.observe(err)
}

func (s *instrumented) New(ctx context.Context, obj *domain.Object) error {
	s.metrics.newCounter.Inc(1)
	return s.observe(s.next.New(ctx, obj))
}

func (s *instrumented) Delete(ctx context.Context, obj *domain.Object) error {
	s.metrics.deleteCounter.Inc(1)
	return s.observe(s.next.Delete(ctx, obj))
}

func (s *instrumented) Save(ctx context.Context) error {
	s.metrics.saveCounter.Inc(1)
	sw := s.metrics.saveTimer.Start()
	defer sw.Stop()
	return s.observe(s.next.Save(ctx))
}

func (s *instrumented) Reload(ctx context.Context) error {
	s.metrics.reloadCounter.Inc(1)
	sw := s.metrics.reloadTimer.Start()
	defer sw.Stop()
	return s.observe(s.next.Reload(ctx))
}

func (s *instrumented) Close(ctx context.Context) error {
	return s.observe(s.next.Close(ctx))
}
