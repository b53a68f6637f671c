// Package relational stores objects in one table per kind through gorm.
//
// A Storage behaves like an ORM session: objects passed to New are tracked
// in an identity map and written on Save; Delete removes the row and commits
// straight away, letting foreign keys cascade to children.
package relational

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soamaka/AirBnB-clone/internal/domain"
)

type Storage struct {
	db      *gorm.DB
	objects map[string]*domain.Object
	dirty   map[string]bool
	log     zerolog.Logger
}

func NewStorage(db *gorm.DB, logger zerolog.Logger) *Storage {
	return &Storage{
		db:      db,
		objects: map[string]*domain.Object{},
		dirty:   map[string]bool{},
		log:     logger.With().Str("backend", "db").Logger(),
	}
}

func (s *Storage) All(ctx context.Context, kind domain.Kind) (map[string]*domain.Object, error) {
	kinds := domain.Kinds()
	if kind != "" {
		kinds = []domain.Kind{kind}
	}

	out := map[string]*domain.Object{}
	for _, k := range kinds {
		rows, err := s.load(ctx, k)
		if err != nil {
			return nil, err
		}
		for _, obj := range rows {
			key := obj.Key()
			if cached, ok := s.objects[key]; ok {
				obj = cached
			} else {
				s.objects[key] = obj
			}
			out[key] = obj
		}
	}

	for key, obj := range s.objects {
		if _, ok := out[key]; ok {
			continue
		}
		if kind != "" && obj.Kind != kind {
			continue
		}
		if s.dirty[key] {
			out[key] = obj
			continue
		}
		// committed earlier but gone now, e.g. removed by a cascade
		delete(s.objects, key)
	}
	return out, nil
}

func (s *Storage) load(ctx context.Context, kind domain.Kind) ([]*domain.Object, error) {
	switch kind {
	case domain.KindUser:
		return loadRows[UserModel](ctx, s.db)
	case domain.KindState:
		return loadRows[StateModel](ctx, s.db)
	case domain.KindCity:
		return loadRows[CityModel](ctx, s.db)
	case domain.KindAmenity:
		return loadRows[AmenityModel](ctx, s.db)
	case domain.KindPlace:
		places, err := loadRows[PlaceModel](ctx, s.db)
		if err != nil {
			return nil, err
		}
		return places, s.attachAmenities(ctx, places)
	case domain.KindReview:
		return loadRows[ReviewModel](ctx, s.db)
	}
	return nil, errors.Errorf("no table for kind %q", kind)
}

func loadRows[M record](ctx context.Context, db *gorm.DB) ([]*domain.Object, error) {
	var rows []M
	if err := db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		var m M
		return nil, errors.Wrapf(err, "query %s", m.TableName())
	}
	out := make([]*domain.Object, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.object())
	}
	return out, nil
}

func (s *Storage) attachAmenities(ctx context.Context, places []*domain.Object) error {
	if len(places) == 0 {
		return nil
	}
	var links []PlaceAmenityModel
	if err := s.db.WithContext(ctx).Order("amenity_id").Find(&links).Error; err != nil {
		return errors.Wrap(err, "query place_amenity")
	}
	byPlace := map[string][]string{}
	for _, link := range links {
		byPlace[link.PlaceID] = append(byPlace[link.PlaceID], link.AmenityID)
	}
	for _, place := range places {
		if ids, ok := byPlace[place.ID]; ok {
			place.Set("amenity_ids", ids)
		}
	}
	return nil
}

func (s *Storage) New(_ context.Context, obj *domain.Object) error {
	if _, err := emptyRecord(obj.Kind); err != nil {
		return err
	}
	key := obj.Key()
	s.objects[key] = obj
	s.dirty[key] = true
	return nil
}

// Delete removes the row of obj and commits. Rows owned by it are removed by
// the foreign key cascades.
func (s *Storage) Delete(ctx context.Context, obj *domain.Object) error {
	if obj == nil {
		return nil
	}
	key := obj.Key()
	delete(s.objects, key)
	delete(s.dirty, key)

	model, err := emptyRecord(obj.Kind)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ?", obj.ID).Delete(model)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %s", key)
	}
	s.log.Debug().Str("key", key).Int64("rows", res.RowsAffected).Msg("object deleted")
	return nil
}

// Save writes every pending object in one transaction, owners first.
func (s *Storage) Save(ctx context.Context) error {
	if len(s.dirty) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.dirty))
	for key := range s.dirty {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range domain.Kinds() {
			for _, key := range keys {
				obj := s.objects[key]
				if obj == nil || obj.Kind != kind {
					continue
				}
				row, err := toRecord(obj)
				if err != nil {
					return err
				}
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error; err != nil {
					return errors.Wrapf(err, "upsert %s", key)
				}
				if kind == domain.KindPlace {
					if err := syncAmenities(tx, obj); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().Int("objects", len(keys)).Msg("session committed")
	s.dirty = map[string]bool{}
	return nil
}

// syncAmenities rewrites the place_amenity rows of a place from its
// amenity_ids. Ids without an amenity row are left out.
func syncAmenities(tx *gorm.DB, place *domain.Object) error {
	if err := tx.Where("place_id = ?", place.ID).Delete(&PlaceAmenityModel{}).Error; err != nil {
		return errors.Wrapf(err, "clear amenities of %s", place.ID)
	}
	ids := domain.AmenityIDs(place)
	if len(ids) == 0 {
		return nil
	}
	var existing []string
	if err := tx.Model(&AmenityModel{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return errors.Wrap(err, "query amenities")
	}
	known := make(map[string]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		if err := tx.Create(&PlaceAmenityModel{PlaceID: place.ID, AmenityID: id}).Error; err != nil {
			return errors.Wrapf(err, "link amenity %s to %s", id, place.ID)
		}
	}
	return nil
}

// Reload starts a new session so that committed rows are read afresh.
// Objects passed to New but never saved are dropped.
func (s *Storage) Reload(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping database")
	}
	s.reset()
	return nil
}

// Close discards the session. The connection pool stays usable.
func (s *Storage) Close(_ context.Context) error {
	s.reset()
	return nil
}

func (s *Storage) reset() {
	s.objects = map[string]*domain.Object{}
	s.dirty = map[string]bool{}
}
