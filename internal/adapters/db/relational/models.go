package relational

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/soamaka/AirBnB-clone/internal/domain"
)

// record is a table row that converts back into a domain object.
type record interface {
	TableName() string
	object() *domain.Object
}

type UserModel struct {
	ID        string    `gorm:"primaryKey;size:60"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	Email     string    `gorm:"size:128;not null"`
	Password  string    `gorm:"size:128;not null"`
	FirstName *string   `gorm:"size:128"`
	LastName  *string   `gorm:"size:128"`
}

func (UserModel) TableName() string { return "users" }

func (m UserModel) object() *domain.Object {
	attrs := map[string]any{"email": m.Email, "password": m.Password}
	setString(attrs, "first_name", m.FirstName)
	setString(attrs, "last_name", m.LastName)
	return domain.Restore(domain.KindUser, m.ID, m.CreatedAt, m.UpdatedAt, attrs)
}

type StateModel struct {
	ID        string    `gorm:"primaryKey;size:60"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	Name      string    `gorm:"size:128;not null"`
}

func (StateModel) TableName() string { return "states" }

func (m StateModel) object() *domain.Object {
	return domain.Restore(domain.KindState, m.ID, m.CreatedAt, m.UpdatedAt, map[string]any{"name": m.Name})
}

type CityModel struct {
	ID        string    `gorm:"primaryKey;size:60"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	StateID   string    `gorm:"size:60;not null"`
	Name      string    `gorm:"size:128;not null"`
}

func (CityModel) TableName() string { return "cities" }

func (m CityModel) object() *domain.Object {
	return domain.Restore(domain.KindCity, m.ID, m.CreatedAt, m.UpdatedAt, map[string]any{
		"state_id": m.StateID,
		"name":     m.Name,
	})
}

type AmenityModel struct {
	ID        string    `gorm:"primaryKey;size:60"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	Name      string    `gorm:"size:128;not null"`
}

func (AmenityModel) TableName() string { return "amenities" }

func (m AmenityModel) object() *domain.Object {
	return domain.Restore(domain.KindAmenity, m.ID, m.CreatedAt, m.UpdatedAt, map[string]any{"name": m.Name})
}

type PlaceModel struct {
	ID              string    `gorm:"primaryKey;size:60"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
	CityID          string    `gorm:"size:60;not null"`
	UserID          string    `gorm:"size:60;not null"`
	Name            string    `gorm:"size:128;not null"`
	Description     *string   `gorm:"size:1024"`
	NumberRooms     int       `gorm:"not null"`
	NumberBathrooms int       `gorm:"not null"`
	MaxGuest        int       `gorm:"not null"`
	PriceByNight    int       `gorm:"not null"`
	Latitude        *float64
	Longitude       *float64
}

func (PlaceModel) TableName() string { return "places" }

func (m PlaceModel) object() *domain.Object {
	attrs := map[string]any{
		"city_id":          m.CityID,
		"user_id":          m.UserID,
		"name":             m.Name,
		"number_rooms":     m.NumberRooms,
		"number_bathrooms": m.NumberBathrooms,
		"max_guest":        m.MaxGuest,
		"price_by_night":   m.PriceByNight,
	}
	setString(attrs, "description", m.Description)
	if m.Latitude != nil {
		attrs["latitude"] = *m.Latitude
	}
	if m.Longitude != nil {
		attrs["longitude"] = *m.Longitude
	}
	return domain.Restore(domain.KindPlace, m.ID, m.CreatedAt, m.UpdatedAt, attrs)
}

type ReviewModel struct {
	ID        string    `gorm:"primaryKey;size:60"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	PlaceID   string    `gorm:"size:60;not null"`
	UserID    string    `gorm:"size:60;not null"`
	Text      string    `gorm:"size:1024;not null"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (m ReviewModel) object() *domain.Object {
	return domain.Restore(domain.KindReview, m.ID, m.CreatedAt, m.UpdatedAt, map[string]any{
		"place_id": m.PlaceID,
		"user_id":  m.UserID,
		"text":     m.Text,
	})
}

type PlaceAmenityModel struct {
	PlaceID   string `gorm:"primaryKey;size:60"`
	AmenityID string `gorm:"primaryKey;size:60"`
}

func (PlaceAmenityModel) TableName() string { return "place_amenity" }

// toRecord maps an object onto the row of its kind. Undeclared attributes
// have no column and are dropped.
func toRecord(obj *domain.Object) (any, error) {
	switch obj.Kind {
	case domain.KindUser:
		return &UserModel{
			ID:        obj.ID,
			CreatedAt: obj.CreatedAt,
			UpdatedAt: obj.UpdatedAt,
			Email:     str(obj, "email"),
			Password:  str(obj, "password"),
			FirstName: strPtr(obj, "first_name"),
			LastName:  strPtr(obj, "last_name"),
		}, nil
	case domain.KindState:
		return &StateModel{ID: obj.ID, CreatedAt: obj.CreatedAt, UpdatedAt: obj.UpdatedAt, Name: str(obj, "name")}, nil
	case domain.KindCity:
		return &CityModel{
			ID:        obj.ID,
			CreatedAt: obj.CreatedAt,
			UpdatedAt: obj.UpdatedAt,
			StateID:   str(obj, "state_id"),
			Name:      str(obj, "name"),
		}, nil
	case domain.KindAmenity:
		return &AmenityModel{ID: obj.ID, CreatedAt: obj.CreatedAt, UpdatedAt: obj.UpdatedAt, Name: str(obj, "name")}, nil
	case domain.KindPlace:
		return &PlaceModel{
			ID:              obj.ID,
			CreatedAt:       obj.CreatedAt,
			UpdatedAt:       obj.UpdatedAt,
			CityID:          str(obj, "city_id"),
			UserID:          str(obj, "user_id"),
			Name:            str(obj, "name"),
			Description:     strPtr(obj, "description"),
			NumberRooms:     integer(obj, "number_rooms"),
			NumberBathrooms: integer(obj, "number_bathrooms"),
			MaxGuest:        integer(obj, "max_guest"),
			PriceByNight:    integer(obj, "price_by_night"),
			Latitude:        floatPtr(obj, "latitude"),
			Longitude:       floatPtr(obj, "longitude"),
		}, nil
	case domain.KindReview:
		return &ReviewModel{
			ID:        obj.ID,
			CreatedAt: obj.CreatedAt,
			UpdatedAt: obj.UpdatedAt,
			PlaceID:   str(obj, "place_id"),
			UserID:    str(obj, "user_id"),
			Text:      str(obj, "text"),
		}, nil
	}
	return nil, errors.Errorf("no table for kind %q", obj.Kind)
}

// emptyRecord returns a zero row used to target a table in deletes.
func emptyRecord(kind domain.Kind) (any, error) {
	switch kind {
	case domain.KindUser:
		return &UserModel{}, nil
	case domain.KindState:
		return &StateModel{}, nil
	case domain.KindCity:
		return &CityModel{}, nil
	case domain.KindAmenity:
		return &AmenityModel{}, nil
	case domain.KindPlace:
		return &PlaceModel{}, nil
	case domain.KindReview:
		return &ReviewModel{}, nil
	}
	return nil, errors.Errorf("no table for kind %q", kind)
}

func setString(attrs map[string]any, name string, v *string) {
	if v != nil {
		attrs[name] = *v
	}
}

func str(obj *domain.Object, name string) string {
	v, _ := obj.Get(name)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func strPtr(obj *domain.Object, name string) *string {
	if !obj.Has(name) {
		return nil
	}
	s := str(obj, name)
	return &s
}

func integer(obj *domain.Object, name string) int {
	v, _ := obj.Get(name)
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	}
	return 0
}

func floatPtr(obj *domain.Object, name string) *float64 {
	if !obj.Has(name) {
		return nil
	}
	v, _ := obj.Get(name)
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		f, _ = strconv.ParseFloat(t, 64)
	}
	return &f
}
