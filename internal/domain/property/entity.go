// internal/domain/property/entity.go
package property

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeVilla      PropertyType = "villa"
	TypeCommercial PropertyType = "commercial"
	TypeLand       PropertyType = "land"
)

func (t PropertyType) Valid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeVilla, TypeCommercial, TypeLand:
		return true
	}
	return false
}

type Property struct {
	ID          int64           `json:"id" db:"id"`
	RealtorID   int64           `json:"realtor_id" db:"realtor_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       float64         `json:"price" db:"price"`
	Type        PropertyType    `json:"property_type" db:"property_type"`
	Bedrooms    int             `json:"bedrooms" db:"bedrooms"`
	Bathrooms   int             `json:"bathrooms" db:"bathrooms"`
	Area        float64         `json:"area" db:"area"`
	Address     string          `json:"address" db:"address"`
	City        string          `json:"city" db:"city"`
	Latitude    sql.NullFloat64 `json:"latitude,omitempty" db:"latitude"`
	Longitude   sql.NullFloat64 `json:"longitude,omitempty" db:"longitude"`

	Features     pq.StringArray `json:"features" db:"features"`
	Images       pq.StringArray `json:"images" db:"images"`
	PrimaryImage string         `json:"primary_image" db:"primary_image"`

	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Location returns the human-facing place of the listing, preferring the
// city over the street address.
func (p *Property) Location() string {
	if p.City != "" {
		return p.City
	}
	return p.Address
}

// CoverImage returns the image used to represent the listing: the primary
// image when set, otherwise the first of the gallery, otherwise empty.
func (p *Property) CoverImage() string {
	if p.PrimaryImage != "" {
		return p.PrimaryImage
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
