// internal/domain/preferences/entity.go
package preferences

import (
	"time"

	"github.com/lib/pq"
)

// BuyerPreferences is a per-user singleton row describing what the buyer
// is shopping for.
type BuyerPreferences struct {
	UserID        int64          `json:"user_id" db:"user_id"`
	MinPrice      float64        `json:"min_price" db:"min_price"`
	MaxPrice      float64        `json:"max_price" db:"max_price"`
	MinBedrooms   int            `json:"min_bedrooms" db:"min_bedrooms"`
	PropertyTypes pq.StringArray `json:"property_types" db:"property_types"`
	Cities        pq.StringArray `json:"cities" db:"cities"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

type UpdatePreferencesRequest struct {
	MinPrice      float64  `json:"min_price" binding:"min=0"`
	MaxPrice      float64  `json:"max_price" binding:"min=0"`
	MinBedrooms   int      `json:"min_bedrooms" binding:"min=0"`
	PropertyTypes []string `json:"property_types"`
	Cities        []string `json:"cities"`
}
