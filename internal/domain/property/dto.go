// internal/domain/property/dto.go
package property

type CreatePropertyRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,min=0"`
	Type        string   `json:"property_type" binding:"required"`
	Bedrooms    int      `json:"bedrooms" binding:"min=0"`
	Bathrooms   int      `json:"bathrooms" binding:"min=0"`
	Area        float64  `json:"area" binding:"min=0"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
	PrimaryImage string  `json:"primary_image"`
}

type UpdatePropertyRequest struct {
	Title        *string  `json:"title" binding:"omitempty,max=200"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	Bedrooms     *int     `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms    *int     `json:"bathrooms" binding:"omitempty,min=0"`
	Area         *float64 `json:"area" binding:"omitempty,min=0"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
	PrimaryImage *string  `json:"primary_image"`
	Active       *bool    `json:"active"`
}

// SearchFilters narrows a property listing query. All fields are optional.
type SearchFilters struct {
	City     string  `form:"city"`
	Type     string  `form:"property_type"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Bedrooms int     `form:"bedrooms"`
	Search   string  `form:"search"`
	OnlyActive bool  `form:"only_active"`
}
