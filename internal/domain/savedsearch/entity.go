// internal/domain/savedsearch/entity.go
package savedsearch

import "time"

type SavedSearch struct {
	ID        int64                  `json:"id" db:"id"`
	UserID    int64                  `json:"user_id" db:"user_id"`
	Name      string                 `json:"name" db:"name"`
	Filters   map[string]interface{} `json:"filters" db:"filters"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

type CreateSavedSearchRequest struct {
	Name    string                 `json:"name" binding:"required,max=120"`
	Filters map[string]interface{} `json:"filters" binding:"required"`
}
