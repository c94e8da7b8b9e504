// internal/domain/salesrequest/dto.go
package salesrequest

type CreateSalesRequest struct {
	ClientName  string  `json:"client_name" binding:"required,max=200"`
	ClientPhone string  `json:"client_phone"`
	PropertyID  *int64  `json:"property_id"`
	Amount      float64 `json:"amount" binding:"min=0"`
	AssigneeID  *int64  `json:"assignee_id"`
}

// BoardRow decorates a request with its render-time SLA flag.
type BoardRow struct {
	SalesRequest
	SLABreach bool `json:"sla_breach"`
}

// Board groups the fetched collection into the five Kanban columns.
type Board struct {
	Columns map[Status][]BoardRow `json:"columns"`
	Total   int                   `json:"total"`
}
