// internal/domain/lead/dto.go
package lead

type CreateLeadRequest struct {
	CampaignID *int64 `json:"campaign_id"`
	PropertyID int64  `json:"property_id" binding:"required"`
	Name       string `json:"name" binding:"required,max=200"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Message    string `json:"message" binding:"max=2000"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
