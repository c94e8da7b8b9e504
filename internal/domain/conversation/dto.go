// internal/domain/conversation/dto.go
package conversation

type StartConversationRequest struct {
	RealtorID  int64  `json:"realtor_id" binding:"required,gt=0"`
	PropertyID *int64 `json:"property_id"`
	Body       string `json:"body" binding:"required,max=2000"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}
