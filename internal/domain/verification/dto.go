// internal/domain/verification/dto.go
package verification

type StartRequest struct {
	Documents []string `json:"documents"`
}

// CompleteCallback is posted by the provider redirect page when the
// external session finishes.
type CompleteCallback struct {
	Reference string `json:"reference" binding:"required"`
	Outcome   string `json:"outcome" binding:"required,oneof=approved rejected"`
}
