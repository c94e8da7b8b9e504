// internal/handlers/verification/verification_handler.go
package verification

import (
	"net/http"

	"homescout-service/internal/domain/verification"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/verification"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationService *service.VerificationService
}

func NewVerificationHandler(verificationService *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// Start opens a KYC session. POST /verification/start
func (h *VerificationHandler) Start(c *gin.Context) {
	var req verification.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	v, err := h.verificationService.Start(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrConflict):
			response.Error(c, http.StatusConflict, "a verification is already in progress", nil)
		case xerrors.Is(err, xerrors.ErrDuplicateEntry):
			response.Error(c, http.StatusConflict, "account is already verified", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to start verification", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "verification started", v)
}

// Status returns the latest request. GET /verification/status
func (h *VerificationHandler) Status(c *gin.Context) {
	v, err := h.verificationService.Status(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.NotFound(c, "no verification request found")
		return
	}

	response.Success(c, http.StatusOK, "verification status", v)
}

// Complete receives the provider decision. POST /verification/callback
func (h *VerificationHandler) Complete(c *gin.Context) {
	var cb verification.CompleteCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	v, err := h.verificationService.Complete(c.Request.Context(), &cb)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "verification request not found")
		case xerrors.Is(err, xerrors.ErrInvalidStatus):
			response.Error(c, http.StatusConflict, "verification already completed", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to complete verification", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "verification completed", v)
}
