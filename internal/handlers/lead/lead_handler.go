// internal/handlers/lead/lead_handler.go
package lead

import (
	"net/http"

	"homescout-service/internal/domain/lead"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/lead"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create records a public inquiry. POST /leads
func (h *LeadHandler) Create(c *gin.Context) {
	var req lead.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	l, err := h.leadService.Create(c.Request.Context(), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create lead", err)
		return
	}

	response.Success(c, http.StatusCreated, "lead created", l)
}

// List returns the caller's leads. GET /leads
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leadService.ListForRealtor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list leads", err)
		return
	}

	response.Success(c, http.StatusOK, "leads", leads)
}

// ListByCampaign returns a campaign's leads. GET /campaigns/:id/leads
func (h *LeadHandler) ListByCampaign(c *gin.Context) {
	campaignID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	leads, err := h.leadService.ListByCampaign(c.Request.Context(), middleware.GetUserID(c), campaignID)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "campaign not found")
		case xerrors.Is(err, xerrors.ErrNotOwner):
			response.Forbidden(c, "not your campaign")
		default:
			response.Error(c, http.StatusInternalServerError, "failed to list leads", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "leads", leads)
}

// UpdateStatus moves a lead through the contact funnel. PATCH /leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req lead.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	l, err := h.leadService.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), id, req.Status)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "unknown lead status", nil)
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "lead not found")
		case xerrors.Is(err, xerrors.ErrNotOwner):
			response.Forbidden(c, "not your lead")
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update lead", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "lead updated", l)
}
