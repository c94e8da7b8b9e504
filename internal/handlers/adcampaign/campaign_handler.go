// internal/handlers/adcampaign/campaign_handler.go
package adcampaign

import (
	"net/http"

	"homescout-service/internal/domain/adcampaign"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/adcampaign"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignService *service.CampaignService
}

func NewCampaignHandler(campaignService *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// ========== Draft workflow ==========

// StartDraft opens a fresh draft. POST /campaigns/draft
func (h *CampaignHandler) StartDraft(c *gin.Context) {
	d, err := h.campaignService.StartDraft(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to start draft", err)
		return
	}

	response.Success(c, http.StatusCreated, "draft started", adcampaign.NewDraftView(d))
}

// GetDraft returns the in-progress draft. GET /campaigns/draft
func (h *CampaignHandler) GetDraft(c *gin.Context) {
	d, err := h.campaignService.GetDraft(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondDraftErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, "draft", adcampaign.NewDraftView(d))
}

// SelectProperty points the draft at a listing. PUT /campaigns/draft/property/:id
func (h *CampaignHandler) SelectProperty(c *gin.Context) {
	propertyID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.campaignService.SelectProperty(c.Request.Context(), middleware.GetUserID(c), propertyID)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "property not found")
		case xerrors.Is(err, xerrors.ErrNotOwner):
			response.Forbidden(c, "not your property")
		default:
			respondDraftErr(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, "property selected", adcampaign.NewDraftView(d))
}

// UpdateCreative stages creative edits. PUT /campaigns/draft/creative
func (h *CampaignHandler) UpdateCreative(c *gin.Context) {
	var req adcampaign.UpdateCreativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	d, err := h.campaignService.UpdateCreative(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondDraftErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, "creative updated", adcampaign.NewDraftView(d))
}

// UpdateBudget stages budget/schedule/targeting edits. PUT /campaigns/draft/budget
func (h *CampaignHandler) UpdateBudget(c *gin.Context) {
	var req adcampaign.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	d, err := h.campaignService.UpdateBudget(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondDraftErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, "budget updated", adcampaign.NewDraftView(d))
}

// Advance validates the current stage and moves forward. POST /campaigns/draft/advance
func (h *CampaignHandler) Advance(c *gin.Context) {
	d, ok, err := h.campaignService.AdvanceStage(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondDraftErr(c, err)
		return
	}
	if !ok {
		response.FieldErrors(c, "stage validation failed", d.Errors)
		return
	}

	response.Success(c, http.StatusOK, "advanced", adcampaign.NewDraftView(d))
}

// Retreat steps back one stage. POST /campaigns/draft/retreat
func (h *CampaignHandler) Retreat(c *gin.Context) {
	d, err := h.campaignService.RetreatStage(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondDraftErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, "retreated", adcampaign.NewDraftView(d))
}

// Submit turns the draft into a pending campaign. POST /campaigns/draft/submit
func (h *CampaignHandler) Submit(c *gin.Context) {
	campaign, fieldErrs, err := h.campaignService.SubmitDraft(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondDraftErr(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.FieldErrors(c, "submission validation failed", fieldErrs)
		return
	}

	response.Success(c, http.StatusCreated, "campaign submitted for review", campaign)
}

// Discard drops the draft. DELETE /campaigns/draft
func (h *CampaignHandler) Discard(c *gin.Context) {
	if err := h.campaignService.DiscardDraft(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to discard draft", err)
		return
	}

	response.Success(c, http.StatusOK, "draft discarded", nil)
}

// ========== Campaign board ==========

// Board returns the campaign list with stats. GET /campaigns
func (h *CampaignHandler) Board(c *gin.Context) {
	var filters adcampaign.BoardFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	board, err := h.campaignService.Board(c.Request.Context(), middleware.GetUserID(c), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load board", err)
		return
	}

	response.Success(c, http.StatusOK, "campaign board", board)
}

// Get returns one campaign. GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondCampaignErr(c, err, "failed to load campaign")
		return
	}

	response.Success(c, http.StatusOK, "campaign", campaign)
}

// Pause suspends delivery. POST /campaigns/:id/pause
func (h *CampaignHandler) Pause(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.Pause(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondCampaignErr(c, err, "failed to pause campaign")
		return
	}

	response.Success(c, http.StatusOK, "campaign paused", campaign)
}

// Resume restarts delivery. POST /campaigns/:id/resume
func (h *CampaignHandler) Resume(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.Resume(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondCampaignErr(c, err, "failed to resume campaign")
		return
	}

	response.Success(c, http.StatusOK, "campaign resumed", campaign)
}

// Delete removes a campaign. DELETE /campaigns/:id
func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondCampaignErr(c, err, "failed to delete campaign")
		return
	}

	response.Success(c, http.StatusOK, "campaign deleted", nil)
}

// Review approves or rejects a pending campaign. POST /admin/campaigns/:id/review
func (h *CampaignHandler) Review(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	campaign, err := h.campaignService.Review(c.Request.Context(), id, req.Approve)
	if err != nil {
		respondCampaignErr(c, err, "failed to review campaign")
		return
	}

	response.Success(c, http.StatusOK, "campaign reviewed", campaign)
}

func respondDraftErr(c *gin.Context, err error) {
	switch {
	case xerrors.Is(err, xerrors.ErrDraftNotStarted):
		response.NotFound(c, "no draft in progress")
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "selected property no longer exists")
	case xerrors.Is(err, xerrors.ErrNotOwner):
		response.Forbidden(c, "not your property")
	default:
		response.Error(c, http.StatusInternalServerError, "draft operation failed", err)
	}
}

func respondCampaignErr(c *gin.Context, err error, fallback string) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "campaign not found")
	case xerrors.Is(err, xerrors.ErrNotOwner):
		response.Forbidden(c, "not your campaign")
	case xerrors.Is(err, xerrors.ErrInvalidStatus):
		response.Error(c, http.StatusConflict, "transition not allowed from the current status", nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
