// internal/handlers/showing/showing_handler.go
package showing

import (
	"net/http"

	"homescout-service/internal/domain/showing"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/showing"

	"github.com/gin-gonic/gin"
)

type ShowingHandler struct {
	showingService *service.ShowingService
}

func NewShowingHandler(showingService *service.ShowingService) *ShowingHandler {
	return &ShowingHandler{showingService: showingService}
}

// Schedule books a viewing. POST /showings
func (h *ShowingHandler) Schedule(c *gin.Context) {
	var req showing.CreateShowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	sh, err := h.showingService.Schedule(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondShowingErr(c, err, "failed to schedule showing")
		return
	}

	response.Success(c, http.StatusCreated, "showing scheduled", sh)
}

// List returns the caller's showings. GET /showings
func (h *ShowingHandler) List(c *gin.Context) {
	showings, err := h.showingService.ListForRealtor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list showings", err)
		return
	}

	response.Success(c, http.StatusOK, "showings", showings)
}

// ListByProperty returns a property's showings. GET /properties/:id/showings
func (h *ShowingHandler) ListByProperty(c *gin.Context) {
	propertyID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	showings, err := h.showingService.ListByProperty(c.Request.Context(), middleware.GetUserID(c), propertyID)
	if err != nil {
		respondShowingErr(c, err, "failed to list showings")
		return
	}

	response.Success(c, http.StatusOK, "showings", showings)
}

// UpdateStatus completes or cancels a showing. PATCH /showings/:id/status
func (h *ShowingHandler) UpdateStatus(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	sh, err := h.showingService.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), id, showing.Status(req.Status))
	if err != nil {
		respondShowingErr(c, err, "failed to update showing")
		return
	}

	response.Success(c, http.StatusOK, "showing updated", sh)
}

// ExportICS downloads a showing as a calendar file. GET /showings/:id/calendar
func (h *ShowingHandler) ExportICS(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	payload, filename, err := h.showingService.ExportICS(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondShowingErr(c, err, "failed to export showing")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(payload))
}

func respondShowingErr(c *gin.Context, err error, fallback string) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "not found")
	case xerrors.Is(err, xerrors.ErrNotOwner):
		response.Forbidden(c, "not your property")
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		response.ValidationError(c, "invalid showing status", nil)
	case xerrors.Is(err, xerrors.ErrInvalidStatus):
		response.Error(c, http.StatusConflict, "showing is no longer scheduled", nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
