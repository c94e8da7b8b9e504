// internal/handlers/preferences/preferences_handler.go
package preferences

import (
	"net/http"

	"homescout-service/internal/domain/preferences"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/preferences"

	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// Get returns the caller's search preferences. GET /preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	p, err := h.preferencesService.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load preferences", err)
		return
	}

	response.Success(c, http.StatusOK, "preferences", p)
}

// Update replaces the caller's search preferences. PUT /preferences
func (h *PreferencesHandler) Update(c *gin.Context) {
	var req preferences.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	p, err := h.preferencesService.Update(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, "invalid price range", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to save preferences", err)
		return
	}

	response.Success(c, http.StatusOK, "preferences saved", p)
}
