// internal/handlers/property/property_handler.go
package property

import (
	"net/http"

	"homescout-service/internal/domain/property"
	"homescout-service/internal/domain/savedsearch"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/property"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyService *service.PropertyService
}

func NewPropertyHandler(propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create adds a listing. POST /properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req property.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	p, err := h.propertyService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, "unknown property type", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create property", err)
		return
	}

	response.Success(c, http.StatusCreated, "property created", p)
}

// Get returns one listing. GET /properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "property not found")
		return
	}

	response.Success(c, http.StatusOK, "property", p)
}

// Update edits a listing. PATCH /properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req property.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	p, err := h.propertyService.Update(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondOwned(c, err, "failed to update property")
		return
	}

	response.Success(c, http.StatusOK, "property updated", p)
}

// Delete removes a listing. DELETE /properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondOwned(c, err, "failed to delete property")
		return
	}

	response.Success(c, http.StatusOK, "property deleted", nil)
}

// ListMine lists the caller's listings. GET /properties/mine
func (h *PropertyHandler) ListMine(c *gin.Context) {
	properties, err := h.propertyService.ListMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list properties", err)
		return
	}

	response.Success(c, http.StatusOK, "properties", properties)
}

// Search is the public listing search. GET /properties
func (h *PropertyHandler) Search(c *gin.Context) {
	var filters property.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	properties, err := h.propertyService.Search(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to search properties", err)
		return
	}

	response.Success(c, http.StatusOK, "properties", properties)
}

// SaveSearch stores a named filter set. POST /saved-searches
func (h *PropertyHandler) SaveSearch(c *gin.Context) {
	var req savedsearch.CreateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	ss, err := h.propertyService.SaveSearch(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save search", err)
		return
	}

	response.Success(c, http.StatusCreated, "search saved", ss)
}

// ListSavedSearches lists the caller's saved searches. GET /saved-searches
func (h *PropertyHandler) ListSavedSearches(c *gin.Context) {
	searches, err := h.propertyService.ListSavedSearches(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list saved searches", err)
		return
	}

	response.Success(c, http.StatusOK, "saved searches", searches)
}

// DeleteSavedSearch removes a saved search. DELETE /saved-searches/:id
func (h *PropertyHandler) DeleteSavedSearch(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteSavedSearch(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.NotFound(c, "saved search not found")
		return
	}

	response.Success(c, http.StatusOK, "saved search deleted", nil)
}

// respondOwned maps ownership and lookup errors to HTTP codes.
func respondOwned(c *gin.Context, err error, fallback string) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "property not found")
	case xerrors.Is(err, xerrors.ErrNotOwner):
		response.Forbidden(c, "not your property")
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
