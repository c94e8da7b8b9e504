// internal/handlers/sales/sales_handler.go
package sales

import (
	"net/http"
	"time"

	"homescout-service/internal/domain/salesrequest"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/sales"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	salesService *service.SalesService
}

func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Create opens a new pipeline card. POST /sales
func (h *SalesHandler) Create(c *gin.Context) {
	var req salesrequest.CreateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	sr, err := h.salesService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create sales request", err)
		return
	}

	response.Success(c, http.StatusCreated, "sales request created", sr)
}

// Board returns the Kanban view. GET /sales/board
func (h *SalesHandler) Board(c *gin.Context) {
	board, err := h.salesService.Board(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load board", err)
		return
	}

	response.Success(c, http.StatusOK, "sales board", board)
}

// Get returns one request. GET /sales/:id
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	sr, err := h.salesService.Get(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "sales request not found")
		return
	}

	response.Success(c, http.StatusOK, "sales request", sr)
}

// Advance moves a card one column forward. POST /sales/:id/advance
func (h *SalesHandler) Advance(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	sr, err := h.salesService.Advance(c.Request.Context(), id)
	if err != nil {
		respondSalesErr(c, err, "failed to advance sales request")
		return
	}

	response.Success(c, http.StatusOK, "sales request advanced", sr)
}

// Cancel aborts a card. POST /sales/:id/cancel
func (h *SalesHandler) Cancel(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	sr, err := h.salesService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondSalesErr(c, err, "failed to cancel sales request")
		return
	}

	response.Success(c, http.StatusOK, "sales request cancelled", sr)
}

// Invoice returns the invoice attached to a request. GET /sales/:id/invoice
func (h *SalesHandler) Invoice(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.salesService.Invoice(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "invoice not found")
		return
	}

	response.Success(c, http.StatusOK, "invoice", inv)
}

func respondSalesErr(c *gin.Context, err error, fallback string) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "sales request not found")
	case xerrors.Is(err, xerrors.ErrInvalidStatus):
		response.Error(c, http.StatusConflict, "transition not allowed from the current status", nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
