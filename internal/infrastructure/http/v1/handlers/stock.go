package handlers

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/domain/stock"
	"inventaris/internal/infrastructure/http/v1/middleware"
)

// StockHandler serves current stock views and the dashboard.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// Current handles GET /stock/current.
func (h *StockHandler) Current(c *gin.Context) {
	rows, err := h.service.Current(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// LowStock handles GET /stock/low.
func (h *StockHandler) LowStock(c *gin.Context) {
	rows, err := h.service.LowStock(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Dashboard handles GET /dashboard.
func (h *StockHandler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}
