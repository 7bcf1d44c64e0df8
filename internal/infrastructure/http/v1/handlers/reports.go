package handlers

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/core/id"
	"inventaris/internal/domain/mutations"
	"inventaris/internal/domain/reports"
	"inventaris/internal/infrastructure/http/v1/dto"
	"inventaris/internal/infrastructure/http/v1/middleware"
)

// ReportsHandler serves the balance report and the mutation ledger.
type ReportsHandler struct {
	*BaseHandler
	engine *reports.Service
	ledger *mutations.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, engine *reports.Service, ledger *mutations.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, engine: engine, ledger: ledger}
}

// StockBalance handles GET /reports/stock.
// With grouped=true the flat rows are folded into the
// division -> group -> items presentation.
func (h *ReportsHandler) StockBalance(c *gin.Context) {
	var q dto.ReportQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rows, err := h.engine.Reconstruct(c.Request.Context(), h.CompanyID(c), q.Start, q.End, middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if q.Grouped {
		h.OK(c, reports.Group(rows))
		return
	}
	h.OK(c, rows)
}

// Mutations handles GET /reports/mutations.
func (h *ReportsHandler) Mutations(c *gin.Context) {
	var q dto.LedgerQuery
	if !h.BindQuery(c, &q) {
		return
	}

	var itemID *id.ID
	if q.ItemID != "" {
		parsed, ok := h.ParseID(c, "itemId", q.ItemID)
		if !ok {
			return
		}
		itemID = &parsed
	}

	ledger, err := h.ledger.BuildLedger(c.Request.Context(), h.CompanyID(c), q.Start, q.End, middleware.GetScope(c), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ledger)
}
