package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/events"
	"inventaris/internal/infrastructure/http/v1/dto"
	"inventaris/internal/infrastructure/http/v1/middleware"
)

// EventsHandler serves the three event streams: opening balances,
// transactions, and adjustments.
type EventsHandler struct {
	*BaseHandler
	service *events.Service
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(base *BaseHandler, service *events.Service) *EventsHandler {
	return &EventsHandler{BaseHandler: base, service: service}
}

func (h *EventsHandler) parseDate(c *gin.Context, field, value string) (dateonly.Date, bool) {
	d, err := dateonly.Parse(value)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+field).WithDetail("field", field))
		return dateonly.Date{}, false
	}
	return d, true
}

// --- Opening balances ---

// CreateOpening handles POST /openings.
func (h *EventsHandler) CreateOpening(c *gin.Context) {
	var req dto.CreateOpeningRequest
	if !h.BindJSON(c, &req) {
		return
	}
	o, ok := h.openingFromRequest(c, req.ItemID, req)
	if !ok {
		return
	}

	if err := h.service.AddOpening(c.Request.Context(), middleware.GetScope(c), o); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, o.ID)
}

// UpdateOpening handles PUT /openings/:id.
func (h *EventsHandler) UpdateOpening(c *gin.Context) {
	openingID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOpeningRequest
	if !h.BindJSON(c, &req) {
		return
	}
	o, ok := h.openingFromRequest(c, req.ItemID, dto.CreateOpeningRequest(req))
	if !ok {
		return
	}
	o.ID = openingID

	if err := h.service.UpdateOpening(c.Request.Context(), middleware.GetScope(c), o); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, o)
}

// DeleteOpening handles DELETE /openings/:id.
func (h *EventsHandler) DeleteOpening(c *gin.Context) {
	openingID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteOpening(c.Request.Context(), middleware.GetScope(c), h.CompanyID(c), openingID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListOpenings handles GET /openings.
func (h *EventsHandler) ListOpenings(c *gin.Context) {
	openings, err := h.service.ListOpenings(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, openings)
}

func (h *EventsHandler) openingFromRequest(c *gin.Context, itemIDStr string, req dto.CreateOpeningRequest) (*events.OpeningBalance, bool) {
	itemID, ok := h.ParseID(c, "itemId", itemIDStr)
	if !ok {
		return nil, false
	}
	date, ok := h.parseDate(c, "openingDate", req.OpeningDate)
	if !ok {
		return nil, false
	}
	return &events.OpeningBalance{
		ID:           id.New(),
		CompanyID:    h.CompanyID(c),
		ItemID:       itemID,
		Qty:          req.Qty,
		PricePerUnit: req.PricePerUnit,
		Note:         req.Note,
		OpeningDate:  date,
		CreatedBy:    h.UserID(c),
		CreatedAt:    time.Now().UTC(),
	}, true
}

// --- Transactions ---

// CreateTransaction handles POST /transactions.
func (h *EventsHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	itemID, ok := h.ParseID(c, "itemId", req.ItemID)
	if !ok {
		return
	}
	date, ok := h.parseDate(c, "txnDate", req.TxnDate)
	if !ok {
		return
	}

	t := &events.Transaction{
		ID:           id.New(),
		CompanyID:    h.CompanyID(c),
		ItemID:       itemID,
		Type:         events.TxnType(req.Type),
		Qty:          req.Qty,
		PricePerUnit: req.PricePerUnit,
		Note:         req.Note,
		TxnDate:      date,
		CreatedBy:    h.UserID(c),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.service.AddTransaction(c.Request.Context(), middleware.GetScope(c), t); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, t.ID)
}

// ListTransactions handles GET /transactions?type=IN|OUT.
func (h *EventsHandler) ListTransactions(c *gin.Context) {
	var q dto.TransactionListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	txns, err := h.service.ListTransactions(c.Request.Context(), h.CompanyID(c), events.TxnType(q.Type), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, txns)
}

// --- Adjustments ---

// CreateAdjustment handles POST /adjustments.
func (h *EventsHandler) CreateAdjustment(c *gin.Context) {
	var req dto.CreateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	itemID, ok := h.ParseID(c, "itemId", req.ItemID)
	if !ok {
		return
	}
	date, ok := h.parseDate(c, "adjDate", req.AdjDate)
	if !ok {
		return
	}

	a := &events.Adjustment{
		ID:        id.New(),
		CompanyID: h.CompanyID(c),
		ItemID:    itemID,
		QtyDelta:  req.QtyDelta,
		Note:      req.Note,
		AdjDate:   date,
		CreatedBy: h.UserID(c),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.service.AddAdjustment(c.Request.Context(), middleware.GetScope(c), a); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, a.ID)
}

// ListAdjustments handles GET /adjustments.
func (h *EventsHandler) ListAdjustments(c *gin.Context) {
	adjs, err := h.service.ListAdjustments(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, adjs)
}
