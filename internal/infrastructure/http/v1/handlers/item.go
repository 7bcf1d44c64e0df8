package handlers

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/core/apperror"
	"inventaris/internal/domain/catalogs/item"
	"inventaris/internal/infrastructure/http/v1/dto"
	"inventaris/internal/infrastructure/http/v1/middleware"
)

// ItemHandler serves the item catalog.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates an item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service}
}

// List handles GET /items.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	i, err := h.service.Get(c.Request.Context(), h.CompanyID(c), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !middleware.GetScope(c).Contains(i.DivisionID) {
		h.Error(c, apperror.NewDivisionDenied())
		return
	}
	h.OK(c, i)
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	groupID, ok := h.ParseID(c, "groupId", req.GroupID)
	if !ok {
		return
	}

	i := item.New(h.CompanyID(c), groupID, req.Name)
	i.SKU = req.SKU
	i.Unit = req.Unit
	i.ExpiryDate = req.ExpiryDate
	if req.MinStock != nil {
		i.MinStock = *req.MinStock
	}

	if err := h.service.Create(c.Request.Context(), middleware.GetScope(c), i); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, i.ID)
}

// Update handles PUT /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	groupID, ok := h.ParseID(c, "groupId", req.GroupID)
	if !ok {
		return
	}

	i, err := h.service.Get(c.Request.Context(), h.CompanyID(c), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	i.GroupID = groupID
	i.Name = req.Name
	i.SKU = req.SKU
	i.Unit = req.Unit
	i.ExpiryDate = req.ExpiryDate
	if req.MinStock != nil {
		i.MinStock = *req.MinStock
	}

	if err := h.service.Update(c.Request.Context(), middleware.GetScope(c), i); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, i)
}

// Delete handles DELETE /items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.GetScope(c), h.CompanyID(c), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
