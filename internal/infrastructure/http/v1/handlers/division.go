package handlers

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/core/apperror"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/infrastructure/http/v1/dto"
	"inventaris/internal/infrastructure/http/v1/middleware"
)

// DivisionHandler serves the division catalog.
type DivisionHandler struct {
	*BaseHandler
	service *division.Service
}

// NewDivisionHandler creates a division handler.
func NewDivisionHandler(base *BaseHandler, service *division.Service) *DivisionHandler {
	return &DivisionHandler{BaseHandler: base, service: service}
}

// List handles GET /divisions.
func (h *DivisionHandler) List(c *gin.Context) {
	divisions, err := h.service.List(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, divisions)
}

// Get handles GET /divisions/:id.
func (h *DivisionHandler) Get(c *gin.Context) {
	divisionID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), h.CompanyID(c), divisionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !middleware.GetScope(c).Contains(d.ID) {
		h.Error(c, apperror.NewDivisionDenied())
		return
	}
	h.OK(c, d)
}

// Create handles POST /divisions.
func (h *DivisionHandler) Create(c *gin.Context) {
	var req dto.CreateDivisionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d := division.New(h.CompanyID(c), req.Name)
	d.Description = req.Description

	if err := h.service.Create(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, d.ID)
}

// Update handles PUT /divisions/:id.
func (h *DivisionHandler) Update(c *gin.Context) {
	divisionID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDivisionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Get(c.Request.Context(), h.CompanyID(c), divisionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	d.Name = req.Name
	d.Description = req.Description

	if err := h.service.Update(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Delete handles DELETE /divisions/:id.
func (h *DivisionHandler) Delete(c *gin.Context) {
	divisionID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), h.CompanyID(c), divisionID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
