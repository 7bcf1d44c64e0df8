package handlers

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/core/apperror"
	"inventaris/internal/domain/catalogs/group"
	"inventaris/internal/infrastructure/http/v1/dto"
	"inventaris/internal/infrastructure/http/v1/middleware"
)

// GroupHandler serves the item-group catalog.
type GroupHandler struct {
	*BaseHandler
	service *group.Service
}

// NewGroupHandler creates a group handler.
func NewGroupHandler(base *BaseHandler, service *group.Service) *GroupHandler {
	return &GroupHandler{BaseHandler: base, service: service}
}

// List handles GET /groups.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context(), h.CompanyID(c), middleware.GetScope(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, groups)
}

// Get handles GET /groups/:id.
func (h *GroupHandler) Get(c *gin.Context) {
	groupID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	g, err := h.service.Get(c.Request.Context(), h.CompanyID(c), groupID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !middleware.GetScope(c).Contains(g.DivisionID) {
		h.Error(c, apperror.NewDivisionDenied())
		return
	}
	h.OK(c, g)
}

// Create handles POST /groups.
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	divisionID, ok := h.ParseID(c, "divisionId", req.DivisionID)
	if !ok {
		return
	}

	g := group.New(h.CompanyID(c), divisionID, req.Name)
	g.Description = req.Description

	if err := h.service.Create(c.Request.Context(), middleware.GetScope(c), g); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, g.ID)
}

// Update handles PUT /groups/:id.
func (h *GroupHandler) Update(c *gin.Context) {
	groupID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	divisionID, ok := h.ParseID(c, "divisionId", req.DivisionID)
	if !ok {
		return
	}

	g, err := h.service.Get(c.Request.Context(), h.CompanyID(c), groupID)
	if err != nil {
		h.Error(c, err)
		return
	}
	g.DivisionID = divisionID
	g.Name = req.Name
	g.Description = req.Description

	if err := h.service.Update(c.Request.Context(), middleware.GetScope(c), g); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, g)
}

// Delete handles DELETE /groups/:id.
func (h *GroupHandler) Delete(c *gin.Context) {
	groupID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.GetScope(c), h.CompanyID(c), groupID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
