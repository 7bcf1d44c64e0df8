package handlers

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/core/apperror"
	"inventaris/internal/domain/rebuild"
	"inventaris/internal/infrastructure/http/v1/dto"
)

// rebuildConfirmPhrase must be sent verbatim. The cutover deletes
// history and cannot be undone, so a bare cutoff date is not enough.
const rebuildConfirmPhrase = "REBUILD"

// RebuildHandler serves the opening-balance cutover.
type RebuildHandler struct {
	*BaseHandler
	service *rebuild.Service
}

// NewRebuildHandler creates a rebuild handler.
func NewRebuildHandler(base *BaseHandler, service *rebuild.Service) *RebuildHandler {
	return &RebuildHandler{BaseHandler: base, service: service}
}

// Rebuild handles POST /rebuild.
func (h *RebuildHandler) Rebuild(c *gin.Context) {
	var req dto.RebuildRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Confirm != rebuildConfirmPhrase {
		h.Error(c, apperror.NewValidation("confirmation phrase mismatch").
			WithDetail("field", "confirm"))
		return
	}

	result, err := h.service.Rebuild(c.Request.Context(), h.CompanyID(c), h.UserID(c), req.Cutoff)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
