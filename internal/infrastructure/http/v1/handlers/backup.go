package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventaris/internal/domain/backup"
	"inventaris/internal/infrastructure/http/v1/dto"
)

// BackupHandler streams tenant dumps: a compressed JSON archive and an
// Excel workbook.
type BackupHandler struct {
	*BaseHandler
	service *backup.Service
}

// NewBackupHandler creates a backup handler.
func NewBackupHandler(base *BaseHandler, service *backup.Service) *BackupHandler {
	return &BackupHandler{BaseHandler: base, service: service}
}

// Archive handles GET /backup/archive.
func (h *BackupHandler) Archive(c *gin.Context) {
	var q dto.BackupQuery
	if !h.BindQuery(c, &q) {
		return
	}
	r, err := backup.ResolveRange(q.Start, q.End)
	if err != nil {
		h.Error(c, err)
		return
	}

	dump, err := h.service.BuildDump(c.Request.Context(), h.CompanyID(c), r)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("backup-%s-%s.json.zst", r.Start, r.End)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/zstd")
	c.Status(http.StatusOK)

	if err := backup.WriteArchive(c.Writer, dump); err != nil {
		// Headers are gone; all we can do is log via the error chain.
		_ = c.Error(err)
	}
}

// Workbook handles GET /backup/excel.
func (h *BackupHandler) Workbook(c *gin.Context) {
	var q dto.BackupQuery
	if !h.BindQuery(c, &q) {
		return
	}
	r, err := backup.ResolveRange(q.Start, q.End)
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	dump, err := h.service.BuildDump(ctx, h.CompanyID(c), r)
	if err != nil {
		h.Error(c, err)
		return
	}
	report, err := h.service.ReportRows(ctx, h.CompanyID(c), r)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("backup-%s-%s.xlsx", r.Start, r.End)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := backup.WriteWorkbook(c.Writer, dump, report); err != nil {
		_ = c.Error(err)
	}
}
