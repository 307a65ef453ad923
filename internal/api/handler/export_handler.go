package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/response"
)

var exportContentTypes = map[string]string{
	service.FormatICS:  "text/calendar; charset=utf-8",
	service.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportHandler schedule downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule current-term schedule as a calendar or spreadsheet
// GET /users/me/schedule/export?format=ics|xlsx
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, service.ErrUnsupportedFormat)
		return
	}
	format := q.Format
	if format == "" {
		format = service.FormatICS
	}

	buf, filename, err := h.exportSvc.ExportSchedule(c.Request.Context(), user, format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	contentType := exportContentTypes[format]
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
