package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/internal/service"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type exportService interface {
	Societies(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
	ActivityLogs(ctx context.Context, filter models.ActivityLogFilter, format service.ExportFormat) (*service.ExportResult, error)
	Requests(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves directory and audit exports as file downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

func serveExport(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.MimeType, result.Data)
}

// Societies godoc
// @Summary Export the society directory
// @Tags Admin
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /admin/exports/societies [get]
func (h *ExportHandler) Societies(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Societies(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, result)
}

// ActivityLogs godoc
// @Summary Export the activity log
// @Tags Admin
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Param user query string false "Filter by actor name"
// @Param action query string false "Filter by action"
// @Success 200 {file} binary
// @Router /admin/exports/activity-logs [get]
func (h *ExportHandler) ActivityLogs(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter models.ActivityLogFilter
	filter.UserName = strings.TrimSpace(c.Query("user"))
	filter.Action = strings.TrimSpace(c.Query("action"))

	result, err := h.service.ActivityLogs(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, result)
}

// Requests godoc
// @Summary Export the request monitoring list
// @Tags Admin
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /admin/exports/requests [get]
func (h *ExportHandler) Requests(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Requests(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, result)
}
