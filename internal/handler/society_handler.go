package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type societyService interface {
	Get(ctx context.Context, id string) (*models.Society, error)
	List(ctx context.Context, filter models.SocietyFilter) ([]models.Society, int, error)
	Statistics(ctx context.Context) (*models.SocietyStatistics, error)
	SetStatus(ctx context.Context, id string, status models.SocietyStatus) error
}

// SocietyHandler exposes the society directory endpoints.
type SocietyHandler struct {
	service societyService
}

// NewSocietyHandler constructs SocietyHandler.
func NewSocietyHandler(svc societyService) *SocietyHandler {
	return &SocietyHandler{service: svc}
}

// List godoc
// @Summary List registered societies
// @Tags Societies
// @Produce json
// @Param search query string false "Search by name"
// @Param status query string false "Filter by status"
// @Param year query int false "Filter by registration year"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /societies [get]
func (h *SocietyHandler) List(c *gin.Context) {
	var filter models.SocietyFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := models.SocietyStatus(strings.ToUpper(status))
		filter.Status = &s
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be an integer"))
			return
		}
		filter.Year = &year
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	societies, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, societies, pagination)
}

// Get godoc
// @Summary Get a society by ID
// @Tags Societies
// @Produce json
// @Param id path string true "Society ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /societies/{id} [get]
func (h *SocietyHandler) Get(c *gin.Context) {
	society, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, society, nil)
}

// Statistics godoc
// @Summary Society registry statistics
// @Tags Societies
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /societies/statistics [get]
func (h *SocietyHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// SetStatus godoc
// @Summary Change a society's lifecycle status
// @Tags Societies
// @Accept json
// @Produce json
// @Param id path string true "Society ID"
// @Param payload body object true "New status"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /societies/{id}/status [patch]
func (h *SocietyHandler) SetStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status is required"))
		return
	}

	status := models.SocietyStatus(strings.ToUpper(strings.TrimSpace(payload.Status)))
	if err := h.service.SetStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
