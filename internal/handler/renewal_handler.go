package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type renewalService interface {
	Submit(ctx context.Context, req dto.SubmitRenewalRequest) (*models.SocietyRenewal, error)
	Get(ctx context.Context, id string) (*models.SocietyRenewal, error)
	List(ctx context.Context, status string) ([]models.SocietyRenewal, error)
	Statistics(ctx context.Context) (*models.RenewalStatistics, error)
	LatestSocietyData(ctx context.Context, name string) (*models.Society, error)
}

// RenewalHandler exposes society renewal endpoints.
type RenewalHandler struct {
	service renewalService
	metrics submissionObserver
}

// NewRenewalHandler constructs RenewalHandler. metrics may be nil.
func NewRenewalHandler(svc renewalService, metrics submissionObserver) *RenewalHandler {
	return &RenewalHandler{service: svc, metrics: metrics}
}

// Submit godoc
// @Summary Submit a yearly renewal application
// @Tags Renewals
// @Accept json
// @Produce json
// @Param payload body dto.SubmitRenewalRequest true "Renewal form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /renewals [post]
func (h *RenewalHandler) Submit(c *gin.Context) {
	var req dto.SubmitRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid renewal payload"))
		return
	}

	renewal, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveSubmission("renewal")
	}
	response.Created(c, renewal)
}

// Get godoc
// @Summary Get a renewal by ID
// @Tags Renewals
// @Produce json
// @Param id path string true "Renewal ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /renewals/{id} [get]
func (h *RenewalHandler) Get(c *gin.Context) {
	renewal, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, renewal, nil)
}

// List godoc
// @Summary List renewals
// @Tags Renewals
// @Produce json
// @Param status query string false "Filter by workflow status"
// @Success 200 {object} response.Envelope
// @Router /renewals [get]
func (h *RenewalHandler) List(c *gin.Context) {
	renewals, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, renewals, nil)
}

// Statistics godoc
// @Summary Renewal statistics
// @Tags Renewals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /renewals/statistics [get]
func (h *RenewalHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// SocietyData godoc
// @Summary Stored society details for renewal pre-fill
// @Tags Renewals
// @Produce json
// @Param name query string true "Society name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /renewals/society-data [get]
func (h *RenewalHandler) SocietyData(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "society name is required"))
		return
	}

	society, err := h.service.LatestSocietyData(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, society, nil)
}
