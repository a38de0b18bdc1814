package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type registrationService interface {
	Submit(ctx context.Context, req dto.SubmitRegistrationRequest) (*models.SocietyRegistration, error)
	Get(ctx context.Context, id string) (*models.SocietyRegistration, error)
	List(ctx context.Context, status string) ([]models.SocietyRegistration, error)
	Statistics(ctx context.Context) (map[string]int, error)
}

type submissionObserver interface {
	ObserveSubmission(entity string)
}

// RegistrationHandler exposes society registration endpoints. Submission is
// public; listing and statistics sit behind the admin router group.
type RegistrationHandler struct {
	service registrationService
	metrics submissionObserver
}

// NewRegistrationHandler constructs RegistrationHandler. metrics may be nil.
func NewRegistrationHandler(svc registrationService, metrics submissionObserver) *RegistrationHandler {
	return &RegistrationHandler{service: svc, metrics: metrics}
}

// Submit godoc
// @Summary Submit a society registration application
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body dto.SubmitRegistrationRequest true "Registration form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req dto.SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	reg, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveSubmission("registration")
	}
	response.Created(c, reg)
}

// Get godoc
// @Summary Get a registration by ID
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrations/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	reg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reg, nil)
}

// List godoc
// @Summary List registrations
// @Tags Registrations
// @Produce json
// @Param status query string false "Filter by workflow status"
// @Success 200 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	regs, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, regs, nil)
}

// Statistics godoc
// @Summary Registration counts by workflow status
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registrations/statistics [get]
func (h *RegistrationHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
