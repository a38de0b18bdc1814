package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type eventService interface {
	Submit(ctx context.Context, req dto.SubmitEventRequest) (*models.EventPermission, error)
	Get(ctx context.Context, id string) (*models.EventPermission, error)
	List(ctx context.Context, status string) ([]models.EventPermission, error)
	Upcoming(ctx context.Context, limit int) ([]models.EventPermission, error)
	ApplicantDetails(ctx context.Context, societyName, position string) (*dto.ApplicantDetails, error)
	ValidatePosition(ctx context.Context, req dto.ValidatePositionRequest) (bool, error)
}

// EventHandler exposes event permission endpoints.
type EventHandler struct {
	service eventService
	metrics submissionObserver
}

// NewEventHandler constructs EventHandler. metrics may be nil.
func NewEventHandler(svc eventService, metrics submissionObserver) *EventHandler {
	return &EventHandler{service: svc, metrics: metrics}
}

// Submit godoc
// @Summary Submit an event permission request
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.SubmitEventRequest true "Event form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Submit(c *gin.Context) {
	var req dto.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveSubmission("event")
	}
	response.Created(c, event)
}

// Get godoc
// @Summary Get an event permission by ID
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// List godoc
// @Summary List event permission requests
// @Tags Events
// @Produce json
// @Param status query string false "Filter by workflow status"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Upcoming godoc
// @Summary Approved events with a future date
// @Tags Events
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /events/upcoming [get]
func (h *EventHandler) Upcoming(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	events, err := h.service.Upcoming(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// ApplicantDetails godoc
// @Summary Stored officer details for event form pre-fill
// @Tags Events
// @Produce json
// @Param society query string true "Society name"
// @Param position query string true "Officer position"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/applicant-details [get]
func (h *EventHandler) ApplicantDetails(c *gin.Context) {
	society := strings.TrimSpace(c.Query("society"))
	position := strings.TrimSpace(c.Query("position"))
	if society == "" || position == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "society and position are required"))
		return
	}

	details, err := h.service.ApplicantDetails(c.Request.Context(), society, position)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// ValidatePosition godoc
// @Summary Check whether an applicant holds a society position
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.ValidatePositionRequest true "Position check"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events/validate-position [post]
func (h *EventHandler) ValidatePosition(c *gin.Context) {
	var req dto.ValidatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid position payload"))
		return
	}

	valid, err := h.service.ValidatePosition(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ValidatePositionResponse{Valid: valid}, nil)
}
