package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/middleware"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type approvalService interface {
	ApproveRegistration(ctx context.Context, id string, actor models.Actor, comment string) (*models.SocietyRegistration, error)
	RejectRegistration(ctx context.Context, id string, actor models.Actor, reason string) (*models.SocietyRegistration, error)
	ApproveRenewal(ctx context.Context, id string, actor models.Actor, comment string) (*models.SocietyRenewal, error)
	RejectRenewal(ctx context.Context, id string, actor models.Actor, reason string) (*models.SocietyRenewal, error)
	ApproveEvent(ctx context.Context, id string, actor models.Actor, comment string) (*models.EventPermission, error)
	RejectEvent(ctx context.Context, id string, actor models.Actor, reason string) (*models.EventPermission, error)
	PendingForActor(ctx context.Context, actor models.Actor) ([]models.PendingItem, error)
}

type decisionObserver interface {
	ObserveDecision(entity, decision string)
}

// ApprovalHandler exposes the approval workflow endpoints. Every route
// requires an authenticated approver; the actor is derived from JWT claims.
type ApprovalHandler struct {
	service approvalService
	metrics decisionObserver
}

// NewApprovalHandler constructs ApprovalHandler. metrics may be nil.
func NewApprovalHandler(svc approvalService, metrics decisionObserver) *ApprovalHandler {
	return &ApprovalHandler{service: svc, metrics: metrics}
}

func (h *ApprovalHandler) actor(c *gin.Context) (models.Actor, bool) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Actor{}, false
	}
	return claims.Actor(), true
}

func (h *ApprovalHandler) observe(entity, decision string) {
	if h.metrics != nil {
		h.metrics.ObserveDecision(entity, decision)
	}
}

// ApproveRegistration godoc
// @Summary Approve a registration at its current stage
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param payload body dto.ApproveRequest false "Optional comment"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /approvals/registrations/{id}/approve [post]
func (h *ApprovalHandler) ApproveRegistration(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.ApproveRequest
	_ = c.ShouldBindJSON(&req)

	reg, err := h.service.ApproveRegistration(c.Request.Context(), c.Param("id"), actor, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe("registration", "approve")
	response.JSON(c, http.StatusOK, reg, nil)
}

// RejectRegistration godoc
// @Summary Reject a registration
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /approvals/registrations/{id}/reject [post]
func (h *ApprovalHandler) RejectRegistration(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "rejection reason required"))
		return
	}

	reg, err := h.service.RejectRegistration(c.Request.Context(), c.Param("id"), actor, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe("registration", "reject")
	response.JSON(c, http.StatusOK, reg, nil)
}

// ApproveRenewal godoc
// @Summary Approve a renewal at its current stage
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Renewal ID"
// @Param payload body dto.ApproveRequest false "Optional comment"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /approvals/renewals/{id}/approve [post]
func (h *ApprovalHandler) ApproveRenewal(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.ApproveRequest
	_ = c.ShouldBindJSON(&req)

	renewal, err := h.service.ApproveRenewal(c.Request.Context(), c.Param("id"), actor, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe("renewal", "approve")
	response.JSON(c, http.StatusOK, renewal, nil)
}

// RejectRenewal godoc
// @Summary Reject a renewal
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Renewal ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /approvals/renewals/{id}/reject [post]
func (h *ApprovalHandler) RejectRenewal(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "rejection reason required"))
		return
	}

	renewal, err := h.service.RejectRenewal(c.Request.Context(), c.Param("id"), actor, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe("renewal", "reject")
	response.JSON(c, http.StatusOK, renewal, nil)
}

// ApproveEvent godoc
// @Summary Approve an event permission at its current stage
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.ApproveRequest false "Optional comment"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /approvals/events/{id}/approve [post]
func (h *ApprovalHandler) ApproveEvent(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.ApproveRequest
	_ = c.ShouldBindJSON(&req)

	event, err := h.service.ApproveEvent(c.Request.Context(), c.Param("id"), actor, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe("event", "approve")
	response.JSON(c, http.StatusOK, event, nil)
}

// RejectEvent godoc
// @Summary Reject an event permission
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /approvals/events/{id}/reject [post]
func (h *ApprovalHandler) RejectEvent(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "rejection reason required"))
		return
	}

	event, err := h.service.RejectEvent(c.Request.Context(), c.Param("id"), actor, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe("event", "reject")
	response.JSON(c, http.StatusOK, event, nil)
}

// Pending godoc
// @Summary List requests awaiting the caller's decision
// @Description Returns registrations, renewals and events pending at the caller's stage. Deans only see their own faculty.
// @Tags Approvals
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /approvals/pending [get]
func (h *ApprovalHandler) Pending(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	items, err := h.service.PendingForActor(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
