package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/middleware"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type adminService interface {
	Create(ctx context.Context, req dto.CreateAdminRequest, actor models.Actor) (*models.AdminUser, error)
	Get(ctx context.Context, id string) (*models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	SetActive(ctx context.Context, id string, active bool, actor models.Actor) error
	SendBulkEmail(ctx context.Context, req dto.BulkEmailRequest, actor models.Actor) (int, error)
	ActivityLogs(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, int, error)
}

// AdminHandler exposes account management and operational endpoints for
// the student service division.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(svc adminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

func (h *AdminHandler) actor(c *gin.Context) (models.Actor, bool) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Actor{}, false
	}
	return claims.Actor(), true
}

// Create godoc
// @Summary Provision an administrative account
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.CreateAdminRequest true "Account details"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/accounts [post]
func (h *AdminHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid account payload"))
		return
	}

	admin, err := h.service.Create(c.Request.Context(), req, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

// Get godoc
// @Summary Get an administrative account
// @Tags Admin
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/accounts/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	admin, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin, nil)
}

// List godoc
// @Summary List administrative accounts
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/accounts [get]
func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admins, nil)
}

// SetActive godoc
// @Summary Activate or deactivate an account
// @Description Deactivation revokes the account's outstanding refresh tokens.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param payload body object true "Active flag"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/accounts/{id}/active [patch]
func (h *AdminHandler) SetActive(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var payload struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "active flag is required"))
		return
	}

	if err := h.service.SetActive(c.Request.Context(), c.Param("id"), *payload.Active, actor); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkEmail godoc
// @Summary Send an announcement to a list of recipients
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.BulkEmailRequest true "Message"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/bulk-email [post]
func (h *AdminHandler) BulkEmail(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req dto.BulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk email payload"))
		return
	}

	queued, err := h.service.SendBulkEmail(c.Request.Context(), req, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"queued": queued}, nil)
}

// ActivityLogs godoc
// @Summary Browse the activity log
// @Tags Admin
// @Produce json
// @Param user query string false "Filter by actor name"
// @Param action query string false "Filter by action"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/activity-logs [get]
func (h *AdminHandler) ActivityLogs(c *gin.Context) {
	var filter models.ActivityLogFilter
	filter.UserName = strings.TrimSpace(c.Query("user"))
	filter.Action = strings.TrimSpace(c.Query("action"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	logs, total, err := h.service.ActivityLogs(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, logs, pagination)
}
