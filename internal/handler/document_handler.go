package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/dto"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

type documentService interface {
	RegistrationDocument(ctx context.Context, id string) ([]byte, error)
	RegistrationPreview(req dto.SubmitRegistrationRequest) ([]byte, error)
	RenewalDocument(ctx context.Context, id string) ([]byte, error)
	EventDocument(ctx context.Context, id string) ([]byte, error)
}

// DocumentHandler serves generated approval letters as PDF downloads.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(svc documentService) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

func servePDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}

// Registration godoc
// @Summary Download the registration letter as PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Registration ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /registrations/{id}/document [get]
func (h *DocumentHandler) Registration(c *gin.Context) {
	id := c.Param("id")
	data, err := h.service.RegistrationDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("registration-%s.pdf", id), data)
}

// RegistrationPreview godoc
// @Summary Render an unsaved registration form as PDF
// @Tags Documents
// @Accept json
// @Produce application/pdf
// @Param payload body dto.SubmitRegistrationRequest true "Registration form"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /registrations/preview-document [post]
func (h *DocumentHandler) RegistrationPreview(c *gin.Context) {
	var req dto.SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	data, err := h.service.RegistrationPreview(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	servePDF(c, "registration-preview.pdf", data)
}

// Renewal godoc
// @Summary Download the renewal letter as PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Renewal ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /renewals/{id}/document [get]
func (h *DocumentHandler) Renewal(c *gin.Context) {
	id := c.Param("id")
	data, err := h.service.RenewalDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("renewal-%s.pdf", id), data)
}

// Event godoc
// @Summary Download the event permission letter as PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Event ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/document [get]
func (h *DocumentHandler) Event(c *gin.Context) {
	id := c.Param("id")
	data, err := h.service.EventDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("event-%s.pdf", id), data)
}
