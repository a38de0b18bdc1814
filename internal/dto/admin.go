package dto

import "github.com/gihansgamage/sms-api/internal/models"

// CreateAdminRequest provisions a new administrative account.
type CreateAdminRequest struct {
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=8"`
	Role     models.AdminRole `json:"role" validate:"required"`
	Faculty  string           `json:"faculty"`
}

// BulkEmailRequest sends one message to a list of recipients.
type BulkEmailRequest struct {
	Subject    string   `json:"subject" validate:"required"`
	Body       string   `json:"body" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
}
