package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type adminStore interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByID(ctx context.Context, id string) (*models.AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	SetActive(ctx context.Context, id string, active bool) error
	RevokeRefreshTokensForAdmin(ctx context.Context, adminID string) error
}

type activityLister interface {
	List(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, int, error)
}

type bulkMailer interface {
	BulkEmail(recipients []string, subject, body string) int
}

// AdminService manages administrative accounts, the activity log listing,
// and bulk email dispatch.
type AdminService struct {
	repo       adminStore
	activity   activityRecorder
	activities activityLister
	notifier   bulkMailer
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(repo adminStore, activity activityRecorder, activities activityLister, notifier bulkMailer, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		repo:       repo,
		activity:   activity,
		activities: activities,
		notifier:   notifier,
		validator:  validate,
		logger:     logger,
	}
}

var adminRoles = map[models.AdminRole]struct{}{
	models.RoleDean:               {},
	models.RolePremisesOfficer:    {},
	models.RoleAssistantRegistrar: {},
	models.RoleViceChancellor:     {},
	models.RoleStudentService:     {},
	models.RoleSuperAdmin:         {},
}

// Create provisions a new admin account with a bcrypt password hash.
func (s *AdminService) Create(ctx context.Context, req dto.CreateAdminRequest, actor models.Actor) (*models.AdminUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin payload")
	}
	if _, ok := adminRoles[req.Role]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role '%s'", req.Role))
	}
	if req.Role == models.RoleDean && strings.TrimSpace(req.Faculty) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a dean account requires a faculty")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("an account with email '%s' already exists", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Faculty:      strings.TrimSpace(req.Faculty),
		Active:       true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}

	s.record(ctx, actor, models.ActionAdminCreated, admin.Email, fmt.Sprintf("role %s", admin.Role))
	return admin, nil
}

// Get returns a single admin account.
func (s *AdminService) Get(ctx context.Context, id string) (*models.AdminUser, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("admin %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
	}
	return admin, nil
}

// List returns all admin accounts.
func (s *AdminService) List(ctx context.Context) ([]models.AdminUser, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admins")
	}
	return admins, nil
}

// SetActive enables or disables an account. Disabling also revokes any
// outstanding refresh tokens so existing sessions cannot be extended.
func (s *AdminService) SetActive(ctx context.Context, id string, active bool, actor models.Actor) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("admin %s not found", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update admin")
	}
	if !active {
		if err := s.repo.RevokeRefreshTokensForAdmin(ctx, id); err != nil {
			s.logger.Warn("failed to revoke refresh tokens for deactivated admin",
				zap.String("admin_id", id), zap.Error(err))
		}
	}

	detail := "activated"
	if !active {
		detail = "deactivated"
	}
	s.record(ctx, actor, models.ActionAdminUpdated, id, detail)
	return nil
}

// SendBulkEmail fans a single message out to every recipient in the request.
func (s *AdminService) SendBulkEmail(ctx context.Context, req dto.BulkEmailRequest, actor models.Actor) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk email payload")
	}
	queued := s.notifier.BulkEmail(req.Recipients, req.Subject, req.Body)
	s.record(ctx, actor, models.ActionBulkEmailSent, req.Subject, fmt.Sprintf("%d recipients", queued))
	return queued, nil
}

// ActivityLogs returns the audit trail with optional filtering.
func (s *AdminService) ActivityLogs(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, int, error) {
	logs, total, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activity logs")
	}
	return logs, total, nil
}

func (s *AdminService) record(ctx context.Context, actor models.Actor, action, target, detail string) {
	if s.activity == nil {
		return
	}
	entry := &models.ActivityLog{UserName: actor.Name, Action: action, Target: target, Detail: detail}
	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}
