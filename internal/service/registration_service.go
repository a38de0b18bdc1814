package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type registrationStore interface {
	Create(ctx context.Context, reg *models.SocietyRegistration) error
	GetByID(ctx context.Context, id string) (*models.SocietyRegistration, error)
	ListAll(ctx context.Context) ([]models.SocietyRegistration, error)
	ListByStatus(ctx context.Context, status models.Stage) ([]models.SocietyRegistration, error)
	ExistsByNameAndYear(ctx context.Context, name string, year int) (bool, error)
	CountByYearAndStatus(ctx context.Context, year int, status models.Stage) (int, error)
}

type registrationNotifier interface {
	RegistrationSubmitted(ctx context.Context, reg *models.SocietyRegistration)
}

// RegistrationService handles registration intake and read paths.
type RegistrationService struct {
	repo      registrationStore
	notifier  registrationNotifier
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRegistrationService constructs the service.
func NewRegistrationService(repo registrationStore, notifier registrationNotifier, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		repo:      repo,
		notifier:  notifier,
		activity:  activity,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores a new registration, then notifies the
// applicant, the nominated senior treasurer, and the faculty Dean.
func (s *RegistrationService) Submit(ctx context.Context, req dto.SubmitRegistrationRequest) (*models.SocietyRegistration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	now := s.now()
	year := now.Year()
	exists, err := s.repo.ExistsByNameAndYear(ctx, req.SocietyName, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing applications")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a registration for '%s' already exists for %d", req.SocietyName, year))
	}

	agmDate, err := parseOptionalDate(req.AgmDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "agm_date must be YYYY-MM-DD")
	}

	reg := &models.SocietyRegistration{
		ApplicantFullName: strings.TrimSpace(req.ApplicantFullName),
		ApplicantRegNo:    strings.TrimSpace(req.ApplicantRegNo),
		ApplicantEmail:    strings.TrimSpace(req.ApplicantEmail),
		ApplicantFaculty:  strings.TrimSpace(req.ApplicantFaculty),
		ApplicantMobile:   strings.TrimSpace(req.ApplicantMobile),

		SocietyName: strings.TrimSpace(req.SocietyName),
		Aims:        req.Aims,
		AgmDate:     agmDate,
		BankAccount: req.BankAccount,
		BankName:    req.BankName,

		SeniorTreasurerTitle:       req.SeniorTreasurer.Title,
		SeniorTreasurerFullName:    req.SeniorTreasurer.FullName,
		SeniorTreasurerDesignation: req.SeniorTreasurer.Designation,
		SeniorTreasurerDepartment:  req.SeniorTreasurer.Department,
		SeniorTreasurerEmail:       req.SeniorTreasurer.Email,
		SeniorTreasurerAddress:     req.SeniorTreasurer.Address,
		SeniorTreasurerMobile:      req.SeniorTreasurer.Mobile,

		Status:        models.StagePendingDean,
		Year:          year,
		SubmittedDate: now,
	}
	applyOfficerInputs(reg, req)

	for _, member := range req.AdvisoryBoard {
		reg.AdvisoryBoard = append(reg.AdvisoryBoard, models.AdvisoryBoardMember{
			Name:        member.Name,
			Designation: member.Designation,
			Department:  member.Department,
		})
	}
	for _, member := range req.CommitteeMembers {
		reg.CommitteeMembers = append(reg.CommitteeMembers, models.CommitteeMember{RegNo: member.RegNo, Name: member.Name})
	}
	for _, member := range req.GeneralMembers {
		reg.GeneralMembers = append(reg.GeneralMembers, models.GeneralMember{RegNo: member.RegNo, Name: member.Name})
	}
	for _, event := range req.PlanningEvents {
		reg.PlanningEvents = append(reg.PlanningEvents, models.PlanningEvent{Month: event.Month, Activity: event.Activity})
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store registration")
	}

	if s.activity != nil {
		entry := &models.ActivityLog{
			UserName: reg.ApplicantFullName,
			Action:   models.ActionRegistrationSubmitted,
			Target:   reg.SocietyName,
		}
		if err := s.activity.Record(ctx, entry); err != nil {
			s.logger.Warn("failed to record registration submission", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.RegistrationSubmitted(ctx, reg)
	}
	return reg, nil
}

func applyOfficerInputs(reg *models.SocietyRegistration, req dto.SubmitRegistrationRequest) {
	reg.PresidentRegNo = req.President.RegNo
	reg.PresidentName = req.President.Name
	reg.PresidentAddress = req.President.Address
	reg.PresidentEmail = req.President.Email
	reg.PresidentMobile = req.President.Mobile

	reg.VicePresidentRegNo = req.VicePresident.RegNo
	reg.VicePresidentName = req.VicePresident.Name
	reg.VicePresidentAddress = req.VicePresident.Address
	reg.VicePresidentEmail = req.VicePresident.Email
	reg.VicePresidentMobile = req.VicePresident.Mobile

	reg.SecretaryRegNo = req.Secretary.RegNo
	reg.SecretaryName = req.Secretary.Name
	reg.SecretaryAddress = req.Secretary.Address
	reg.SecretaryEmail = req.Secretary.Email
	reg.SecretaryMobile = req.Secretary.Mobile

	reg.JointSecretaryRegNo = req.JointSecretary.RegNo
	reg.JointSecretaryName = req.JointSecretary.Name
	reg.JointSecretaryAddress = req.JointSecretary.Address
	reg.JointSecretaryEmail = req.JointSecretary.Email
	reg.JointSecretaryMobile = req.JointSecretary.Mobile

	reg.TreasurerRegNo = req.Treasurer.RegNo
	reg.TreasurerName = req.Treasurer.Name
	reg.TreasurerAddress = req.Treasurer.Address
	reg.TreasurerEmail = req.Treasurer.Email
	reg.TreasurerMobile = req.Treasurer.Mobile

	reg.EditorRegNo = req.Editor.RegNo
	reg.EditorName = req.Editor.Name
	reg.EditorAddress = req.Editor.Address
	reg.EditorEmail = req.Editor.Email
	reg.EditorMobile = req.Editor.Mobile
}

// Get returns one registration with its child collections.
func (s *RegistrationService) Get(ctx context.Context, id string) (*models.SocietyRegistration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	return reg, nil
}

// List returns registrations, optionally narrowed to one status.
func (s *RegistrationService) List(ctx context.Context, status string) ([]models.SocietyRegistration, error) {
	var (
		regs []models.SocietyRegistration
		err  error
	)
	if status == "" || strings.EqualFold(status, "all") {
		regs, err = s.repo.ListAll(ctx)
	} else {
		regs, err = s.repo.ListByStatus(ctx, models.Stage(strings.ToUpper(status)))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

// Statistics counts this year's approved and pending registrations.
func (s *RegistrationService) Statistics(ctx context.Context) (map[string]int, error) {
	year := s.now().Year()
	approved, err := s.repo.CountByYearAndStatus(ctx, year, models.StageApproved)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count registrations")
	}
	stats := map[string]int{"year": year, "approved": approved}
	for _, stage := range []models.Stage{models.StagePendingDean, models.StagePendingAR, models.StagePendingVC} {
		count, err := s.repo.CountByYearAndStatus(ctx, year, stage)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count registrations")
		}
		stats["pending"] += count
	}
	return stats, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
