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

type renewalStore interface {
	Create(ctx context.Context, renewal *models.SocietyRenewal) error
	GetByID(ctx context.Context, id string) (*models.SocietyRenewal, error)
	ListAll(ctx context.Context) ([]models.SocietyRenewal, error)
	ListByStatus(ctx context.Context, status models.Stage) ([]models.SocietyRenewal, error)
	ExistsByNameAndYear(ctx context.Context, name string, year int) (bool, error)
	Statistics(ctx context.Context, year int) (*models.RenewalStatistics, error)
}

type societyLookup interface {
	FindLatestByName(ctx context.Context, name string) (*models.Society, error)
}

type renewalNotifier interface {
	RenewalSubmitted(ctx context.Context, renewal *models.SocietyRenewal)
}

// RenewalService handles renewal intake and read paths.
type RenewalService struct {
	repo      renewalStore
	societies societyLookup
	notifier  renewalNotifier
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRenewalService constructs the service.
func NewRenewalService(repo renewalStore, societies societyLookup, notifier renewalNotifier, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *RenewalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenewalService{
		repo:      repo,
		societies: societies,
		notifier:  notifier,
		activity:  activity,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores a renewal. The society must already exist and
// must not have another live renewal for the current year.
func (s *RenewalService) Submit(ctx context.Context, req dto.SubmitRenewalRequest) (*models.SocietyRenewal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	if _, err := s.societies.FindLatestByName(ctx, req.SocietyName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("society '%s' is not registered", req.SocietyName))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up society")
	}

	now := s.now()
	year := now.Year()
	exists, err := s.repo.ExistsByNameAndYear(ctx, req.SocietyName, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing renewals")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a renewal for '%s' already exists for %d", req.SocietyName, year))
	}

	agmDate, err := parseOptionalDate(req.AgmDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "agm_date must be YYYY-MM-DD")
	}

	renewal := &models.SocietyRenewal{
		ApplicantFullName: strings.TrimSpace(req.ApplicantFullName),
		ApplicantRegNo:    strings.TrimSpace(req.ApplicantRegNo),
		ApplicantEmail:    strings.TrimSpace(req.ApplicantEmail),
		ApplicantFaculty:  strings.TrimSpace(req.ApplicantFaculty),
		ApplicantMobile:   strings.TrimSpace(req.ApplicantMobile),

		SocietyName:  strings.TrimSpace(req.SocietyName),
		RenewalYear:  year,
		AgmDate:      agmDate,
		Website:      req.Website,
		BankAccount:  req.BankAccount,
		BankName:     req.BankName,
		Difficulties: req.Difficulties,

		Status:        models.StagePendingDean,
		SubmittedDate: now,
	}
	if st := req.SeniorTreasurer; st != nil {
		renewal.SeniorTreasurerTitle = &st.Title
		renewal.SeniorTreasurerFullName = &st.FullName
		renewal.SeniorTreasurerDesignation = &st.Designation
		renewal.SeniorTreasurerDepartment = &st.Department
		renewal.SeniorTreasurerEmail = &st.Email
		renewal.SeniorTreasurerMobile = &st.Mobile
	}
	applyRenewalOfficer(req.President, &renewal.PresidentName, &renewal.PresidentRegNo, &renewal.PresidentEmail, &renewal.PresidentMobile)
	applyRenewalOfficer(req.VicePresident, &renewal.VicePresidentName, &renewal.VicePresidentRegNo, &renewal.VicePresidentEmail, &renewal.VicePresidentMobile)
	applyRenewalOfficer(req.Secretary, &renewal.SecretaryName, &renewal.SecretaryRegNo, &renewal.SecretaryEmail, &renewal.SecretaryMobile)
	applyRenewalOfficer(req.JointSecretary, &renewal.JointSecretaryName, &renewal.JointSecretaryRegNo, &renewal.JointSecretaryEmail, &renewal.JointSecretaryMobile)
	applyRenewalOfficer(req.Treasurer, &renewal.TreasurerName, &renewal.TreasurerRegNo, &renewal.TreasurerEmail, &renewal.TreasurerMobile)
	applyRenewalOfficer(req.Editor, &renewal.EditorName, &renewal.EditorRegNo, &renewal.EditorEmail, &renewal.EditorMobile)

	if err := s.repo.Create(ctx, renewal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store renewal")
	}

	if s.activity != nil {
		entry := &models.ActivityLog{
			UserName: renewal.ApplicantFullName,
			Action:   models.ActionRenewalSubmitted,
			Target:   renewal.SocietyName,
		}
		if err := s.activity.Record(ctx, entry); err != nil {
			s.logger.Warn("failed to record renewal submission", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.RenewalSubmitted(ctx, renewal)
	}
	return renewal, nil
}

func applyRenewalOfficer(input *dto.RenewalOfficerInput, name, regNo, email, mobile **string) {
	if input == nil {
		return
	}
	*name = &input.Name
	*regNo = &input.RegNo
	*email = &input.Email
	*mobile = &input.Mobile
}

// Get returns one renewal.
func (s *RenewalService) Get(ctx context.Context, id string) (*models.SocietyRenewal, error) {
	renewal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load renewal")
	}
	return renewal, nil
}

// List returns renewals, optionally narrowed to one status.
func (s *RenewalService) List(ctx context.Context, status string) ([]models.SocietyRenewal, error) {
	var (
		renewals []models.SocietyRenewal
		err      error
	)
	if status == "" || strings.EqualFold(status, "all") {
		renewals, err = s.repo.ListAll(ctx)
	} else {
		renewals, err = s.repo.ListByStatus(ctx, models.Stage(strings.ToUpper(status)))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list renewals")
	}
	return renewals, nil
}

// Statistics summarises renewal volume for the current year.
func (s *RenewalService) Statistics(ctx context.Context) (*models.RenewalStatistics, error) {
	stats, err := s.repo.Statistics(ctx, s.now().Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute renewal statistics")
	}
	return stats, nil
}

// LatestSocietyData returns the most recent society record for pre-filling
// the renewal form.
func (s *RenewalService) LatestSocietyData(ctx context.Context, name string) (*models.Society, error) {
	society, err := s.societies.FindLatestByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load society")
	}
	return society, nil
}
