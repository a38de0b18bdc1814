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

type eventStore interface {
	Create(ctx context.Context, event *models.EventPermission) error
	GetByID(ctx context.Context, id string) (*models.EventPermission, error)
	ListAll(ctx context.Context) ([]models.EventPermission, error)
	ListByStatus(ctx context.Context, status models.Stage) ([]models.EventPermission, error)
	ListUpcomingApproved(ctx context.Context, from time.Time) ([]models.EventPermission, error)
}

type eventNotifier interface {
	EventSubmitted(ctx context.Context, event *models.EventPermission)
}

// EventService handles event permission intake, officer lookups, and the
// position validation used by the public form.
type EventService struct {
	repo      eventStore
	societies societyLookup
	notifier  eventNotifier
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs the service.
func NewEventService(repo eventStore, societies societyLookup, notifier eventNotifier, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		repo:      repo,
		societies: societies,
		notifier:  notifier,
		activity:  activity,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores an event permission request. The faculty is
// taken from the society record, never from the form.
func (s *EventService) Submit(ctx context.Context, req dto.SubmitEventRequest) (*models.EventPermission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	eventDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.EventDate))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD")
	}
	today := s.now().Truncate(24 * time.Hour)
	if eventDate.Before(today) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event cannot be in the past")
	}
	if req.TimeFrom != "" && req.TimeTo != "" {
		start, err := time.Parse("15:04", req.TimeFrom)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "time_from must be HH:MM")
		}
		end, err := time.Parse("15:04", req.TimeTo)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "time_to must be HH:MM")
		}
		if !end.After(start) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
		}
	}

	society, err := s.societies.FindLatestByName(ctx, req.SocietyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("society '%s' is not registered", req.SocietyName))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up society")
	}

	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment_date must be YYYY-MM-DD")
	}

	event := &models.EventPermission{
		ApplicantName:     strings.TrimSpace(req.ApplicantName),
		ApplicantRegNo:    strings.TrimSpace(req.ApplicantRegNo),
		ApplicantEmail:    strings.TrimSpace(req.ApplicantEmail),
		ApplicantMobile:   strings.TrimSpace(req.ApplicantMobile),
		ApplicantPosition: strings.TrimSpace(req.ApplicantPosition),
		ApplicantFaculty:  society.Faculty,

		SocietyName: strings.TrimSpace(req.SocietyName),
		EventName:   strings.TrimSpace(req.EventName),
		EventDate:   eventDate,
		TimeFrom:    optionalComment(req.TimeFrom),
		TimeTo:      optionalComment(req.TimeTo),
		Place:       req.Place,

		IsInsideUniversity:     req.IsInsideUniversity,
		LatePassRequired:       req.LatePassRequired,
		OutsidersInvited:       req.OutsidersInvited,
		OutsidersList:          req.OutsidersList,
		FirstYearParticipation: req.FirstYearParticipation,

		BudgetEstimate:        req.BudgetEstimate,
		FundCollectionMethods: req.FundCollectionMethods,
		StudentFeeAmount:      req.StudentFeeAmount,
		ReceiptNumber:         req.ReceiptNumber,
		PaymentDate:           paymentDate,

		SeniorTreasurerName:       req.SeniorTreasurerName,
		SeniorTreasurerDepartment: req.SeniorTreasurerDepartment,
		SeniorTreasurerMobile:     req.SeniorTreasurerMobile,

		PremisesOfficerName:        req.PremisesOfficerName,
		PremisesOfficerDesignation: req.PremisesOfficerDesignation,
		PremisesOfficerDivision:    req.PremisesOfficerDivision,

		Status:        models.StagePendingDean,
		SubmittedDate: s.now(),
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store event request")
	}

	if s.activity != nil {
		entry := &models.ActivityLog{
			UserName: event.ApplicantName,
			Action:   models.ActionEventSubmitted,
			Target:   event.EventName,
		}
		if err := s.activity.Record(ctx, entry); err != nil {
			s.logger.Warn("failed to record event submission", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.EventSubmitted(ctx, event)
	}
	return event, nil
}

// Get returns one event request.
func (s *EventService) Get(ctx context.Context, id string) (*models.EventPermission, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event request")
	}
	return event, nil
}

// List returns event requests, optionally narrowed to one status.
func (s *EventService) List(ctx context.Context, status string) ([]models.EventPermission, error) {
	var (
		events []models.EventPermission
		err    error
	)
	if status == "" || strings.EqualFold(status, "all") {
		events, err = s.repo.ListAll(ctx)
	} else {
		events, err = s.repo.ListByStatus(ctx, models.Stage(strings.ToUpper(status)))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list event requests")
	}
	return events, nil
}

// Upcoming returns fully approved events dated today or later.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]models.EventPermission, error) {
	events, err := s.repo.ListUpcomingApproved(ctx, s.now().Truncate(24*time.Hour))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming events")
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// ApplicantDetails returns the stored officer tuple for a society position,
// used to pre-fill the event request form.
func (s *EventService) ApplicantDetails(ctx context.Context, societyName, position string) (*dto.ApplicantDetails, error) {
	society, err := s.societies.FindLatestByName(ctx, societyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("society '%s' is not registered", societyName))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load society")
	}
	officer, ok := society.OfficerAt(normalizePosition(position))
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown position '%s'", position))
	}
	return &dto.ApplicantDetails{
		Name:    officer.Name,
		RegNo:   officer.RegNo,
		Email:   officer.Email,
		Mobile:  officer.Mobile,
		Faculty: society.Faculty,
	}, nil
}

// ValidatePosition reports whether the supplied registration number and email
// match the society's stored officer for the claimed position. An unknown
// position is simply invalid; a missing society is an error.
func (s *EventService) ValidatePosition(ctx context.Context, req dto.ValidatePositionRequest) (bool, error) {
	society, err := s.societies.FindLatestByName(ctx, req.SocietyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("society '%s' is not registered", req.SocietyName))
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load society")
	}
	officer, ok := society.OfficerAt(normalizePosition(req.Position))
	if !ok {
		return false, nil
	}
	return normalizeRegNo(req.RegNo) == normalizeRegNo(officer.RegNo) &&
		strings.EqualFold(strings.TrimSpace(req.Email), strings.TrimSpace(officer.Email)), nil
}

// normalizeRegNo uppercases and strips whitespace and slashes so S/12 345,
// s12345, and S12345 all compare equal.
func normalizeRegNo(regNo string) string {
	upper := strings.ToUpper(regNo)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '/':
			return -1
		}
		return r
	}, upper)
}

// normalizePosition folds case and hyphen/space variants onto the canonical
// position labels ("vice-president" and "Vice President" both match).
func normalizePosition(position string) models.OfficerPosition {
	folded := strings.ToLower(strings.TrimSpace(position))
	folded = strings.ReplaceAll(folded, "-", " ")
	folded = strings.Join(strings.Fields(folded), " ")
	if folded == "treasurer" {
		folded = string(models.PositionTreasurer)
	}
	return models.OfficerPosition(folded)
}
