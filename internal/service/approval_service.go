package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/internal/repository"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

// stageStep is one entry in an approval chain: which stage it guards, which
// role may act on it, and which column prefix records the decision.
type stageStep struct {
	stage  models.Stage
	role   models.AdminRole
	prefix string
	next   models.Stage
}

// The three chains share the conditional-update advance path. Only event
// requests carry the extra premises clearance stage.
var (
	registrationChain = []stageStep{
		{models.StagePendingDean, models.RoleDean, "dean", models.StagePendingAR},
		{models.StagePendingAR, models.RoleAssistantRegistrar, "ar", models.StagePendingVC},
		{models.StagePendingVC, models.RoleViceChancellor, "vc", models.StageApproved},
	}
	renewalChain = registrationChain
	eventChain   = []stageStep{
		{models.StagePendingDean, models.RoleDean, "dean", models.StagePendingPremises},
		{models.StagePendingPremises, models.RolePremisesOfficer, "premises", models.StagePendingAR},
		{models.StagePendingAR, models.RoleAssistantRegistrar, "ar", models.StagePendingVC},
		{models.StagePendingVC, models.RoleViceChancellor, "vc", models.StageApproved},
	}
)

func findStep(chain []stageStep, stage models.Stage) (stageStep, bool) {
	for _, step := range chain {
		if step.stage == stage {
			return step, true
		}
	}
	return stageStep{}, false
}

// roleForStage resolves the role expected to act at a stage of a chain.
func roleForStage(chain []stageStep, stage models.Stage) (models.AdminRole, bool) {
	step, ok := findStep(chain, stage)
	if !ok {
		return "", false
	}
	return step.role, true
}

type registrationWorkflowStore interface {
	GetByID(ctx context.Context, id string) (*models.SocietyRegistration, error)
	ListByStatus(ctx context.Context, status models.Stage) ([]models.SocietyRegistration, error)
	ListByStatusAndFaculty(ctx context.Context, status models.Stage, faculty string) ([]models.SocietyRegistration, error)
	AdvanceStage(ctx context.Context, params repository.AdvanceStageParams) error
	Finalize(ctx context.Context, params repository.AdvanceStageParams, society *models.Society) error
	Reject(ctx context.Context, id string, from models.Stage, reason string) error
}

type renewalWorkflowStore interface {
	GetByID(ctx context.Context, id string) (*models.SocietyRenewal, error)
	ListByStatus(ctx context.Context, status models.Stage) ([]models.SocietyRenewal, error)
	ListByStatusAndFaculty(ctx context.Context, status models.Stage, faculty string) ([]models.SocietyRenewal, error)
	AdvanceStage(ctx context.Context, params repository.AdvanceStageParams) error
	Finalize(ctx context.Context, params repository.AdvanceStageParams, renewal *models.SocietyRenewal) error
	Reject(ctx context.Context, id string, from models.Stage, reason string) error
}

type eventWorkflowStore interface {
	GetByID(ctx context.Context, id string) (*models.EventPermission, error)
	ListByStatus(ctx context.Context, status models.Stage) ([]models.EventPermission, error)
	ListByStatusAndFaculty(ctx context.Context, status models.Stage, faculty string) ([]models.EventPermission, error)
	AdvanceStage(ctx context.Context, params repository.AdvanceStageParams) error
	Finalize(ctx context.Context, params repository.AdvanceStageParams) error
	Reject(ctx context.Context, id string, from models.Stage, reason string) error
}

// approvalNotifier fans out workflow emails. Implementations must never block
// the approval path; failures are logged, not returned.
type approvalNotifier interface {
	RegistrationAdvanced(ctx context.Context, reg *models.SocietyRegistration, byRole models.AdminRole, next models.AdminRole)
	RegistrationApproved(ctx context.Context, reg *models.SocietyRegistration)
	RegistrationRejected(ctx context.Context, reg *models.SocietyRegistration, byRole models.AdminRole, reason string)
	RenewalAdvanced(ctx context.Context, renewal *models.SocietyRenewal, byRole models.AdminRole, next models.AdminRole)
	RenewalApproved(ctx context.Context, renewal *models.SocietyRenewal)
	RenewalRejected(ctx context.Context, renewal *models.SocietyRenewal, byRole models.AdminRole, reason string)
	EventAdvanced(ctx context.Context, event *models.EventPermission, byRole models.AdminRole, next models.AdminRole)
	EventApproved(ctx context.Context, event *models.EventPermission)
	EventRejected(ctx context.Context, event *models.EventPermission, byRole models.AdminRole, reason string)
}

type activityRecorder interface {
	Record(ctx context.Context, entry *models.ActivityLog) error
}

// ApprovalService drives the sequential approval workflow for all three
// request kinds.
type ApprovalService struct {
	registrations registrationWorkflowStore
	renewals      renewalWorkflowStore
	events        eventWorkflowStore
	notifier      approvalNotifier
	activity      activityRecorder
	logger        *zap.Logger
	now           func() time.Time
}

// NewApprovalService constructs the workflow engine.
func NewApprovalService(
	registrations registrationWorkflowStore,
	renewals renewalWorkflowStore,
	events eventWorkflowStore,
	notifier approvalNotifier,
	activity activityRecorder,
	logger *zap.Logger,
) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		registrations: registrations,
		renewals:      renewals,
		events:        events,
		notifier:      notifier,
		activity:      activity,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// authorize checks that the actor holds the stage's role. Deans additionally
// only act on requests from their own faculty.
func authorize(step stageStep, actor models.Actor, faculty string) error {
	if actor.Role != step.role {
		return appErrors.ErrNotAuthorized
	}
	if step.role == models.RoleDean && !strings.EqualFold(strings.TrimSpace(actor.Faculty), strings.TrimSpace(faculty)) {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "dean may only act on requests from their own faculty")
	}
	return nil
}

// classifyConflict distinguishes a lost race at the same stage from a request
// that has already reached a terminal state.
func classifyConflict(current models.Stage) error {
	if current.Terminal() {
		return appErrors.ErrAlreadyFinalized
	}
	return appErrors.ErrStageConflict
}

func optionalComment(comment string) *string {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ApproveRegistration records the current stage's approval and advances the
// registration, materializing the society on final approval.
func (s *ApprovalService) ApproveRegistration(ctx context.Context, id string, actor models.Actor, comment string) (*models.SocietyRegistration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	if reg.Status.Terminal() {
		return nil, appErrors.ErrAlreadyFinalized
	}
	step, ok := findStep(registrationChain, reg.Status)
	if !ok {
		return nil, appErrors.Wrap(fmt.Errorf("registration %s in unknown stage %s", id, reg.Status), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration is in an unknown stage")
	}
	if err := authorize(step, actor, reg.ApplicantFaculty); err != nil {
		return nil, err
	}

	now := s.now()
	params := repository.AdvanceStageParams{
		ID:          reg.ID,
		From:        step.stage,
		To:          step.next,
		StagePrefix: step.prefix,
		ApprovedAt:  now,
		Comment:     optionalComment(comment),
	}
	final := step.next == models.StageApproved
	if final {
		err = s.registrations.Finalize(ctx, params, societyFromRegistration(reg, now))
	} else {
		err = s.registrations.AdvanceStage(ctx, params)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.registrationConflict(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to advance registration")
	}

	applyRegistrationStage(reg, step.prefix, now, params.Comment)
	reg.Status = step.next
	if final {
		reg.ApprovedDate = &now
	}

	s.record(ctx, actor, models.ActionRegistrationApproved, reg.SocietyName, fmt.Sprintf("advanced to %s", reg.Status))
	if s.notifier != nil {
		if final {
			s.notifier.RegistrationApproved(ctx, reg)
		} else if nextRole, ok := roleForStage(registrationChain, step.next); ok {
			s.notifier.RegistrationAdvanced(ctx, reg, step.role, nextRole)
		}
	}
	return reg, nil
}

// RejectRegistration records a rejection at the current stage.
func (s *ApprovalService) RejectRegistration(ctx context.Context, id string, actor models.Actor, reason string) (*models.SocietyRegistration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	if reg.Status.Terminal() {
		return nil, appErrors.ErrAlreadyFinalized
	}
	step, ok := findStep(registrationChain, reg.Status)
	if !ok {
		return nil, appErrors.ErrInternal
	}
	if err := authorize(step, actor, reg.ApplicantFaculty); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
	}

	if err := s.registrations.Reject(ctx, id, step.stage, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.registrationConflict(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject registration")
	}
	reg.Status = models.StageRejected
	reg.RejectionReason = &reason

	s.record(ctx, actor, models.ActionRegistrationRejected, reg.SocietyName, reason)
	if s.notifier != nil {
		s.notifier.RegistrationRejected(ctx, reg, step.role, reason)
	}
	return reg, nil
}

func (s *ApprovalService) registrationConflict(ctx context.Context, id string) error {
	current, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return appErrors.ErrStageConflict
	}
	return classifyConflict(current.Status)
}

// ApproveRenewal records the current stage's approval and advances the
// renewal, updating the society record on final approval.
func (s *ApprovalService) ApproveRenewal(ctx context.Context, id string, actor models.Actor, comment string) (*models.SocietyRenewal, error) {
	renewal, err := s.renewals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load renewal")
	}
	if renewal.Status.Terminal() {
		return nil, appErrors.ErrAlreadyFinalized
	}
	step, ok := findStep(renewalChain, renewal.Status)
	if !ok {
		return nil, appErrors.ErrInternal
	}
	if err := authorize(step, actor, renewal.ApplicantFaculty); err != nil {
		return nil, err
	}

	now := s.now()
	params := repository.AdvanceStageParams{
		ID:          renewal.ID,
		From:        step.stage,
		To:          step.next,
		StagePrefix: step.prefix,
		ApprovedAt:  now,
		Comment:     optionalComment(comment),
	}
	final := step.next == models.StageApproved
	if final {
		err = s.renewals.Finalize(ctx, params, renewal)
	} else {
		err = s.renewals.AdvanceStage(ctx, params)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.renewalConflict(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to advance renewal")
	}

	applyRenewalStage(renewal, step.prefix, now, params.Comment)
	renewal.Status = step.next
	if final {
		renewal.ApprovedDate = &now
	}

	s.record(ctx, actor, models.ActionRenewalApproved, renewal.SocietyName, fmt.Sprintf("advanced to %s", renewal.Status))
	if s.notifier != nil {
		if final {
			s.notifier.RenewalApproved(ctx, renewal)
		} else if nextRole, ok := roleForStage(renewalChain, step.next); ok {
			s.notifier.RenewalAdvanced(ctx, renewal, step.role, nextRole)
		}
	}
	return renewal, nil
}

// RejectRenewal records a rejection at the current stage.
func (s *ApprovalService) RejectRenewal(ctx context.Context, id string, actor models.Actor, reason string) (*models.SocietyRenewal, error) {
	renewal, err := s.renewals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load renewal")
	}
	if renewal.Status.Terminal() {
		return nil, appErrors.ErrAlreadyFinalized
	}
	step, ok := findStep(renewalChain, renewal.Status)
	if !ok {
		return nil, appErrors.ErrInternal
	}
	if err := authorize(step, actor, renewal.ApplicantFaculty); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
	}

	if err := s.renewals.Reject(ctx, id, step.stage, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.renewalConflict(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject renewal")
	}
	renewal.Status = models.StageRejected
	renewal.RejectionReason = &reason

	s.record(ctx, actor, models.ActionRenewalRejected, renewal.SocietyName, reason)
	if s.notifier != nil {
		s.notifier.RenewalRejected(ctx, renewal, step.role, reason)
	}
	return renewal, nil
}

func (s *ApprovalService) renewalConflict(ctx context.Context, id string) error {
	current, err := s.renewals.GetByID(ctx, id)
	if err != nil {
		return appErrors.ErrStageConflict
	}
	return classifyConflict(current.Status)
}

// ApproveEvent records the current stage's approval and advances the event
// request through its four-stage chain.
func (s *ApprovalService) ApproveEvent(ctx context.Context, id string, actor models.Actor, comment string) (*models.EventPermission, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event request")
	}
	if event.Status.Terminal() {
		return nil, appErrors.ErrAlreadyFinalized
	}
	step, ok := findStep(eventChain, event.Status)
	if !ok {
		return nil, appErrors.ErrInternal
	}
	if err := authorize(step, actor, event.ApplicantFaculty); err != nil {
		return nil, err
	}

	now := s.now()
	params := repository.AdvanceStageParams{
		ID:          event.ID,
		From:        step.stage,
		To:          step.next,
		StagePrefix: step.prefix,
		ApprovedAt:  now,
		Comment:     optionalComment(comment),
	}
	final := step.next == models.StageApproved
	if final {
		err = s.events.Finalize(ctx, params)
	} else {
		err = s.events.AdvanceStage(ctx, params)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.eventConflict(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to advance event request")
	}

	applyEventStage(event, step.prefix, now, params.Comment)
	event.Status = step.next
	if final {
		event.ApprovedDate = &now
	}

	s.record(ctx, actor, models.ActionEventApproved, event.EventName, fmt.Sprintf("advanced to %s", event.Status))
	if s.notifier != nil {
		if final {
			s.notifier.EventApproved(ctx, event)
		} else if nextRole, ok := roleForStage(eventChain, step.next); ok {
			s.notifier.EventAdvanced(ctx, event, step.role, nextRole)
		}
	}
	return event, nil
}

// RejectEvent records a rejection at the current stage.
func (s *ApprovalService) RejectEvent(ctx context.Context, id string, actor models.Actor, reason string) (*models.EventPermission, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event request")
	}
	if event.Status.Terminal() {
		return nil, appErrors.ErrAlreadyFinalized
	}
	step, ok := findStep(eventChain, event.Status)
	if !ok {
		return nil, appErrors.ErrInternal
	}
	if err := authorize(step, actor, event.ApplicantFaculty); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
	}

	if err := s.events.Reject(ctx, id, step.stage, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.eventConflict(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject event request")
	}
	event.Status = models.StageRejected
	event.RejectionReason = &reason

	s.record(ctx, actor, models.ActionEventRejected, event.EventName, reason)
	if s.notifier != nil {
		s.notifier.EventRejected(ctx, event, step.role, reason)
	}
	return event, nil
}

func (s *ApprovalService) eventConflict(ctx context.Context, id string) error {
	current, err := s.events.GetByID(ctx, id)
	if err != nil {
		return appErrors.ErrStageConflict
	}
	return classifyConflict(current.Status)
}

// PendingForActor returns the flattened inbox of requests awaiting the
// actor's decision. Deans see only their faculty; monitoring roles see every
// pending request at every stage.
func (s *ApprovalService) PendingForActor(ctx context.Context, actor models.Actor) ([]models.PendingItem, error) {
	switch actor.Role {
	case models.RoleDean:
		return s.collectPending(ctx, []models.Stage{models.StagePendingDean}, actor.Faculty)
	case models.RolePremisesOfficer:
		return s.collectPending(ctx, []models.Stage{models.StagePendingPremises}, "")
	case models.RoleAssistantRegistrar:
		return s.collectPending(ctx, []models.Stage{models.StagePendingAR}, "")
	case models.RoleViceChancellor:
		return s.collectPending(ctx, []models.Stage{models.StagePendingVC}, "")
	case models.RoleStudentService, models.RoleSuperAdmin:
		return s.collectPending(ctx, []models.Stage{
			models.StagePendingDean,
			models.StagePendingPremises,
			models.StagePendingAR,
			models.StagePendingVC,
		}, "")
	default:
		return nil, appErrors.ErrForbidden
	}
}

func (s *ApprovalService) collectPending(ctx context.Context, stages []models.Stage, faculty string) ([]models.PendingItem, error) {
	items := make([]models.PendingItem, 0, 16)
	for _, stage := range stages {
		if stage != models.StagePendingPremises {
			regs, err := s.listRegistrations(ctx, stage, faculty)
			if err != nil {
				return nil, err
			}
			for i := range regs {
				items = append(items, models.PendingItem{
					ID:            regs[i].ID,
					Kind:          models.KindRegistration,
					SocietyName:   regs[i].SocietyName,
					ApplicantName: regs[i].ApplicantFullName,
					Faculty:       regs[i].ApplicantFaculty,
					SubmittedDate: regs[i].SubmittedDate,
					Status:        regs[i].Status,
				})
			}
			renewals, err := s.listRenewals(ctx, stage, faculty)
			if err != nil {
				return nil, err
			}
			for i := range renewals {
				items = append(items, models.PendingItem{
					ID:            renewals[i].ID,
					Kind:          models.KindRenewal,
					SocietyName:   renewals[i].SocietyName,
					ApplicantName: renewals[i].ApplicantFullName,
					Faculty:       renewals[i].ApplicantFaculty,
					SubmittedDate: renewals[i].SubmittedDate,
					Status:        renewals[i].Status,
				})
			}
		}
		events, err := s.listEvents(ctx, stage, faculty)
		if err != nil {
			return nil, err
		}
		for i := range events {
			items = append(items, models.PendingItem{
				ID:            events[i].ID,
				Kind:          models.KindEvent,
				SocietyName:   events[i].SocietyName,
				EventName:     events[i].EventName,
				ApplicantName: events[i].ApplicantName,
				Faculty:       events[i].ApplicantFaculty,
				SubmittedDate: events[i].SubmittedDate,
				Status:        events[i].Status,
			})
		}
	}
	return items, nil
}

func (s *ApprovalService) listRegistrations(ctx context.Context, stage models.Stage, faculty string) ([]models.SocietyRegistration, error) {
	if faculty != "" {
		return s.registrations.ListByStatusAndFaculty(ctx, stage, faculty)
	}
	return s.registrations.ListByStatus(ctx, stage)
}

func (s *ApprovalService) listRenewals(ctx context.Context, stage models.Stage, faculty string) ([]models.SocietyRenewal, error) {
	if faculty != "" {
		return s.renewals.ListByStatusAndFaculty(ctx, stage, faculty)
	}
	return s.renewals.ListByStatus(ctx, stage)
}

func (s *ApprovalService) listEvents(ctx context.Context, stage models.Stage, faculty string) ([]models.EventPermission, error) {
	if faculty != "" {
		return s.events.ListByStatusAndFaculty(ctx, stage, faculty)
	}
	return s.events.ListByStatus(ctx, stage)
}

func (s *ApprovalService) record(ctx context.Context, actor models.Actor, action, target, detail string) {
	if s.activity == nil {
		return
	}
	entry := &models.ActivityLog{
		UserName: actor.Name,
		Action:   action,
		Target:   target,
		Detail:   detail,
	}
	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

// societyFromRegistration builds the canonical society record created when a
// registration reaches final approval.
func societyFromRegistration(reg *models.SocietyRegistration, now time.Time) *models.Society {
	return &models.Society{
		SocietyName: reg.SocietyName,
		Year:        reg.Year,
		Faculty:     reg.ApplicantFaculty,
		Status:      models.SocietyActive,
		Aims:        reg.Aims,
		AgmDate:     reg.AgmDate,
		BankAccount: reg.BankAccount,
		BankName:    reg.BankName,

		PresidentName:   reg.PresidentName,
		PresidentRegNo:  reg.PresidentRegNo,
		PresidentEmail:  reg.PresidentEmail,
		PresidentMobile: reg.PresidentMobile,

		VicePresidentName:   reg.VicePresidentName,
		VicePresidentRegNo:  reg.VicePresidentRegNo,
		VicePresidentEmail:  reg.VicePresidentEmail,
		VicePresidentMobile: reg.VicePresidentMobile,

		SecretaryName:   reg.SecretaryName,
		SecretaryRegNo:  reg.SecretaryRegNo,
		SecretaryEmail:  reg.SecretaryEmail,
		SecretaryMobile: reg.SecretaryMobile,

		JointSecretaryName:   reg.JointSecretaryName,
		JointSecretaryRegNo:  reg.JointSecretaryRegNo,
		JointSecretaryEmail:  reg.JointSecretaryEmail,
		JointSecretaryMobile: reg.JointSecretaryMobile,

		TreasurerName:   reg.TreasurerName,
		TreasurerRegNo:  reg.TreasurerRegNo,
		TreasurerEmail:  reg.TreasurerEmail,
		TreasurerMobile: reg.TreasurerMobile,

		EditorName:   reg.EditorName,
		EditorRegNo:  reg.EditorRegNo,
		EditorEmail:  reg.EditorEmail,
		EditorMobile: reg.EditorMobile,

		SeniorTreasurerName:  reg.SeniorTreasurerFullName,
		SeniorTreasurerEmail: reg.SeniorTreasurerEmail,

		RegisteredDate: &now,
	}
}

func applyRegistrationStage(reg *models.SocietyRegistration, prefix string, at time.Time, comment *string) {
	switch prefix {
	case "dean":
		reg.IsDeanApproved = true
		reg.DeanApprovalDate = &at
		reg.DeanComment = comment
	case "ar":
		reg.IsARApproved = true
		reg.ARApprovalDate = &at
		reg.ARComment = comment
	case "vc":
		reg.IsVCApproved = true
		reg.VCApprovalDate = &at
		reg.VCComment = comment
	}
}

func applyRenewalStage(renewal *models.SocietyRenewal, prefix string, at time.Time, comment *string) {
	switch prefix {
	case "dean":
		renewal.IsDeanApproved = true
		renewal.DeanApprovalDate = &at
		renewal.DeanComment = comment
	case "ar":
		renewal.IsARApproved = true
		renewal.ARApprovalDate = &at
		renewal.ARComment = comment
	case "vc":
		renewal.IsVCApproved = true
		renewal.VCApprovalDate = &at
		renewal.VCComment = comment
	}
}

func applyEventStage(event *models.EventPermission, prefix string, at time.Time, comment *string) {
	switch prefix {
	case "dean":
		event.IsDeanApproved = true
		event.DeanApprovalDate = &at
		event.DeanComment = comment
	case "premises":
		event.IsPremisesApproved = true
		event.PremisesApprovalDate = &at
		event.PremisesComment = comment
	case "ar":
		event.IsARApproved = true
		event.ARApprovalDate = &at
		event.ARComment = comment
	case "vc":
		event.IsVCApproved = true
		event.VCApprovalDate = &at
		event.VCComment = comment
	}
}
