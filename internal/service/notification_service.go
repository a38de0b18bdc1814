package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/pkg/jobs"
	"github.com/gihansgamage/sms-api/pkg/mailer"
)

const emailSignature = "\n\nBest regards,\nStudent Service Division\nUniversity of Peradeniya"

// EmailJobType identifies queued outbound emails.
const EmailJobType = "email"

// EmailMessage is the payload carried by email jobs.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// EmailJobHandler adapts a mail sender into a queue handler.
func EmailJobHandler(sender mailer.Sender) jobs.Handler {
	return func(_ context.Context, job jobs.Job) error {
		msg, ok := job.Payload.(EmailMessage)
		if !ok {
			return fmt.Errorf("unexpected email payload type %T", job.Payload)
		}
		return sender.Send(msg.To, msg.Subject, msg.Body)
	}
}

type emailQueue interface {
	Enqueue(job jobs.Job) error
}

type adminDirectory interface {
	FindActiveByRole(ctx context.Context, role models.AdminRole) ([]models.AdminUser, error)
	FindActiveByRoleAndFaculty(ctx context.Context, role models.AdminRole, faculty string) ([]models.AdminUser, error)
}

type emailObserver interface {
	ObserveEmailQueued()
}

// NotificationService fans out workflow emails through the background queue.
// Every send is fire and forget: a notification failure never fails the
// operation that triggered it.
type NotificationService struct {
	queue   emailQueue
	admins  adminDirectory
	metrics emailObserver
	logger  *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(queue emailQueue, admins adminDirectory, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{queue: queue, admins: admins, logger: logger}
}

// WithMetrics attaches an outbound email counter.
func (s *NotificationService) WithMetrics(metrics emailObserver) *NotificationService {
	s.metrics = metrics
	return s
}

func (s *NotificationService) send(to, subject, body string) {
	if s.queue == nil || to == "" {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    EmailJobType,
		Payload: EmailMessage{To: to, Subject: subject, Body: body},
	})
	if err != nil {
		s.logger.Warn("failed to enqueue email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveEmailQueued()
	}
}

// fanOut emails every active holder of a role; Dean fan-out is scoped to the
// applicant's faculty.
func (s *NotificationService) fanOut(ctx context.Context, role models.AdminRole, faculty string, subject string, body func(name string) string) {
	if s.admins == nil {
		return
	}
	var (
		admins []models.AdminUser
		err    error
	)
	if role == models.RoleDean {
		admins, err = s.admins.FindActiveByRoleAndFaculty(ctx, role, faculty)
	} else {
		admins, err = s.admins.FindActiveByRole(ctx, role)
	}
	if err != nil {
		s.logger.Warn("failed to resolve notification recipients", zap.String("role", string(role)), zap.Error(err))
		return
	}
	for _, admin := range admins {
		s.send(admin.Email, subject, body(admin.Name))
	}
}

func roleTitle(role models.AdminRole) string {
	switch role {
	case models.RoleDean:
		return "Faculty Dean"
	case models.RolePremisesOfficer:
		return "Premises Officer"
	case models.RoleAssistantRegistrar:
		return "Assistant Registrar"
	case models.RoleViceChancellor:
		return "Vice Chancellor"
	default:
		return string(role)
	}
}

// RegistrationSubmitted confirms receipt to the applicant, notifies the
// nominated senior treasurer, and alerts the faculty Dean.
func (s *NotificationService) RegistrationSubmitted(ctx context.Context, reg *models.SocietyRegistration) {
	s.send(reg.ApplicantEmail,
		"Society Registration Application Received",
		fmt.Sprintf("Dear %s,\n\nWe have received your application for the registration of '%s'.\nYour application ID is: %s\n\nThe application is now pending approval from the Faculty Dean.%s",
			reg.ApplicantFullName, reg.SocietyName, reg.ID, emailSignature))

	if reg.SeniorTreasurerEmail != "" {
		s.send(reg.SeniorTreasurerEmail,
			"Nomination as Senior Treasurer - "+reg.SocietyName,
			fmt.Sprintf("Dear %s,\n\nYou have been nominated as the Senior Treasurer for the society '%s'.\nThe registration application has been submitted and is currently pending approval from the Faculty Dean.%s",
				reg.SeniorTreasurerFullName, reg.SocietyName, emailSignature))
	}

	s.fanOut(ctx, models.RoleDean, reg.ApplicantFaculty,
		"Action Required: New Society Registration Application",
		func(name string) string {
			return fmt.Sprintf("Dear %s,\n\nA new society registration application requires your review.\n\nSociety: %s\nApplicant: %s\nFaculty: %s\n\nPlease log in to the SMS Admin Panel to review and approve/reject this application.%s",
				name, reg.SocietyName, reg.ApplicantFullName, reg.ApplicantFaculty, emailSignature)
		})
}

func (s *NotificationService) registrationStatusUpdate(reg *models.SocietyRegistration, status, byTitle, reason string) {
	subject := "Society Registration Status Update: " + status
	reasonText := ""
	if reason != "" {
		reasonText = "\nReason: " + reason + "\n"
	}
	body := fmt.Sprintf("The society registration application for '%s' has been updated.\n\nNew Status: %s\nUpdated By: %s\n%s\nPlease check the SMS portal for more details.%s",
		reg.SocietyName, status, byTitle, reasonText, emailSignature)

	s.send(reg.ApplicantEmail, subject, "Dear "+reg.ApplicantFullName+",\n\n"+body)
	if reg.SeniorTreasurerEmail != "" {
		s.send(reg.SeniorTreasurerEmail, subject, "Dear "+reg.SeniorTreasurerTitle+" "+reg.SeniorTreasurerFullName+",\n\n"+body)
	}
}

// RegistrationAdvanced reports a stage approval to the applicant and asks the
// next role to act.
func (s *NotificationService) RegistrationAdvanced(ctx context.Context, reg *models.SocietyRegistration, byRole models.AdminRole, next models.AdminRole) {
	s.registrationStatusUpdate(reg, string(reg.Status), roleTitle(byRole), "")

	switch next {
	case models.RoleAssistantRegistrar:
		s.fanOut(ctx, next, "", "Action Required: Society Registration Pending AR Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Faculty Dean has approved the registration for '%s'. It now requires your approval.%s",
					name, reg.SocietyName, emailSignature)
			})
	case models.RoleViceChancellor:
		s.fanOut(ctx, next, "", "Action Required: Society Registration Pending VC Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Assistant Registrar has approved the registration for '%s'. It now requires your final approval.%s",
					name, reg.SocietyName, emailSignature)
			})
	}
}

// RegistrationApproved reports the final approval.
func (s *NotificationService) RegistrationApproved(_ context.Context, reg *models.SocietyRegistration) {
	s.registrationStatusUpdate(reg, string(models.StageApproved), roleTitle(models.RoleViceChancellor), "")
}

// RegistrationRejected reports a rejection with its reason.
func (s *NotificationService) RegistrationRejected(_ context.Context, reg *models.SocietyRegistration, byRole models.AdminRole, reason string) {
	s.registrationStatusUpdate(reg, string(models.StageRejected), roleTitle(byRole), reason)
}

// RenewalSubmitted confirms receipt and alerts the faculty Dean.
func (s *NotificationService) RenewalSubmitted(ctx context.Context, renewal *models.SocietyRenewal) {
	s.send(renewal.ApplicantEmail, "Society Renewal Application Received",
		fmt.Sprintf("Dear %s,\n\nWe have received your renewal application for '%s'.%s",
			renewal.ApplicantFullName, renewal.SocietyName, emailSignature))

	s.fanOut(ctx, models.RoleDean, renewal.ApplicantFaculty,
		"Action Required: Society Renewal Application",
		func(name string) string {
			return fmt.Sprintf("Dear %s,\n\nA society renewal application for '%s' requires your review.%s",
				name, renewal.SocietyName, emailSignature)
		})
}

// RenewalAdvanced reports a stage approval and asks the next role to act.
func (s *NotificationService) RenewalAdvanced(ctx context.Context, renewal *models.SocietyRenewal, byRole models.AdminRole, next models.AdminRole) {
	s.send(renewal.ApplicantEmail, "Society Renewal Status Update: "+string(renewal.Status),
		fmt.Sprintf("Dear %s,\n\nYour society renewal application status has been updated to: %s by %s.%s",
			renewal.ApplicantFullName, renewal.Status, roleTitle(byRole), emailSignature))

	switch next {
	case models.RoleAssistantRegistrar:
		s.fanOut(ctx, next, "", "Action Required: Society Renewal Pending AR Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Faculty Dean has approved the renewal for '%s'. It now requires your approval.%s",
					name, renewal.SocietyName, emailSignature)
			})
	case models.RoleViceChancellor:
		s.fanOut(ctx, next, "", "Action Required: Society Renewal Pending VC Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Assistant Registrar has approved the renewal for '%s'. It now requires your final approval.%s",
					name, renewal.SocietyName, emailSignature)
			})
	}
}

// RenewalApproved congratulates the applicant on final approval.
func (s *NotificationService) RenewalApproved(_ context.Context, renewal *models.SocietyRenewal) {
	s.send(renewal.ApplicantEmail, "Congratulations! Society Renewal Approved",
		fmt.Sprintf("Dear %s,\n\nWe are pleased to inform you that the renewal application for '%s' has been APPROVED by the Vice Chancellor.\n\nAcademic Year: %d\n\nYou may now continue your society activities.%s",
			renewal.ApplicantFullName, renewal.SocietyName, renewal.RenewalYear, emailSignature))
}

// RenewalRejected reports a rejection with its reason.
func (s *NotificationService) RenewalRejected(_ context.Context, renewal *models.SocietyRenewal, _ models.AdminRole, reason string) {
	s.send(renewal.ApplicantEmail, "Society Renewal Application Rejected",
		fmt.Sprintf("Dear %s,\n\nWe regret to inform you that your renewal application for '%s' has been rejected.\n\nReason: %s%s",
			renewal.ApplicantFullName, renewal.SocietyName, reason, emailSignature))
}

// EventSubmitted confirms receipt and alerts the faculty Dean.
func (s *NotificationService) EventSubmitted(ctx context.Context, event *models.EventPermission) {
	date := event.EventDate.Format("2006-01-02")
	s.send(event.ApplicantEmail, "Event Permission Request Received",
		fmt.Sprintf("Dear %s,\n\nWe have received your permission request for the event '%s'.\nDate: %s\nPlace: %s\n\nThe request is now pending approval from the Faculty Dean.%s",
			event.ApplicantName, event.EventName, date, event.Place, emailSignature))

	s.fanOut(ctx, models.RoleDean, event.ApplicantFaculty,
		"Action Required: Event Permission Request",
		func(name string) string {
			return fmt.Sprintf("Dear %s,\n\nAn event permission request requires your review.\n\nSociety: %s\nEvent: %s\nDate: %s\n\nPlease log in to the SMS Admin Panel to review.%s",
				name, event.SocietyName, event.EventName, date, emailSignature)
		})
}

// EventAdvanced reports a stage approval and asks the next role to act.
func (s *NotificationService) EventAdvanced(ctx context.Context, event *models.EventPermission, byRole models.AdminRole, next models.AdminRole) {
	s.eventStatusUpdate(event, string(event.Status), roleTitle(byRole))

	date := event.EventDate.Format("2006-01-02")
	switch next {
	case models.RolePremisesOfficer:
		s.fanOut(ctx, next, "", "Action Required: Event Venue Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Faculty Dean has approved the event '%s'. It now requires your venue approval.\n\nPlace: %s\nDate: %s\nTime: %s - %s\n\nPlease log in to the SMS Admin Panel to review.%s",
					name, event.EventName, event.Place, date, derefOr(event.TimeFrom, "-"), derefOr(event.TimeTo, "-"), emailSignature)
			})
	case models.RoleAssistantRegistrar:
		s.fanOut(ctx, next, "", "Action Required: Event Permission Pending AR Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Premises Officer has approved the venue for '%s'. It now requires your approval.%s",
					name, event.EventName, emailSignature)
			})
	case models.RoleViceChancellor:
		s.fanOut(ctx, next, "", "Action Required: Event Permission Pending VC Approval",
			func(name string) string {
				return fmt.Sprintf("Dear %s,\n\nThe Assistant Registrar has approved the event '%s'. It now requires your final approval.%s",
					name, event.EventName, emailSignature)
			})
	}
}

func (s *NotificationService) eventStatusUpdate(event *models.EventPermission, status, byTitle string) {
	s.send(event.ApplicantEmail, "Event Permission Status Update: "+status,
		fmt.Sprintf("Dear %s,\n\nYour event permission request for '%s' has been updated.\nNew Status: %s\nUpdated By: %s\n\nPlease check the portal for details.%s",
			event.ApplicantName, event.EventName, status, byTitle, emailSignature))
}

// EventApproved reports the final approval.
func (s *NotificationService) EventApproved(_ context.Context, event *models.EventPermission) {
	s.eventStatusUpdate(event, string(models.StageApproved), roleTitle(models.RoleViceChancellor))
}

// EventRejected reports a rejection with its reason.
func (s *NotificationService) EventRejected(_ context.Context, event *models.EventPermission, _ models.AdminRole, reason string) {
	s.send(event.ApplicantEmail, "Event Permission Request Rejected",
		fmt.Sprintf("Dear %s,\n\nWe regret to inform you that permission for your event '%s' has been rejected.\nReason: %s%s",
			event.ApplicantName, event.EventName, reason, emailSignature))
}

// BulkEmail queues one message per recipient.
func (s *NotificationService) BulkEmail(recipients []string, subject, body string) int {
	sent := 0
	for _, to := range recipients {
		if to == "" {
			continue
		}
		s.send(to, subject, body+emailSignature)
		sent++
	}
	return sent
}

func derefOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
