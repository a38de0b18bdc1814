package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/pkg/jobs"
)

type capturingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *capturingQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *capturingQueue) messages() []EmailMessage {
	msgs := make([]EmailMessage, 0, len(q.jobs))
	for _, job := range q.jobs {
		msgs = append(msgs, job.Payload.(EmailMessage))
	}
	return msgs
}

type stubAdminDirectory struct {
	byRole       map[models.AdminRole][]models.AdminUser
	facultyCalls []string
}

func (s *stubAdminDirectory) FindActiveByRole(_ context.Context, role models.AdminRole) ([]models.AdminUser, error) {
	return s.byRole[role], nil
}

func (s *stubAdminDirectory) FindActiveByRoleAndFaculty(_ context.Context, role models.AdminRole, faculty string) ([]models.AdminUser, error) {
	s.facultyCalls = append(s.facultyCalls, faculty)
	return s.byRole[role], nil
}

func newNotificationFixture(directory *stubAdminDirectory) (*NotificationService, *capturingQueue) {
	if directory == nil {
		directory = &stubAdminDirectory{}
	}
	queue := &capturingQueue{}
	return NewNotificationService(queue, directory, nil), queue
}

func TestRegistrationSubmittedNotifications(t *testing.T) {
	directory := &stubAdminDirectory{byRole: map[models.AdminRole][]models.AdminUser{
		models.RoleDean: {{Name: "Prof. Silva", Email: "dean@sci.pdn.ac.lk"}},
	}}
	svc, queue := newNotificationFixture(directory)

	reg := &models.SocietyRegistration{
		ID:                      "reg-1",
		SocietyName:             "Astronomy Society",
		ApplicantFullName:       "K. Perera",
		ApplicantEmail:          "kperera@sci.pdn.ac.lk",
		ApplicantFaculty:        "Science",
		SeniorTreasurerFullName: "A. Bandara",
		SeniorTreasurerEmail:    "abandara@sci.pdn.ac.lk",
	}
	svc.RegistrationSubmitted(context.Background(), reg)

	msgs := queue.messages()
	require.Len(t, msgs, 3)
	require.Equal(t, "kperera@sci.pdn.ac.lk", msgs[0].To)
	require.Equal(t, "Society Registration Application Received", msgs[0].Subject)
	require.Contains(t, msgs[0].Body, "Your application ID is: reg-1")
	require.Equal(t, "abandara@sci.pdn.ac.lk", msgs[1].To)
	require.Contains(t, msgs[1].Subject, "Nomination as Senior Treasurer")
	require.Equal(t, "dean@sci.pdn.ac.lk", msgs[2].To)
	require.Contains(t, msgs[2].Subject, "Action Required")
	require.Equal(t, []string{"Science"}, directory.facultyCalls)
}

func TestRegistrationSubmittedSkipsEmptyTreasurerEmail(t *testing.T) {
	svc, queue := newNotificationFixture(nil)

	reg := &models.SocietyRegistration{
		ID:             "reg-1",
		SocietyName:    "Astronomy Society",
		ApplicantEmail: "kperera@sci.pdn.ac.lk",
	}
	svc.RegistrationSubmitted(context.Background(), reg)

	require.Len(t, queue.messages(), 1)
}

func TestRegistrationAdvancedAsksNextRole(t *testing.T) {
	directory := &stubAdminDirectory{byRole: map[models.AdminRole][]models.AdminUser{
		models.RoleAssistantRegistrar: {
			{Name: "AR One", Email: "ar1@pdn.ac.lk"},
			{Name: "AR Two", Email: "ar2@pdn.ac.lk"},
		},
	}}
	svc, queue := newNotificationFixture(directory)

	reg := &models.SocietyRegistration{
		SocietyName:       "Astronomy Society",
		ApplicantFullName: "K. Perera",
		ApplicantEmail:    "kperera@sci.pdn.ac.lk",
		Status:            models.StagePendingAR,
	}
	svc.RegistrationAdvanced(context.Background(), reg, models.RoleDean, models.RoleAssistantRegistrar)

	msgs := queue.messages()
	require.Len(t, msgs, 3)
	require.Contains(t, msgs[0].Body, "New Status: PENDING_AR")
	require.Contains(t, msgs[0].Body, "Updated By: Faculty Dean")
	require.Equal(t, "ar1@pdn.ac.lk", msgs[1].To)
	require.Equal(t, "ar2@pdn.ac.lk", msgs[2].To)
	require.Contains(t, msgs[1].Subject, "Pending AR Approval")
}

func TestRenewalApprovedMentionsAcademicYear(t *testing.T) {
	svc, queue := newNotificationFixture(nil)

	renewal := &models.SocietyRenewal{
		SocietyName:       "Drama Circle",
		ApplicantFullName: "R. Fernando",
		ApplicantEmail:    "rfernando@arts.pdn.ac.lk",
		RenewalYear:       2025,
	}
	svc.RenewalApproved(context.Background(), renewal)

	msgs := queue.messages()
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Subject, "Congratulations")
	require.Contains(t, msgs[0].Body, "Academic Year: 2025")
}

func TestEventAdvancedToPremisesIncludesVenue(t *testing.T) {
	directory := &stubAdminDirectory{byRole: map[models.AdminRole][]models.AdminUser{
		models.RolePremisesOfficer: {{Name: "P. Officer", Email: "premises@pdn.ac.lk"}},
	}}
	svc, queue := newNotificationFixture(directory)

	from := "18:00"
	event := &models.EventPermission{
		EventName:      "Annual Concert",
		ApplicantName:  "R. Fernando",
		ApplicantEmail: "rfernando@arts.pdn.ac.lk",
		EventDate:      time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Place:          "Main Hall",
		TimeFrom:       &from,
		Status:         models.StagePendingPremises,
	}
	svc.EventAdvanced(context.Background(), event, models.RoleDean, models.RolePremisesOfficer)

	msgs := queue.messages()
	require.Len(t, msgs, 2)
	require.Contains(t, msgs[1].Subject, "Venue Approval")
	require.Contains(t, msgs[1].Body, "Place: Main Hall")
	require.Contains(t, msgs[1].Body, "Time: 18:00 - -")
}

func TestBulkEmailSkipsEmptyRecipients(t *testing.T) {
	svc, queue := newNotificationFixture(nil)

	sent := svc.BulkEmail([]string{"a@pdn.ac.lk", "", "b@pdn.ac.lk"}, "Notice", "Hall closed")
	require.Equal(t, 2, sent)
	require.Len(t, queue.messages(), 2)
}

func TestEnqueueFailureDoesNotPanic(t *testing.T) {
	queue := &capturingQueue{err: errors.New("queue full")}
	svc := NewNotificationService(queue, &stubAdminDirectory{}, nil)

	require.NotPanics(t, func() {
		svc.RenewalRejected(context.Background(), &models.SocietyRenewal{
			ApplicantEmail: "rfernando@arts.pdn.ac.lk",
		}, models.RoleDean, "incomplete")
	})
}

func TestEmailJobHandler(t *testing.T) {
	var gotTo, gotSubject string
	handler := EmailJobHandler(senderFunc(func(to, subject, body string) error {
		gotTo = to
		gotSubject = subject
		return nil
	}))

	err := handler(context.Background(), jobs.Job{
		Type:    EmailJobType,
		Payload: EmailMessage{To: "a@pdn.ac.lk", Subject: "Hello", Body: "Hi"},
	})
	require.NoError(t, err)
	require.Equal(t, "a@pdn.ac.lk", gotTo)
	require.Equal(t, "Hello", gotSubject)

	err = handler(context.Background(), jobs.Job{Type: EmailJobType, Payload: 42})
	require.Error(t, err)
}

type senderFunc func(to, subject, body string) error

func (f senderFunc) Send(to, subject, body string) error {
	return f(to, subject, body)
}
