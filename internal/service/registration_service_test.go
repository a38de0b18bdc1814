package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type mockRegistrationStore struct {
	created  *models.SocietyRegistration
	reg      *models.SocietyRegistration
	exists   bool
	byStatus []models.SocietyRegistration
	all      []models.SocietyRegistration
	counts   map[models.Stage]int
}

func (m *mockRegistrationStore) Create(_ context.Context, reg *models.SocietyRegistration) error {
	reg.ID = "reg-1"
	m.created = reg
	return nil
}

func (m *mockRegistrationStore) GetByID(context.Context, string) (*models.SocietyRegistration, error) {
	if m.reg == nil {
		return nil, sql.ErrNoRows
	}
	return m.reg, nil
}

func (m *mockRegistrationStore) ListAll(context.Context) ([]models.SocietyRegistration, error) {
	return m.all, nil
}

func (m *mockRegistrationStore) ListByStatus(_ context.Context, status models.Stage) ([]models.SocietyRegistration, error) {
	return m.byStatus, nil
}

func (m *mockRegistrationStore) ExistsByNameAndYear(context.Context, string, int) (bool, error) {
	return m.exists, nil
}

func (m *mockRegistrationStore) CountByYearAndStatus(_ context.Context, _ int, status models.Stage) (int, error) {
	return m.counts[status], nil
}

type stubRegistrationNotifier struct {
	submitted int
}

func (s *stubRegistrationNotifier) RegistrationSubmitted(context.Context, *models.SocietyRegistration) {
	s.submitted++
}

func newRegistrationFixture(store *mockRegistrationStore) (*RegistrationService, *stubRegistrationNotifier, *stubActivityRecorder) {
	if store == nil {
		store = &mockRegistrationStore{}
	}
	notifier := &stubRegistrationNotifier{}
	activity := &stubActivityRecorder{}
	svc := NewRegistrationService(store, notifier, activity, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, notifier, activity
}

func validRegistrationRequest() dto.SubmitRegistrationRequest {
	return dto.SubmitRegistrationRequest{
		ApplicantFullName: " K. Perera ",
		ApplicantRegNo:    "S/18/400",
		ApplicantEmail:    "kperera@sci.pdn.ac.lk",
		ApplicantFaculty:  "Science",
		SocietyName:       "Astronomy Society",
		Aims:              "Promote astronomy among undergraduates",
		AgmDate:           "2025-02-14",
		SeniorTreasurer: dto.SeniorTreasurerInput{
			Title:    "Dr.",
			FullName: "A. Bandara",
			Email:    "abandara@sci.pdn.ac.lk",
		},
		President: dto.OfficerInput{
			Name:  "K. Perera",
			RegNo: "S/18/400",
			Email: "kperera@sci.pdn.ac.lk",
		},
		CommitteeMembers: []dto.MemberInput{
			{RegNo: "S/18/401", Name: "R. Fernando"},
		},
		PlanningEvents: []dto.PlanningEventInput{
			{Month: "April", Activity: "Stargazing Night"},
		},
	}
}

func TestSubmitRegistration(t *testing.T) {
	store := &mockRegistrationStore{}
	svc, notifier, activity := newRegistrationFixture(store)

	reg, err := svc.Submit(context.Background(), validRegistrationRequest())
	require.NoError(t, err)

	require.Equal(t, "K. Perera", reg.ApplicantFullName)
	require.Equal(t, models.StagePendingDean, reg.Status)
	require.Equal(t, 2025, reg.Year)
	require.NotNil(t, reg.AgmDate)
	require.Equal(t, "2025-02-14", reg.AgmDate.Format("2006-01-02"))
	require.Equal(t, "K. Perera", reg.PresidentName)
	require.Len(t, reg.CommitteeMembers, 1)
	require.Len(t, reg.PlanningEvents, 1)

	require.NotNil(t, store.created)
	require.Equal(t, 1, notifier.submitted)
	require.Len(t, activity.entries, 1)
	require.Equal(t, models.ActionRegistrationSubmitted, activity.entries[0].Action)
}

func TestSubmitRegistrationDuplicateYear(t *testing.T) {
	store := &mockRegistrationStore{exists: true}
	svc, notifier, _ := newRegistrationFixture(store)

	_, err := svc.Submit(context.Background(), validRegistrationRequest())
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.Nil(t, store.created)
	require.Zero(t, notifier.submitted)
}

func TestSubmitRegistrationInvalidPayload(t *testing.T) {
	svc, _, _ := newRegistrationFixture(nil)

	req := validRegistrationRequest()
	req.ApplicantEmail = "not-an-email"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSubmitRegistrationBadAgmDate(t *testing.T) {
	svc, _, _ := newRegistrationFixture(nil)

	req := validRegistrationRequest()
	req.AgmDate = "14/02/2025"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "agm_date")
}

func TestGetRegistrationNotFound(t *testing.T) {
	svc, _, _ := newRegistrationFixture(nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestRegistrationStatistics(t *testing.T) {
	store := &mockRegistrationStore{counts: map[models.Stage]int{
		models.StageApproved:    4,
		models.StagePendingDean: 2,
		models.StagePendingAR:   1,
		models.StagePendingVC:   3,
	}}
	svc, _, _ := newRegistrationFixture(store)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2025, stats["year"])
	require.Equal(t, 4, stats["approved"])
	require.Equal(t, 6, stats["pending"])
}

func TestParseOptionalDate(t *testing.T) {
	parsed, err := parseOptionalDate("2025-02-14")
	require.NoError(t, err)
	require.NotNil(t, parsed)

	parsed, err = parseOptionalDate("")
	require.NoError(t, err)
	require.Nil(t, parsed)

	_, err = parseOptionalDate("bad")
	require.Error(t, err)
}
