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

type mockRenewalStore struct {
	created *models.SocietyRenewal
	renewal *models.SocietyRenewal
	exists  bool
	stats   *models.RenewalStatistics
}

func (m *mockRenewalStore) Create(_ context.Context, renewal *models.SocietyRenewal) error {
	renewal.ID = "ren-1"
	m.created = renewal
	return nil
}

func (m *mockRenewalStore) GetByID(context.Context, string) (*models.SocietyRenewal, error) {
	if m.renewal == nil {
		return nil, sql.ErrNoRows
	}
	return m.renewal, nil
}

func (m *mockRenewalStore) ListAll(context.Context) ([]models.SocietyRenewal, error) {
	return nil, nil
}

func (m *mockRenewalStore) ListByStatus(context.Context, models.Stage) ([]models.SocietyRenewal, error) {
	return nil, nil
}

func (m *mockRenewalStore) ExistsByNameAndYear(context.Context, string, int) (bool, error) {
	return m.exists, nil
}

func (m *mockRenewalStore) Statistics(context.Context, int) (*models.RenewalStatistics, error) {
	return m.stats, nil
}

type stubRenewalNotifier struct {
	submitted int
}

func (s *stubRenewalNotifier) RenewalSubmitted(context.Context, *models.SocietyRenewal) {
	s.submitted++
}

func newRenewalFixture(store *mockRenewalStore, society *models.Society) (*RenewalService, *stubRenewalNotifier) {
	if store == nil {
		store = &mockRenewalStore{}
	}
	notifier := &stubRenewalNotifier{}
	svc := NewRenewalService(store, &stubSocietyLookup{society: society}, notifier, &stubActivityRecorder{}, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, notifier
}

func validRenewalRequest() dto.SubmitRenewalRequest {
	return dto.SubmitRenewalRequest{
		ApplicantFullName: "R. Fernando",
		ApplicantRegNo:    "S/19/120",
		ApplicantEmail:    "rfernando@arts.pdn.ac.lk",
		ApplicantFaculty:  "Arts",
		SocietyName:       "Drama Circle",
		President: &dto.RenewalOfficerInput{
			Name:  "R. Fernando",
			RegNo: "S/19/120",
			Email: "rfernando@arts.pdn.ac.lk",
		},
	}
}

func TestSubmitRenewal(t *testing.T) {
	store := &mockRenewalStore{}
	society := &models.Society{SocietyName: "Drama Circle", Faculty: "Arts", Year: 2024}
	svc, notifier := newRenewalFixture(store, society)

	renewal, err := svc.Submit(context.Background(), validRenewalRequest())
	require.NoError(t, err)

	require.Equal(t, 2025, renewal.RenewalYear)
	require.Equal(t, models.StagePendingDean, renewal.Status)
	require.NotNil(t, renewal.PresidentName)
	require.Equal(t, "R. Fernando", *renewal.PresidentName)
	require.Nil(t, renewal.SecretaryName)
	require.NotNil(t, store.created)
	require.Equal(t, 1, notifier.submitted)
}

func TestSubmitRenewalUnregisteredSociety(t *testing.T) {
	svc, notifier := newRenewalFixture(nil, nil)

	_, err := svc.Submit(context.Background(), validRenewalRequest())
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	require.Zero(t, notifier.submitted)
}

func TestSubmitRenewalDuplicateYear(t *testing.T) {
	store := &mockRenewalStore{exists: true}
	society := &models.Society{SocietyName: "Drama Circle", Faculty: "Arts"}
	svc, _ := newRenewalFixture(store, society)

	_, err := svc.Submit(context.Background(), validRenewalRequest())
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestLatestSocietyDataForPrefill(t *testing.T) {
	society := &models.Society{SocietyName: "Drama Circle", Faculty: "Arts", Year: 2024}
	svc, _ := newRenewalFixture(nil, society)

	data, err := svc.LatestSocietyData(context.Background(), "Drama Circle")
	require.NoError(t, err)
	require.Equal(t, 2024, data.Year)
}

func TestLatestSocietyDataMissing(t *testing.T) {
	svc, _ := newRenewalFixture(nil, nil)

	_, err := svc.LatestSocietyData(context.Background(), "Ghost Society")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
