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

type mockEventStore struct {
	created  *models.EventPermission
	event    *models.EventPermission
	upcoming []models.EventPermission
}

func (m *mockEventStore) Create(_ context.Context, event *models.EventPermission) error {
	event.ID = "evt-1"
	m.created = event
	return nil
}

func (m *mockEventStore) GetByID(context.Context, string) (*models.EventPermission, error) {
	if m.event == nil {
		return nil, sql.ErrNoRows
	}
	return m.event, nil
}

func (m *mockEventStore) ListAll(context.Context) ([]models.EventPermission, error) {
	return nil, nil
}

func (m *mockEventStore) ListByStatus(context.Context, models.Stage) ([]models.EventPermission, error) {
	return nil, nil
}

func (m *mockEventStore) ListUpcomingApproved(context.Context, time.Time) ([]models.EventPermission, error) {
	return m.upcoming, nil
}

type stubSocietyLookup struct {
	society *models.Society
}

func (s *stubSocietyLookup) FindLatestByName(context.Context, string) (*models.Society, error) {
	if s.society == nil {
		return nil, sql.ErrNoRows
	}
	return s.society, nil
}

type stubEventNotifier struct {
	submitted int
}

func (s *stubEventNotifier) EventSubmitted(context.Context, *models.EventPermission) {
	s.submitted++
}

func newEventFixture(store *mockEventStore, society *models.Society) (*EventService, *stubEventNotifier) {
	if store == nil {
		store = &mockEventStore{}
	}
	notifier := &stubEventNotifier{}
	svc := NewEventService(store, &stubSocietyLookup{society: society}, notifier, &stubActivityRecorder{}, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, notifier
}

func validEventRequest() dto.SubmitEventRequest {
	return dto.SubmitEventRequest{
		ApplicantName:     "K. Perera",
		ApplicantRegNo:    "S/18/400",
		ApplicantEmail:    "kperera@sci.pdn.ac.lk",
		ApplicantPosition: "President",
		SocietyName:       "Astronomy Society",
		EventName:         "Stargazing Night",
		EventDate:         "2025-04-02",
		TimeFrom:          "18:00",
		TimeTo:            "22:00",
		Place:             "Science Faculty Grounds",
	}
}

func registeredSociety() *models.Society {
	return &models.Society{
		ID:             "soc-1",
		SocietyName:    "Astronomy Society",
		Faculty:        "Science",
		Year:           2025,
		Status:         models.SocietyActive,
		PresidentName:  "K. Perera",
		PresidentRegNo: "S18400",
		PresidentEmail: "kperera@sci.pdn.ac.lk",
	}
}

func TestSubmitEventDerivesFacultyFromSociety(t *testing.T) {
	store := &mockEventStore{}
	svc, notifier := newEventFixture(store, registeredSociety())

	event, err := svc.Submit(context.Background(), validEventRequest())
	require.NoError(t, err)

	require.Equal(t, "Science", event.ApplicantFaculty)
	require.Equal(t, models.StagePendingDean, store.created.Status)
	require.Equal(t, 1, notifier.submitted)
}

func TestSubmitEventRejectsPastDate(t *testing.T) {
	svc, _ := newEventFixture(nil, registeredSociety())

	req := validEventRequest()
	req.EventDate = "2025-03-09"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "past")
}

func TestSubmitEventAllowsSameDay(t *testing.T) {
	svc, _ := newEventFixture(nil, registeredSociety())

	req := validEventRequest()
	req.EventDate = "2025-03-10"
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
}

func TestSubmitEventRejectsInvertedTimeWindow(t *testing.T) {
	svc, _ := newEventFixture(nil, registeredSociety())

	req := validEventRequest()
	req.TimeFrom = "20:00"
	req.TimeTo = "18:00"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "end time must be after start time")
}

func TestSubmitEventUnknownSociety(t *testing.T) {
	svc, _ := newEventFixture(nil, nil)

	_, err := svc.Submit(context.Background(), validEventRequest())
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestApplicantDetailsNormalizesPosition(t *testing.T) {
	svc, _ := newEventFixture(nil, registeredSociety())

	details, err := svc.ApplicantDetails(context.Background(), "Astronomy Society", "  PRESIDENT ")
	require.NoError(t, err)
	require.Equal(t, "K. Perera", details.Name)
	require.Equal(t, "Science", details.Faculty)
}

func TestApplicantDetailsUnknownPosition(t *testing.T) {
	svc, _ := newEventFixture(nil, registeredSociety())

	_, err := svc.ApplicantDetails(context.Background(), "Astronomy Society", "chairperson")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown position")
}

func TestValidatePosition(t *testing.T) {
	society := registeredSociety()
	society.TreasurerName = "D. Silva"
	society.TreasurerRegNo = "S/18/500"
	society.TreasurerEmail = "dsilva@sci.pdn.ac.lk"

	tests := []struct {
		name  string
		req   dto.ValidatePositionRequest
		valid bool
	}{
		{
			name: "matching president with slashed reg no",
			req: dto.ValidatePositionRequest{
				SocietyName: "Astronomy Society",
				Position:    "President",
				RegNo:       "s/18/400",
				Email:       "KPerera@sci.pdn.ac.lk",
			},
			valid: true,
		},
		{
			name: "treasurer aliases junior treasurer",
			req: dto.ValidatePositionRequest{
				SocietyName: "Astronomy Society",
				Position:    "Treasurer",
				RegNo:       "S18500",
				Email:       "dsilva@sci.pdn.ac.lk",
			},
			valid: true,
		},
		{
			name: "hyphenated vice-president without holder",
			req: dto.ValidatePositionRequest{
				SocietyName: "Astronomy Society",
				Position:    "Vice-President",
				RegNo:       "S18400",
				Email:       "kperera@sci.pdn.ac.lk",
			},
			valid: false,
		},
		{
			name: "wrong reg no",
			req: dto.ValidatePositionRequest{
				SocietyName: "Astronomy Society",
				Position:    "President",
				RegNo:       "S/18/999",
				Email:       "kperera@sci.pdn.ac.lk",
			},
			valid: false,
		},
		{
			name: "unknown position",
			req: dto.ValidatePositionRequest{
				SocietyName: "Astronomy Society",
				Position:    "chairperson",
				RegNo:       "S/18/400",
				Email:       "kperera@sci.pdn.ac.lk",
			},
			valid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newEventFixture(nil, society)
			valid, err := svc.ValidatePosition(context.Background(), tc.req)
			require.NoError(t, err)
			require.Equal(t, tc.valid, valid)
		})
	}
}

func TestValidatePositionMissingSociety(t *testing.T) {
	svc, _ := newEventFixture(nil, nil)

	_, err := svc.ValidatePosition(context.Background(), dto.ValidatePositionRequest{
		SocietyName: "Ghost Society",
		Position:    "President",
		RegNo:       "S/18/400",
		Email:       "x@pdn.ac.lk",
	})
	require.Error(t, err)
}

func TestNormalizeRegNo(t *testing.T) {
	require.Equal(t, "S18400", normalizeRegNo(" s/18 400 "))
	require.Equal(t, normalizeRegNo("S/18/400"), normalizeRegNo("s18400"))
}

func TestUpcomingLimitsResults(t *testing.T) {
	store := &mockEventStore{upcoming: []models.EventPermission{
		{ID: "e1"}, {ID: "e2"}, {ID: "e3"},
	}}
	svc, _ := newEventFixture(store, nil)

	events, err := svc.Upcoming(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
}
