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

type pdfRegistrationStub struct {
	reg *models.SocietyRegistration
}

func (s *pdfRegistrationStub) GetByID(context.Context, string) (*models.SocietyRegistration, error) {
	if s.reg == nil {
		return nil, sql.ErrNoRows
	}
	return s.reg, nil
}

type pdfRenewalStub struct {
	renewal *models.SocietyRenewal
}

func (s *pdfRenewalStub) GetByID(context.Context, string) (*models.SocietyRenewal, error) {
	if s.renewal == nil {
		return nil, sql.ErrNoRows
	}
	return s.renewal, nil
}

type pdfEventStub struct {
	event *models.EventPermission
}

func (s *pdfEventStub) GetByID(context.Context, string) (*models.EventPermission, error) {
	if s.event == nil {
		return nil, sql.ErrNoRows
	}
	return s.event, nil
}

func newPDFFixture(reg *models.SocietyRegistration, renewal *models.SocietyRenewal, event *models.EventPermission) *PDFService {
	return NewPDFService(
		&pdfRegistrationStub{reg: reg},
		&pdfRenewalStub{renewal: renewal},
		&pdfEventStub{event: event},
		nil, nil,
	)
}

func TestRegistrationDocument(t *testing.T) {
	reg := &models.SocietyRegistration{
		ID:                      "reg-1",
		SocietyName:             "Astronomy Society",
		ApplicantFullName:       "K. Perera",
		ApplicantRegNo:          "S/18/400",
		ApplicantFaculty:        "Science",
		SeniorTreasurerFullName: "A. Bandara",
		Year:                    2025,
		SubmittedDate:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:                  models.StagePendingDean,
	}
	svc := newPDFFixture(reg, nil, nil)

	data, err := svc.RegistrationDocument(context.Background(), "reg-1")
	require.NoError(t, err)
	require.True(t, len(data) > 4)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestRegistrationDocumentNotFound(t *testing.T) {
	svc := newPDFFixture(nil, nil, nil)

	_, err := svc.RegistrationDocument(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestRegistrationPreview(t *testing.T) {
	svc := newPDFFixture(nil, nil, nil)

	data, err := svc.RegistrationPreview(dto.SubmitRegistrationRequest{
		SocietyName:       "Astronomy Society",
		ApplicantFullName: "K. Perera",
		ApplicantFaculty:  "Science",
	})
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestEventDocumentFormatsTimeWindow(t *testing.T) {
	from, to := "18:00", "22:00"
	event := &models.EventPermission{
		ID:            "evt-1",
		EventName:     "Annual Concert",
		SocietyName:   "Drama Circle",
		ApplicantName: "R. Fernando",
		EventDate:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		TimeFrom:      &from,
		TimeTo:        &to,
		Place:         "Main Hall",
		Status:        models.StagePendingDean,
	}
	svc := newPDFFixture(nil, nil, event)

	data, err := svc.EventDocument(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestTimeWindow(t *testing.T) {
	from, to := "18:00", "22:00"
	require.Equal(t, "18:00 - 22:00", timeWindow(&from, &to))
	require.Equal(t, "18:00", timeWindow(&from, nil))
	require.Equal(t, "-", timeWindow(nil, nil))
}
