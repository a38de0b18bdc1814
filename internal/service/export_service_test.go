package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type stubSocietyDirectory struct {
	societies  []models.Society
	err        error
	lastFilter models.SocietyFilter
}

func (s *stubSocietyDirectory) List(_ context.Context, filter models.SocietyFilter) ([]models.Society, int, error) {
	s.lastFilter = filter
	return s.societies, len(s.societies), s.err
}

type stubActivitySource struct {
	logs []models.ActivityLog
	err  error
}

func (s *stubActivitySource) List(context.Context, models.ActivityLogFilter) ([]models.ActivityLog, int, error) {
	return s.logs, len(s.logs), s.err
}

func newExportFixture(societies *stubSocietyDirectory, activities *stubActivitySource) *ExportService {
	svc := NewExportService(societies, activities, nil, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceSocietiesCSV(t *testing.T) {
	registered := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	directory := &stubSocietyDirectory{societies: []models.Society{{
		SocietyName:         "Astronomy Society",
		Year:                2025,
		Faculty:             "Science",
		Status:              models.SocietyActive,
		PresidentName:       "K. Perera",
		SecretaryName:       "N. Silva",
		SeniorTreasurerName: "Dr. R. Bandara",
		RegisteredDate:      &registered,
	}}}
	svc := newExportFixture(directory, &stubActivitySource{})

	result, err := svc.Societies(context.Background(), FormatCSV)

	require.NoError(t, err)
	require.Equal(t, "societies-20250310.csv", result.Filename)
	require.Equal(t, "text/csv", result.MimeType)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "Society Name")
	require.Contains(t, lines[1], "Astronomy Society")
	require.Contains(t, lines[1], "2024-05-20")
}

func TestExportServiceSocietiesPDF(t *testing.T) {
	directory := &stubSocietyDirectory{societies: []models.Society{{SocietyName: "Astronomy Society", Year: 2025}}}
	svc := newExportFixture(directory, &stubActivitySource{})

	result, err := svc.Societies(context.Background(), FormatPDF)

	require.NoError(t, err)
	require.Equal(t, "societies-20250310.pdf", result.Filename)
	require.Equal(t, "application/pdf", result.MimeType)
	require.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportServiceActivityLogsCSV(t *testing.T) {
	activities := &stubActivitySource{logs: []models.ActivityLog{{
		UserName:  "Faculty Dean",
		Action:    models.ActionRegistrationApproved,
		Target:    "reg-1",
		Detail:    "dean approved",
		Timestamp: time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC),
	}}}
	svc := newExportFixture(&stubSocietyDirectory{}, activities)

	result, err := svc.ActivityLogs(context.Background(), models.ActivityLogFilter{}, FormatCSV)

	require.NoError(t, err)
	require.Contains(t, string(result.Data), "Faculty Dean")
	require.Contains(t, string(result.Data), models.ActionRegistrationApproved)
}

type stubRegistrationSource struct {
	registrations []models.SocietyRegistration
	err           error
}

func (s *stubRegistrationSource) ListAll(context.Context) ([]models.SocietyRegistration, error) {
	return s.registrations, s.err
}

type stubRenewalSource struct {
	renewals []models.SocietyRenewal
}

func (s *stubRenewalSource) ListAll(context.Context) ([]models.SocietyRenewal, error) {
	return s.renewals, nil
}

type stubEventSource struct {
	events []models.EventPermission
}

func (s *stubEventSource) ListAll(context.Context) ([]models.EventPermission, error) {
	return s.events, nil
}

func TestExportServiceRequestsCSV(t *testing.T) {
	submitted := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	approved := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	svc := newExportFixture(&stubSocietyDirectory{}, &stubActivitySource{}).WithRequestSources(
		&stubRegistrationSource{registrations: []models.SocietyRegistration{{
			SocietyName:       "Astronomy Society",
			ApplicantFullName: "K. Perera",
			ApplicantFaculty:  "Science",
			Status:            models.StageApproved,
			SubmittedDate:     submitted,
			ApprovedDate:      &approved,
		}}},
		&stubRenewalSource{renewals: []models.SocietyRenewal{{
			SocietyName:       "Drama Society",
			ApplicantFullName: "N. Silva",
			ApplicantFaculty:  "Arts",
			Status:            models.StagePendingAR,
			SubmittedDate:     submitted,
		}}},
		&stubEventSource{events: []models.EventPermission{{
			SocietyName:      "Astronomy Society",
			EventName:        "Star Gazing Night",
			ApplicantName:    "T. Fernando",
			ApplicantFaculty: "Science",
			Status:           models.StagePendingPremises,
			SubmittedDate:    submitted,
		}}},
	)

	result, err := svc.Requests(context.Background(), FormatCSV)

	require.NoError(t, err)
	require.Equal(t, "requests-20250310.csv", result.Filename)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], "Registration")
	require.Contains(t, lines[1], "2025-02-20")
	require.Contains(t, lines[2], "Renewal")
	require.Contains(t, lines[3], "Event")
}

func TestExportServiceRequestsWithoutSources(t *testing.T) {
	svc := newExportFixture(&stubSocietyDirectory{}, &stubActivitySource{})

	_, err := svc.Requests(context.Background(), FormatCSV)

	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, format)

	format, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	require.Equal(t, FormatPDF, format)

	_, err = ParseFormat("xlsx")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
