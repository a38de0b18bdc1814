package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/export"
)

// ExportFormat selects the rendering of a tabular export.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type societyDirectory interface {
	List(ctx context.Context, filter models.SocietyFilter) ([]models.Society, int, error)
}

type activitySource interface {
	List(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, int, error)
}

type registrationSource interface {
	ListAll(ctx context.Context) ([]models.SocietyRegistration, error)
}

type renewalSource interface {
	ListAll(ctx context.Context) ([]models.SocietyRenewal, error)
}

type eventSource interface {
	ListAll(ctx context.Context) ([]models.EventPermission, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type tableRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries rendered bytes with their download metadata.
type ExportResult struct {
	Filename string
	MimeType string
	Data     []byte
}

// ExportService renders society directory and activity log exports for the
// student service division.
type ExportService struct {
	societies     societyDirectory
	activities    activitySource
	registrations registrationSource
	renewals      renewalSource
	events        eventSource
	csv           csvRenderer
	table         tableRenderer
	logger        *zap.Logger
	now           func() time.Time
}

// NewExportService constructs the service. Nil renderers fall back to the
// default exporters.
func NewExportService(societies societyDirectory, activities activitySource, csv csvRenderer, table tableRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if table == nil {
		table = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		societies:  societies,
		activities: activities,
		csv:        csv,
		table:      table,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithRequestSources enables the request monitoring export across all
// three request kinds.
func (s *ExportService) WithRequestSources(registrations registrationSource, renewals renewalSource, events eventSource) *ExportService {
	s.registrations = registrations
	s.renewals = renewals
	s.events = events
	return s
}

// ParseFormat normalises a format query value, defaulting to CSV.
func ParseFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format '%s'", raw))
	}
}

var societyExportHeaders = []string{
	"Society Name", "Year", "Faculty", "Status",
	"President", "Secretary", "Senior Treasurer", "Registered",
}

// Societies exports the full society directory.
func (s *ExportService) Societies(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	societies, _, err := s.societies.List(ctx, models.SocietyFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load societies for export")
	}

	rows := make([]map[string]string, 0, len(societies))
	for _, society := range societies {
		registered := ""
		if society.RegisteredDate != nil {
			registered = society.RegisteredDate.Format("2006-01-02")
		}
		rows = append(rows, map[string]string{
			"Society Name":     society.SocietyName,
			"Year":             fmt.Sprintf("%d", society.Year),
			"Faculty":          society.Faculty,
			"Status":           string(society.Status),
			"President":        society.PresidentName,
			"Secretary":        society.SecretaryName,
			"Senior Treasurer": society.SeniorTreasurerName,
			"Registered":       registered,
		})
	}

	dataset := export.Dataset{Headers: societyExportHeaders, Rows: rows}
	return s.render(dataset, format, "societies", "Society Directory")
}

var activityExportHeaders = []string{"Timestamp", "User", "Action", "Target", "Detail"}

// ActivityLogs exports the filtered activity log.
func (s *ExportService) ActivityLogs(ctx context.Context, filter models.ActivityLogFilter, format ExportFormat) (*ExportResult, error) {
	logs, _, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity logs for export")
	}

	rows := make([]map[string]string, 0, len(logs))
	for _, entry := range logs {
		rows = append(rows, map[string]string{
			"Timestamp": entry.Timestamp.Format(time.RFC3339),
			"User":      entry.UserName,
			"Action":    entry.Action,
			"Target":    entry.Target,
			"Detail":    entry.Detail,
		})
	}

	dataset := export.Dataset{Headers: activityExportHeaders, Rows: rows}
	return s.render(dataset, format, "activity-logs", "Activity Log")
}

var requestExportHeaders = []string{
	"Type", "Society", "Applicant", "Faculty", "Status", "Submitted", "Approved",
}

// Requests exports the monitoring list of every registration, renewal
// and event request with its workflow status.
func (s *ExportService) Requests(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if s.registrations == nil || s.renewals == nil || s.events == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "request export sources not configured")
	}

	registrations, err := s.registrations.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registrations for export")
	}
	renewals, err := s.renewals.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load renewals for export")
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events for export")
	}

	formatDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}

	rows := make([]map[string]string, 0, len(registrations)+len(renewals)+len(events))
	for _, reg := range registrations {
		rows = append(rows, map[string]string{
			"Type":      "Registration",
			"Society":   reg.SocietyName,
			"Applicant": reg.ApplicantFullName,
			"Faculty":   reg.ApplicantFaculty,
			"Status":    string(reg.Status),
			"Submitted": reg.SubmittedDate.Format("2006-01-02"),
			"Approved":  formatDate(reg.ApprovedDate),
		})
	}
	for _, ren := range renewals {
		rows = append(rows, map[string]string{
			"Type":      "Renewal",
			"Society":   ren.SocietyName,
			"Applicant": ren.ApplicantFullName,
			"Faculty":   ren.ApplicantFaculty,
			"Status":    string(ren.Status),
			"Submitted": ren.SubmittedDate.Format("2006-01-02"),
			"Approved":  formatDate(ren.ApprovedDate),
		})
	}
	for _, ev := range events {
		rows = append(rows, map[string]string{
			"Type":      "Event",
			"Society":   ev.SocietyName,
			"Applicant": ev.ApplicantName,
			"Faculty":   ev.ApplicantFaculty,
			"Status":    string(ev.Status),
			"Submitted": ev.SubmittedDate.Format("2006-01-02"),
			"Approved":  formatDate(ev.ApprovedDate),
		})
	}

	dataset := export.Dataset{Headers: requestExportHeaders, Rows: rows}
	return s.render(dataset, format, "requests", "Request Monitoring")
}

func (s *ExportService) render(dataset export.Dataset, format ExportFormat, name, title string) (*ExportResult, error) {
	stamp := s.now().Format("20060102")
	switch format {
	case FormatPDF:
		data, err := s.table.Render(dataset, title)
		if err != nil {
			s.logger.Error("pdf export failed", zap.String("export", name), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{
			Filename: fmt.Sprintf("%s-%s.pdf", name, stamp),
			MimeType: "application/pdf",
			Data:     data,
		}, nil
	default:
		data, err := s.csv.Render(dataset)
		if err != nil {
			s.logger.Error("csv export failed", zap.String("export", name), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{
			Filename: fmt.Sprintf("%s-%s.csv", name, stamp),
			MimeType: "text/csv",
			Data:     data,
		}, nil
	}
}
