package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/pkg/export"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

var letterhead = []string{
	"UNIVERSITY OF PERADENIYA",
	"STUDENT SERVICE DIVISION",
}

const letterFooter = "This is a system generated document."

type letterRenderer interface {
	Render(letter export.Letter) ([]byte, error)
}

type pdfRegistrationSource interface {
	GetByID(ctx context.Context, id string) (*models.SocietyRegistration, error)
}

type pdfRenewalSource interface {
	GetByID(ctx context.Context, id string) (*models.SocietyRenewal, error)
}

type pdfEventSource interface {
	GetByID(ctx context.Context, id string) (*models.EventPermission, error)
}

// PDFService renders official application documents for registrations,
// renewals and event permissions.
type PDFService struct {
	registrations pdfRegistrationSource
	renewals      pdfRenewalSource
	events        pdfEventSource
	renderer      letterRenderer
	logger        *zap.Logger
}

// NewPDFService constructs the service.
func NewPDFService(registrations pdfRegistrationSource, renewals pdfRenewalSource, events pdfEventSource, renderer letterRenderer, logger *zap.Logger) *PDFService {
	if renderer == nil {
		renderer = export.NewLetterExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFService{
		registrations: registrations,
		renewals:      renewals,
		events:        events,
		renderer:      renderer,
		logger:        logger,
	}
}

// RegistrationDocument renders the application form for a stored registration.
func (s *PDFService) RegistrationDocument(ctx context.Context, id string) ([]byte, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, documentFetchError("registration", id, err)
	}
	letter := export.Letter{
		Heading: letterhead,
		Title:   "SOCIETY REGISTRATION APPLICATION",
		Fields: []export.LetterField{
			{Label: "Society Name:", Value: reg.SocietyName},
			{Label: "Faculty:", Value: reg.ApplicantFaculty},
			{Label: "Applicant:", Value: reg.ApplicantFullName},
			{Label: "Registration No:", Value: reg.ApplicantRegNo},
			{Label: "Senior Treasurer:", Value: reg.SeniorTreasurerFullName},
			{Label: "Year:", Value: fmt.Sprintf("%d", reg.Year)},
			{Label: "Submitted:", Value: reg.SubmittedDate.Format("2006-01-02")},
			{Label: "Status:", Value: string(reg.Status)},
		},
		Footer: letterFooter,
	}
	return s.render(letter)
}

// RegistrationPreview renders the application form from an unsubmitted
// request so applicants can review it before sending.
func (s *PDFService) RegistrationPreview(req dto.SubmitRegistrationRequest) ([]byte, error) {
	letter := export.Letter{
		Heading: letterhead,
		Title:   "SOCIETY REGISTRATION APPLICATION",
		Fields: []export.LetterField{
			{Label: "Society Name:", Value: req.SocietyName},
			{Label: "Faculty:", Value: req.ApplicantFaculty},
			{Label: "Applicant:", Value: req.ApplicantFullName},
			{Label: "Registration No:", Value: req.ApplicantRegNo},
			{Label: "Senior Treasurer:", Value: req.SeniorTreasurer.FullName},
		},
		Paragraphs: []string{
			"This preview reflects the details entered so far and has not been submitted.",
		},
		Footer: letterFooter,
	}
	return s.render(letter)
}

// RenewalDocument renders the renewal application for a stored renewal.
func (s *PDFService) RenewalDocument(ctx context.Context, id string) ([]byte, error) {
	renewal, err := s.renewals.GetByID(ctx, id)
	if err != nil {
		return nil, documentFetchError("renewal", id, err)
	}
	fields := []export.LetterField{
		{Label: "Society Name:", Value: renewal.SocietyName},
		{Label: "Faculty:", Value: renewal.ApplicantFaculty},
		{Label: "Applicant:", Value: renewal.ApplicantFullName},
		{Label: "Renewal Year:", Value: fmt.Sprintf("%d", renewal.RenewalYear)},
		{Label: "Submitted:", Value: renewal.SubmittedDate.Format("2006-01-02")},
		{Label: "Status:", Value: string(renewal.Status)},
	}
	if renewal.SeniorTreasurerFullName != nil {
		fields = append(fields, export.LetterField{Label: "Senior Treasurer:", Value: *renewal.SeniorTreasurerFullName})
	}
	letter := export.Letter{
		Heading: letterhead,
		Title:   "SOCIETY RENEWAL APPLICATION",
		Fields:  fields,
		Footer:  letterFooter,
	}
	return s.render(letter)
}

// EventDocument renders the permission request for a stored event.
func (s *PDFService) EventDocument(ctx context.Context, id string) ([]byte, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, documentFetchError("event permission", id, err)
	}
	letter := export.Letter{
		Heading: letterhead,
		Title:   "EVENT PERMISSION REQUEST",
		Fields: []export.LetterField{
			{Label: "Event Name:", Value: event.EventName},
			{Label: "Society:", Value: event.SocietyName},
			{Label: "Faculty:", Value: event.ApplicantFaculty},
			{Label: "Applicant:", Value: event.ApplicantName},
			{Label: "Date:", Value: event.EventDate.Format("2006-01-02")},
			{Label: "Time:", Value: timeWindow(event.TimeFrom, event.TimeTo)},
			{Label: "Venue:", Value: event.Place},
			{Label: "Status:", Value: string(event.Status)},
		},
		Footer: letterFooter,
	}
	return s.render(letter)
}

func (s *PDFService) render(letter export.Letter) ([]byte, error) {
	data, err := s.renderer.Render(letter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render document")
	}
	return data, nil
}

func documentFetchError(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %s not found", kind, id))
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch "+kind)
}

func timeWindow(from, to *string) string {
	switch {
	case from != nil && to != nil:
		return fmt.Sprintf("%s - %s", *from, *to)
	case from != nil:
		return *from
	default:
		return "-"
	}
}

