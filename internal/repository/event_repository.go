package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gihansgamage/sms-api/internal/models"
)

const eventColumns = `id, applicant_name, applicant_reg_no, applicant_email, applicant_mobile, applicant_position, applicant_faculty,
       society_name, event_name, event_date, time_from, time_to, place,
       is_inside_university, late_pass_required, outsiders_invited, outsiders_list, first_year_participation,
       budget_estimate, fund_collection_methods, student_fee_amount, receipt_number, payment_date,
       senior_treasurer_name, senior_treasurer_department, senior_treasurer_mobile,
       premises_officer_name, premises_officer_designation, premises_officer_division,
       status, submitted_date, approved_date, rejection_reason,
       is_dean_approved, is_premises_approved, is_ar_approved, is_vc_approved,
       dean_approval_date, premises_approval_date, ar_approval_date, vc_approval_date,
       dean_comment, premises_comment, ar_comment, vc_comment`

const insertEventQuery = `INSERT INTO event_permissions
	(id, applicant_name, applicant_reg_no, applicant_email, applicant_mobile, applicant_position, applicant_faculty,
	 society_name, event_name, event_date, time_from, time_to, place,
	 is_inside_university, late_pass_required, outsiders_invited, outsiders_list, first_year_participation,
	 budget_estimate, fund_collection_methods, student_fee_amount, receipt_number, payment_date,
	 senior_treasurer_name, senior_treasurer_department, senior_treasurer_mobile,
	 premises_officer_name, premises_officer_designation, premises_officer_division,
	 status, submitted_date)
	VALUES (:id, :applicant_name, :applicant_reg_no, :applicant_email, :applicant_mobile, :applicant_position, :applicant_faculty,
	 :society_name, :event_name, :event_date, :time_from, :time_to, :place,
	 :is_inside_university, :late_pass_required, :outsiders_invited, :outsiders_list, :first_year_participation,
	 :budget_estimate, :fund_collection_methods, :student_fee_amount, :receipt_number, :payment_date,
	 :senior_treasurer_name, :senior_treasurer_department, :senior_treasurer_mobile,
	 :premises_officer_name, :premises_officer_designation, :premises_officer_division,
	 :status, :submitted_date)`

// EventRepository persists event permission requests.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event permission request.
func (r *EventRepository) Create(ctx context.Context, event *models.EventPermission) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = models.StagePendingDean
	}
	if event.SubmittedDate.IsZero() {
		event.SubmittedDate = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, insertEventQuery, event); err != nil {
		return fmt.Errorf("create event permission: %w", err)
	}
	return nil
}

// GetByID fetches an event permission by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.EventPermission, error) {
	query := `SELECT ` + eventColumns + ` FROM event_permissions WHERE id = $1`
	var event models.EventPermission
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListByStatus returns event requests at the given stage, oldest first.
func (r *EventRepository) ListByStatus(ctx context.Context, status models.Stage) ([]models.EventPermission, error) {
	query := `SELECT ` + eventColumns + ` FROM event_permissions WHERE status = $1 ORDER BY submitted_date ASC`
	var events []models.EventPermission
	if err := r.db.SelectContext(ctx, &events, query, status); err != nil {
		return nil, fmt.Errorf("list events by status: %w", err)
	}
	return events, nil
}

// ListByStatusAndFaculty narrows a stage listing to one faculty.
func (r *EventRepository) ListByStatusAndFaculty(ctx context.Context, status models.Stage, faculty string) ([]models.EventPermission, error) {
	query := `SELECT ` + eventColumns + ` FROM event_permissions
		WHERE status = $1 AND applicant_faculty = $2 ORDER BY submitted_date ASC`
	var events []models.EventPermission
	if err := r.db.SelectContext(ctx, &events, query, status, faculty); err != nil {
		return nil, fmt.Errorf("list events by status and faculty: %w", err)
	}
	return events, nil
}

// ListAll returns every event request, newest first.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.EventPermission, error) {
	query := `SELECT ` + eventColumns + ` FROM event_permissions ORDER BY submitted_date DESC`
	var events []models.EventPermission
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListUpcomingApproved returns approved events dated on or after the given day.
func (r *EventRepository) ListUpcomingApproved(ctx context.Context, from time.Time) ([]models.EventPermission, error) {
	query := `SELECT ` + eventColumns + ` FROM event_permissions
		WHERE status = $1 AND event_date >= $2 ORDER BY event_date ASC`
	var events []models.EventPermission
	if err := r.db.SelectContext(ctx, &events, query, models.StageApproved, from); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// CountByStatus counts event requests at a stage.
func (r *EventRepository) CountByStatus(ctx context.Context, status models.Stage) (int, error) {
	const query = `SELECT COUNT(*) FROM event_permissions WHERE status = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// AdvanceStage applies one non-final approval with the conditional update
// semantics shared by all workflow tables.
func (r *EventRepository) AdvanceStage(ctx context.Context, params AdvanceStageParams) error {
	query, err := advanceStageQuery("event_permissions", params.StagePrefix, false)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query, params.ApprovedAt, params.Comment, params.To, params.ID, params.From)
	if err != nil {
		return fmt.Errorf("advance event stage: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check event stage rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Finalize applies the final approval. Events have no materialization step,
// only the approved_date stamp.
func (r *EventRepository) Finalize(ctx context.Context, params AdvanceStageParams) error {
	query, err := advanceStageQuery("event_permissions", params.StagePrefix, true)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query, params.ApprovedAt, params.Comment, params.To, params.ID, params.From)
	if err != nil {
		return fmt.Errorf("finalize event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check event finalize rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Reject marks an event request rejected while it still sits at the given stage.
func (r *EventRepository) Reject(ctx context.Context, id string, from models.Stage, reason string) error {
	result, err := r.db.ExecContext(ctx, rejectQuery("event_permissions"), models.StageRejected, reason, id, from)
	if err != nil {
		return fmt.Errorf("reject event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check event reject rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
