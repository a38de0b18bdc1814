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

const registrationColumns = `id, applicant_full_name, applicant_reg_no, applicant_email, applicant_faculty, applicant_mobile,
       society_name, aims, agm_date, bank_account, bank_name,
       senior_treasurer_title, senior_treasurer_full_name, senior_treasurer_designation, senior_treasurer_department,
       senior_treasurer_email, senior_treasurer_address, senior_treasurer_mobile,
       president_reg_no, president_name, president_address, president_email, president_mobile,
       vice_president_reg_no, vice_president_name, vice_president_address, vice_president_email, vice_president_mobile,
       secretary_reg_no, secretary_name, secretary_address, secretary_email, secretary_mobile,
       joint_secretary_reg_no, joint_secretary_name, joint_secretary_address, joint_secretary_email, joint_secretary_mobile,
       treasurer_reg_no, treasurer_name, treasurer_address, treasurer_email, treasurer_mobile,
       editor_reg_no, editor_name, editor_address, editor_email, editor_mobile,
       status, year, submitted_date, approved_date, rejection_reason,
       is_dean_approved, is_ar_approved, is_vc_approved,
       dean_approval_date, ar_approval_date, vc_approval_date,
       dean_comment, ar_comment, vc_comment`

const insertRegistrationQuery = `INSERT INTO society_registrations
	(id, applicant_full_name, applicant_reg_no, applicant_email, applicant_faculty, applicant_mobile,
	 society_name, aims, agm_date, bank_account, bank_name,
	 senior_treasurer_title, senior_treasurer_full_name, senior_treasurer_designation, senior_treasurer_department,
	 senior_treasurer_email, senior_treasurer_address, senior_treasurer_mobile,
	 president_reg_no, president_name, president_address, president_email, president_mobile,
	 vice_president_reg_no, vice_president_name, vice_president_address, vice_president_email, vice_president_mobile,
	 secretary_reg_no, secretary_name, secretary_address, secretary_email, secretary_mobile,
	 joint_secretary_reg_no, joint_secretary_name, joint_secretary_address, joint_secretary_email, joint_secretary_mobile,
	 treasurer_reg_no, treasurer_name, treasurer_address, treasurer_email, treasurer_mobile,
	 editor_reg_no, editor_name, editor_address, editor_email, editor_mobile,
	 status, year, submitted_date)
	VALUES (:id, :applicant_full_name, :applicant_reg_no, :applicant_email, :applicant_faculty, :applicant_mobile,
	 :society_name, :aims, :agm_date, :bank_account, :bank_name,
	 :senior_treasurer_title, :senior_treasurer_full_name, :senior_treasurer_designation, :senior_treasurer_department,
	 :senior_treasurer_email, :senior_treasurer_address, :senior_treasurer_mobile,
	 :president_reg_no, :president_name, :president_address, :president_email, :president_mobile,
	 :vice_president_reg_no, :vice_president_name, :vice_president_address, :vice_president_email, :vice_president_mobile,
	 :secretary_reg_no, :secretary_name, :secretary_address, :secretary_email, :secretary_mobile,
	 :joint_secretary_reg_no, :joint_secretary_name, :joint_secretary_address, :joint_secretary_email, :joint_secretary_mobile,
	 :treasurer_reg_no, :treasurer_name, :treasurer_address, :treasurer_email, :treasurer_mobile,
	 :editor_reg_no, :editor_name, :editor_address, :editor_email, :editor_mobile,
	 :status, :year, :submitted_date)`

// RegistrationRepository persists society registration applications and their
// child collections.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration and its child rows in one transaction.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.SocietyRegistration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.Status == "" {
		reg.Status = models.StagePendingDean
	}
	if reg.SubmittedDate.IsZero() {
		reg.SubmittedDate = time.Now().UTC()
	}
	if reg.Year == 0 {
		reg.Year = reg.SubmittedDate.Year()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.NamedExecContext(ctx, insertRegistrationQuery, reg); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	if err := insertRegistrationChildren(ctx, tx, reg); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}
	return nil
}

func insertRegistrationChildren(ctx context.Context, tx *sqlx.Tx, reg *models.SocietyRegistration) error {
	const advisoryQuery = `INSERT INTO registration_advisory_board (id, registration_id, name, designation, department)
		VALUES (:id, :registration_id, :name, :designation, :department)`
	for i := range reg.AdvisoryBoard {
		member := &reg.AdvisoryBoard[i]
		if member.ID == "" {
			member.ID = uuid.NewString()
		}
		member.RegistrationID = reg.ID
		if _, err := tx.NamedExecContext(ctx, advisoryQuery, member); err != nil {
			return fmt.Errorf("insert advisory board member: %w", err)
		}
	}

	const committeeQuery = `INSERT INTO registration_committee_members (id, registration_id, reg_no, name)
		VALUES (:id, :registration_id, :reg_no, :name)`
	for i := range reg.CommitteeMembers {
		member := &reg.CommitteeMembers[i]
		if member.ID == "" {
			member.ID = uuid.NewString()
		}
		member.RegistrationID = reg.ID
		if _, err := tx.NamedExecContext(ctx, committeeQuery, member); err != nil {
			return fmt.Errorf("insert committee member: %w", err)
		}
	}

	const generalQuery = `INSERT INTO registration_general_members (id, registration_id, reg_no, name)
		VALUES (:id, :registration_id, :reg_no, :name)`
	for i := range reg.GeneralMembers {
		member := &reg.GeneralMembers[i]
		if member.ID == "" {
			member.ID = uuid.NewString()
		}
		member.RegistrationID = reg.ID
		if _, err := tx.NamedExecContext(ctx, generalQuery, member); err != nil {
			return fmt.Errorf("insert general member: %w", err)
		}
	}

	const eventQuery = `INSERT INTO registration_planning_events (id, registration_id, month, activity)
		VALUES (:id, :registration_id, :month, :activity)`
	for i := range reg.PlanningEvents {
		event := &reg.PlanningEvents[i]
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		event.RegistrationID = reg.ID
		if _, err := tx.NamedExecContext(ctx, eventQuery, event); err != nil {
			return fmt.Errorf("insert planning event: %w", err)
		}
	}
	return nil
}

// GetByID fetches a registration with its child collections.
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*models.SocietyRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM society_registrations WHERE id = $1`
	var reg models.SocietyRegistration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepository) loadChildren(ctx context.Context, reg *models.SocietyRegistration) error {
	const advisoryQuery = `SELECT id, registration_id, name, designation, department
		FROM registration_advisory_board WHERE registration_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &reg.AdvisoryBoard, advisoryQuery, reg.ID); err != nil {
		return fmt.Errorf("load advisory board: %w", err)
	}
	const committeeQuery = `SELECT id, registration_id, reg_no, name
		FROM registration_committee_members WHERE registration_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &reg.CommitteeMembers, committeeQuery, reg.ID); err != nil {
		return fmt.Errorf("load committee members: %w", err)
	}
	const generalQuery = `SELECT id, registration_id, reg_no, name
		FROM registration_general_members WHERE registration_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &reg.GeneralMembers, generalQuery, reg.ID); err != nil {
		return fmt.Errorf("load general members: %w", err)
	}
	const eventsQuery = `SELECT id, registration_id, month, activity
		FROM registration_planning_events WHERE registration_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &reg.PlanningEvents, eventsQuery, reg.ID); err != nil {
		return fmt.Errorf("load planning events: %w", err)
	}
	return nil
}

// ListByStatus returns registrations at the given stage, oldest first.
func (r *RegistrationRepository) ListByStatus(ctx context.Context, status models.Stage) ([]models.SocietyRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM society_registrations WHERE status = $1 ORDER BY submitted_date ASC`
	var regs []models.SocietyRegistration
	if err := r.db.SelectContext(ctx, &regs, query, status); err != nil {
		return nil, fmt.Errorf("list registrations by status: %w", err)
	}
	return regs, nil
}

// ListByStatusAndFaculty narrows a stage listing to one faculty.
func (r *RegistrationRepository) ListByStatusAndFaculty(ctx context.Context, status models.Stage, faculty string) ([]models.SocietyRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM society_registrations
		WHERE status = $1 AND applicant_faculty = $2 ORDER BY submitted_date ASC`
	var regs []models.SocietyRegistration
	if err := r.db.SelectContext(ctx, &regs, query, status, faculty); err != nil {
		return nil, fmt.Errorf("list registrations by status and faculty: %w", err)
	}
	return regs, nil
}

// ListAll returns every registration, newest first.
func (r *RegistrationRepository) ListAll(ctx context.Context) ([]models.SocietyRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM society_registrations ORDER BY submitted_date DESC`
	var regs []models.SocietyRegistration
	if err := r.db.SelectContext(ctx, &regs, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// ExistsByNameAndYear reports whether a non-rejected application already
// exists for the society name in the given year.
func (r *RegistrationRepository) ExistsByNameAndYear(ctx context.Context, name string, year int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM society_registrations
		WHERE LOWER(society_name) = LOWER($1) AND year = $2 AND status <> 'REJECTED')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, year); err != nil {
		return false, fmt.Errorf("check registration exists: %w", err)
	}
	return exists, nil
}

// CountByYearAndStatus counts registrations submitted in a year at a stage.
func (r *RegistrationRepository) CountByYearAndStatus(ctx context.Context, year int, status models.Stage) (int, error) {
	const query = `SELECT COUNT(*) FROM society_registrations WHERE year = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, year, status); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

// AdvanceStage applies one non-final approval. The update only lands while
// the row still sits at params.From; zero rows means another approver got
// there first and the caller must reload to classify the conflict.
func (r *RegistrationRepository) AdvanceStage(ctx context.Context, params AdvanceStageParams) error {
	query, err := advanceStageQuery("society_registrations", params.StagePrefix, false)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query, params.ApprovedAt, params.Comment, params.To, params.ID, params.From)
	if err != nil {
		return fmt.Errorf("advance registration stage: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check registration stage rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Finalize applies the final approval and creates the society in the same
// transaction. When a society with the same name already exists the
// materialization is skipped and the approval still lands.
func (r *RegistrationRepository) Finalize(ctx context.Context, params AdvanceStageParams, society *models.Society) error {
	query, err := advanceStageQuery("society_registrations", params.StagePrefix, true)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin finalize tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, query, params.ApprovedAt, params.Comment, params.To, params.ID, params.From)
	if err != nil {
		return fmt.Errorf("finalize registration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check finalize rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	const existsQuery = `SELECT EXISTS (SELECT 1 FROM societies WHERE LOWER(society_name) = LOWER($1))`
	var exists bool
	if err := tx.GetContext(ctx, &exists, existsQuery, society.SocietyName); err != nil {
		return fmt.Errorf("check society exists: %w", err)
	}
	if !exists {
		prepareSociety(society)
		if _, err := tx.NamedExecContext(ctx, insertSocietyQuery, society); err != nil {
			return fmt.Errorf("create society from registration: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}
	return nil
}

// Reject marks a registration rejected while it still sits at params.From.
func (r *RegistrationRepository) Reject(ctx context.Context, id string, from models.Stage, reason string) error {
	result, err := r.db.ExecContext(ctx, rejectQuery("society_registrations"), models.StageRejected, reason, id, from)
	if err != nil {
		return fmt.Errorf("reject registration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check reject rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
