package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gihansgamage/sms-api/internal/models"
)

const renewalColumns = `id, applicant_full_name, applicant_reg_no, applicant_email, applicant_faculty, applicant_mobile,
       society_name, renewal_year, agm_date, website, bank_account, bank_name, difficulties,
       senior_treasurer_title, senior_treasurer_full_name, senior_treasurer_designation, senior_treasurer_department,
       senior_treasurer_email, senior_treasurer_mobile,
       president_name, president_reg_no, president_email, president_mobile,
       vice_president_name, vice_president_reg_no, vice_president_email, vice_president_mobile,
       secretary_name, secretary_reg_no, secretary_email, secretary_mobile,
       joint_secretary_name, joint_secretary_reg_no, joint_secretary_email, joint_secretary_mobile,
       treasurer_name, treasurer_reg_no, treasurer_email, treasurer_mobile,
       editor_name, editor_reg_no, editor_email, editor_mobile,
       status, submitted_date, approved_date, rejection_reason,
       is_dean_approved, is_ar_approved, is_vc_approved,
       dean_approval_date, ar_approval_date, vc_approval_date,
       dean_comment, ar_comment, vc_comment,
       created_at, updated_at`

const insertRenewalQuery = `INSERT INTO society_renewals
	(id, applicant_full_name, applicant_reg_no, applicant_email, applicant_faculty, applicant_mobile,
	 society_name, renewal_year, agm_date, website, bank_account, bank_name, difficulties,
	 senior_treasurer_title, senior_treasurer_full_name, senior_treasurer_designation, senior_treasurer_department,
	 senior_treasurer_email, senior_treasurer_mobile,
	 president_name, president_reg_no, president_email, president_mobile,
	 vice_president_name, vice_president_reg_no, vice_president_email, vice_president_mobile,
	 secretary_name, secretary_reg_no, secretary_email, secretary_mobile,
	 joint_secretary_name, joint_secretary_reg_no, joint_secretary_email, joint_secretary_mobile,
	 treasurer_name, treasurer_reg_no, treasurer_email, treasurer_mobile,
	 editor_name, editor_reg_no, editor_email, editor_mobile,
	 status, submitted_date, created_at, updated_at)
	VALUES (:id, :applicant_full_name, :applicant_reg_no, :applicant_email, :applicant_faculty, :applicant_mobile,
	 :society_name, :renewal_year, :agm_date, :website, :bank_account, :bank_name, :difficulties,
	 :senior_treasurer_title, :senior_treasurer_full_name, :senior_treasurer_designation, :senior_treasurer_department,
	 :senior_treasurer_email, :senior_treasurer_mobile,
	 :president_name, :president_reg_no, :president_email, :president_mobile,
	 :vice_president_name, :vice_president_reg_no, :vice_president_email, :vice_president_mobile,
	 :secretary_name, :secretary_reg_no, :secretary_email, :secretary_mobile,
	 :joint_secretary_name, :joint_secretary_reg_no, :joint_secretary_email, :joint_secretary_mobile,
	 :treasurer_name, :treasurer_reg_no, :treasurer_email, :treasurer_mobile,
	 :editor_name, :editor_reg_no, :editor_email, :editor_mobile,
	 :status, :submitted_date, :created_at, :updated_at)`

// RenewalRepository persists society renewal applications.
type RenewalRepository struct {
	db *sqlx.DB
}

// NewRenewalRepository constructs the repository.
func NewRenewalRepository(db *sqlx.DB) *RenewalRepository {
	return &RenewalRepository{db: db}
}

// Create inserts a renewal application.
func (r *RenewalRepository) Create(ctx context.Context, renewal *models.SocietyRenewal) error {
	if renewal.ID == "" {
		renewal.ID = uuid.NewString()
	}
	if renewal.Status == "" {
		renewal.Status = models.StagePendingDean
	}
	now := time.Now().UTC()
	if renewal.SubmittedDate.IsZero() {
		renewal.SubmittedDate = now
	}
	renewal.CreatedAt = now
	renewal.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, insertRenewalQuery, renewal); err != nil {
		return fmt.Errorf("create renewal: %w", err)
	}
	return nil
}

// GetByID fetches a renewal by identifier.
func (r *RenewalRepository) GetByID(ctx context.Context, id string) (*models.SocietyRenewal, error) {
	query := `SELECT ` + renewalColumns + ` FROM society_renewals WHERE id = $1`
	var renewal models.SocietyRenewal
	if err := r.db.GetContext(ctx, &renewal, query, id); err != nil {
		return nil, err
	}
	return &renewal, nil
}

// ListByStatus returns renewals at the given stage, oldest first.
func (r *RenewalRepository) ListByStatus(ctx context.Context, status models.Stage) ([]models.SocietyRenewal, error) {
	query := `SELECT ` + renewalColumns + ` FROM society_renewals WHERE status = $1 ORDER BY submitted_date ASC`
	var renewals []models.SocietyRenewal
	if err := r.db.SelectContext(ctx, &renewals, query, status); err != nil {
		return nil, fmt.Errorf("list renewals by status: %w", err)
	}
	return renewals, nil
}

// ListByStatusAndFaculty narrows a stage listing to one faculty.
func (r *RenewalRepository) ListByStatusAndFaculty(ctx context.Context, status models.Stage, faculty string) ([]models.SocietyRenewal, error) {
	query := `SELECT ` + renewalColumns + ` FROM society_renewals
		WHERE status = $1 AND applicant_faculty = $2 ORDER BY submitted_date ASC`
	var renewals []models.SocietyRenewal
	if err := r.db.SelectContext(ctx, &renewals, query, status, faculty); err != nil {
		return nil, fmt.Errorf("list renewals by status and faculty: %w", err)
	}
	return renewals, nil
}

// ListAll returns every renewal, newest first.
func (r *RenewalRepository) ListAll(ctx context.Context) ([]models.SocietyRenewal, error) {
	query := `SELECT ` + renewalColumns + ` FROM society_renewals ORDER BY submitted_date DESC`
	var renewals []models.SocietyRenewal
	if err := r.db.SelectContext(ctx, &renewals, query); err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}
	return renewals, nil
}

// ExistsByNameAndYear reports whether a non-rejected renewal already exists
// for the society in the given year.
func (r *RenewalRepository) ExistsByNameAndYear(ctx context.Context, name string, year int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM society_renewals
		WHERE LOWER(society_name) = LOWER($1) AND renewal_year = $2 AND status <> 'REJECTED')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, year); err != nil {
		return false, fmt.Errorf("check renewal exists: %w", err)
	}
	return exists, nil
}

// Statistics aggregates renewal counts for the dashboard.
func (r *RenewalRepository) Statistics(ctx context.Context, year int) (*models.RenewalStatistics, error) {
	const query = `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE renewal_year = $1) AS current_year,
		COUNT(*) FILTER (WHERE status = 'APPROVED') AS approved
	FROM society_renewals`
	var row struct {
		Total       int `db:"total"`
		CurrentYear int `db:"current_year"`
		Approved    int `db:"approved"`
	}
	if err := r.db.GetContext(ctx, &row, query, year); err != nil {
		return nil, fmt.Errorf("renewal statistics: %w", err)
	}
	return &models.RenewalStatistics{
		TotalRenewals:       row.Total,
		CurrentYearRenewals: row.CurrentYear,
		ApprovedRenewals:    row.Approved,
	}, nil
}

// AdvanceStage applies one non-final approval with the same conditional
// update semantics as registrations.
func (r *RenewalRepository) AdvanceStage(ctx context.Context, params AdvanceStageParams) error {
	query, err := advanceStageQuery("society_renewals", params.StagePrefix, false)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query, params.ApprovedAt, params.Comment, params.To, params.ID, params.From)
	if err != nil {
		return fmt.Errorf("advance renewal stage: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check renewal stage rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Finalize applies the final approval and updates the society record in the
// same transaction. Only fields supplied on the renewal overwrite the
// society; nil slots leave the current values in place.
func (r *RenewalRepository) Finalize(ctx context.Context, params AdvanceStageParams, renewal *models.SocietyRenewal) error {
	query, err := advanceStageQuery("society_renewals", params.StagePrefix, true)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin renewal finalize tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, query, params.ApprovedAt, params.Comment, params.To, params.ID, params.From)
	if err != nil {
		return fmt.Errorf("finalize renewal: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check renewal finalize rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	setQuery, args := renewalSocietyUpdate(renewal, params.ApprovedAt)
	societyResult, err := tx.ExecContext(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("update society from renewal: %w", err)
	}
	societyRows, err := societyResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("check society update rows: %w", err)
	}
	if societyRows == 0 {
		return fmt.Errorf("update society from renewal: society %q not found", renewal.SocietyName)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit renewal finalize tx: %w", err)
	}
	return nil
}

// renewalSocietyUpdate builds the partial society UPDATE from the renewal's
// non-nil fields. The year and status always move forward.
func renewalSocietyUpdate(renewal *models.SocietyRenewal, now time.Time) (string, []interface{}) {
	setParts := make([]string, 0, 32)
	args := make([]interface{}, 0, 32)
	add := func(column string, value interface{}) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addOpt := func(column string, value *string) {
		if value != nil {
			add(column, *value)
		}
	}

	add("year", renewal.RenewalYear)
	add("status", models.SocietyActive)
	add("updated_at", now)
	if renewal.AgmDate != nil {
		add("agm_date", *renewal.AgmDate)
	}
	addOpt("website", renewal.Website)
	addOpt("bank_account", renewal.BankAccount)
	addOpt("bank_name", renewal.BankName)
	addOpt("senior_treasurer_name", renewal.SeniorTreasurerFullName)
	addOpt("senior_treasurer_email", renewal.SeniorTreasurerEmail)

	addOpt("president_name", renewal.PresidentName)
	addOpt("president_reg_no", renewal.PresidentRegNo)
	addOpt("president_email", renewal.PresidentEmail)
	addOpt("president_mobile", renewal.PresidentMobile)

	addOpt("vice_president_name", renewal.VicePresidentName)
	addOpt("vice_president_reg_no", renewal.VicePresidentRegNo)
	addOpt("vice_president_email", renewal.VicePresidentEmail)
	addOpt("vice_president_mobile", renewal.VicePresidentMobile)

	addOpt("secretary_name", renewal.SecretaryName)
	addOpt("secretary_reg_no", renewal.SecretaryRegNo)
	addOpt("secretary_email", renewal.SecretaryEmail)
	addOpt("secretary_mobile", renewal.SecretaryMobile)

	addOpt("joint_secretary_name", renewal.JointSecretaryName)
	addOpt("joint_secretary_reg_no", renewal.JointSecretaryRegNo)
	addOpt("joint_secretary_email", renewal.JointSecretaryEmail)
	addOpt("joint_secretary_mobile", renewal.JointSecretaryMobile)

	addOpt("treasurer_name", renewal.TreasurerName)
	addOpt("treasurer_reg_no", renewal.TreasurerRegNo)
	addOpt("treasurer_email", renewal.TreasurerEmail)
	addOpt("treasurer_mobile", renewal.TreasurerMobile)

	addOpt("editor_name", renewal.EditorName)
	addOpt("editor_reg_no", renewal.EditorRegNo)
	addOpt("editor_email", renewal.EditorEmail)
	addOpt("editor_mobile", renewal.EditorMobile)

	args = append(args, renewal.SocietyName)
	query := fmt.Sprintf(`UPDATE societies SET %s WHERE LOWER(society_name) = LOWER($%d)`,
		strings.Join(setParts, ", "), len(args))
	return query, args
}

// Reject marks a renewal rejected while it still sits at the given stage.
func (r *RenewalRepository) Reject(ctx context.Context, id string, from models.Stage, reason string) error {
	result, err := r.db.ExecContext(ctx, rejectQuery("society_renewals"), models.StageRejected, reason, id, from)
	if err != nil {
		return fmt.Errorf("reject renewal: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check renewal reject rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
