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

const societyColumns = `id, society_name, year, faculty, status, aims, agm_date, website, bank_account, bank_name,
       president_name, president_reg_no, president_email, president_mobile,
       vice_president_name, vice_president_reg_no, vice_president_email, vice_president_mobile,
       secretary_name, secretary_reg_no, secretary_email, secretary_mobile,
       joint_secretary_name, joint_secretary_reg_no, joint_secretary_email, joint_secretary_mobile,
       treasurer_name, treasurer_reg_no, treasurer_email, treasurer_mobile,
       editor_name, editor_reg_no, editor_email, editor_mobile,
       senior_treasurer_name, senior_treasurer_email,
       registered_date, created_at, updated_at`

const insertSocietyQuery = `INSERT INTO societies
	(id, society_name, year, faculty, status, aims, agm_date, website, bank_account, bank_name,
	 president_name, president_reg_no, president_email, president_mobile,
	 vice_president_name, vice_president_reg_no, vice_president_email, vice_president_mobile,
	 secretary_name, secretary_reg_no, secretary_email, secretary_mobile,
	 joint_secretary_name, joint_secretary_reg_no, joint_secretary_email, joint_secretary_mobile,
	 treasurer_name, treasurer_reg_no, treasurer_email, treasurer_mobile,
	 editor_name, editor_reg_no, editor_email, editor_mobile,
	 senior_treasurer_name, senior_treasurer_email,
	 registered_date, created_at, updated_at)
	VALUES (:id, :society_name, :year, :faculty, :status, :aims, :agm_date, :website, :bank_account, :bank_name,
	 :president_name, :president_reg_no, :president_email, :president_mobile,
	 :vice_president_name, :vice_president_reg_no, :vice_president_email, :vice_president_mobile,
	 :secretary_name, :secretary_reg_no, :secretary_email, :secretary_mobile,
	 :joint_secretary_name, :joint_secretary_reg_no, :joint_secretary_email, :joint_secretary_mobile,
	 :treasurer_name, :treasurer_reg_no, :treasurer_email, :treasurer_mobile,
	 :editor_name, :editor_reg_no, :editor_email, :editor_mobile,
	 :senior_treasurer_name, :senior_treasurer_email,
	 :registered_date, :created_at, :updated_at)`

// SocietyRepository persists the canonical society registry.
type SocietyRepository struct {
	db *sqlx.DB
}

// NewSocietyRepository constructs the repository.
func NewSocietyRepository(db *sqlx.DB) *SocietyRepository {
	return &SocietyRepository{db: db}
}

// Create inserts a new society row.
func (r *SocietyRepository) Create(ctx context.Context, society *models.Society) error {
	prepareSociety(society)
	if _, err := r.db.NamedExecContext(ctx, insertSocietyQuery, society); err != nil {
		return fmt.Errorf("create society: %w", err)
	}
	return nil
}

func prepareSociety(society *models.Society) {
	if society.ID == "" {
		society.ID = uuid.NewString()
	}
	if society.Status == "" {
		society.Status = models.SocietyActive
	}
	now := time.Now().UTC()
	if society.CreatedAt.IsZero() {
		society.CreatedAt = now
	}
	society.UpdatedAt = now
}

// GetByID fetches a society by identifier.
func (r *SocietyRepository) GetByID(ctx context.Context, id string) (*models.Society, error) {
	query := `SELECT ` + societyColumns + ` FROM societies WHERE id = $1`
	var society models.Society
	if err := r.db.GetContext(ctx, &society, query, id); err != nil {
		return nil, err
	}
	return &society, nil
}

// FindLatestByName returns the most recent record for a society name.
func (r *SocietyRepository) FindLatestByName(ctx context.Context, name string) (*models.Society, error) {
	query := `SELECT ` + societyColumns + ` FROM societies WHERE LOWER(society_name) = LOWER($1) ORDER BY year DESC LIMIT 1`
	var society models.Society
	if err := r.db.GetContext(ctx, &society, query, name); err != nil {
		return nil, err
	}
	return &society, nil
}

// ExistsByName reports whether any record exists for the society name.
func (r *SocietyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM societies WHERE LOWER(society_name) = LOWER($1))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("check society exists: %w", err)
	}
	return exists, nil
}

// List returns societies matching the filter plus the unpaged total.
func (r *SocietyRepository) List(ctx context.Context, filter models.SocietyFilter) ([]models.Society, int, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("society_name ILIKE $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM societies"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count societies: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	query := `SELECT ` + societyColumns + ` FROM societies` + where +
		fmt.Sprintf(" ORDER BY society_name ASC, year DESC LIMIT %d OFFSET %d", size, (page-1)*size)

	var societies []models.Society
	if err := r.db.SelectContext(ctx, &societies, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list societies: %w", err)
	}
	return societies, total, nil
}

// Statistics aggregates registry counts for the dashboard.
func (r *SocietyRepository) Statistics(ctx context.Context, year int) (*models.SocietyStatistics, error) {
	const query = `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'ACTIVE') AS active,
		COUNT(*) FILTER (WHERE year = $1) AS current_year
	FROM societies`
	var row struct {
		Total       int `db:"total"`
		Active      int `db:"active"`
		CurrentYear int `db:"current_year"`
	}
	if err := r.db.GetContext(ctx, &row, query, year); err != nil {
		return nil, fmt.Errorf("society statistics: %w", err)
	}
	return &models.SocietyStatistics{
		TotalSocieties:           row.Total,
		ActiveSocieties:          row.Active,
		CurrentYearRegistrations: row.CurrentYear,
	}, nil
}

// SetStatus updates the lifecycle status of a society.
func (r *SocietyRepository) SetStatus(ctx context.Context, id string, status models.SocietyStatus) error {
	const query = `UPDATE societies SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set society status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check society status rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
