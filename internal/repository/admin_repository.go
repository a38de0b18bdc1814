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

const adminColumns = `id, email, password_hash, name, role, faculty, active, last_login, created_at, updated_at`

// AdminRepository persists administrative accounts and refresh tokens.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs the repository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin account.
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	const query = `INSERT INTO admin_users (id, email, password_hash, name, role, faculty, active, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :name, :role, :faculty, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// GetByID fetches an admin by identifier.
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1`
	var admin models.AdminUser
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByEmail fetches an admin by email, case-insensitively.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE LOWER(email) = LOWER($1)`
	var admin models.AdminUser
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// ExistsByEmail reports whether an account already uses the email.
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM admin_users WHERE LOWER(email) = LOWER($1))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check admin exists: %w", err)
	}
	return exists, nil
}

// FindActiveByRole returns active accounts holding a role.
func (r *AdminRepository) FindActiveByRole(ctx context.Context, role models.AdminRole) ([]models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE role = $1 AND active = TRUE ORDER BY name`
	var admins []models.AdminUser
	if err := r.db.SelectContext(ctx, &admins, query, role); err != nil {
		return nil, fmt.Errorf("find admins by role: %w", err)
	}
	return admins, nil
}

// FindActiveByRoleAndFaculty returns active role holders scoped to a faculty.
// Used for Dean routing, where only the applicant's faculty Dean is notified.
func (r *AdminRepository) FindActiveByRoleAndFaculty(ctx context.Context, role models.AdminRole, faculty string) ([]models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users
		WHERE role = $1 AND faculty = $2 AND active = TRUE ORDER BY name`
	var admins []models.AdminUser
	if err := r.db.SelectContext(ctx, &admins, query, role, faculty); err != nil {
		return nil, fmt.Errorf("find admins by role and faculty: %w", err)
	}
	return admins, nil
}

// List returns every admin account, newest first.
func (r *AdminRepository) List(ctx context.Context) ([]models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users ORDER BY created_at DESC`
	var admins []models.AdminUser
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// SetActive toggles an account's active flag.
func (r *AdminRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE admin_users SET active = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set admin active: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check admin active rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateLastLogin stamps the account's last login time.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE admin_users SET last_login = $1, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CreateRefreshToken stores a newly issued refresh token.
func (r *AdminRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO refresh_tokens (id, admin_id, token, expires_at, created_at, revoked)
		VALUES (:id, :admin_id, :token, :expires_at, :created_at, :revoked)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken looks up a stored refresh token by its value.
func (r *AdminRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const query = `SELECT id, admin_id, token, expires_at, created_at, revoked, revoked_at
		FROM refresh_tokens WHERE token = $1`
	var stored models.RefreshToken
	if err := r.db.GetContext(ctx, &stored, query, token); err != nil {
		return nil, err
	}
	return &stored, nil
}

// RevokeRefreshToken marks a single refresh token revoked.
func (r *AdminRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $1 WHERE token = $2 AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), token); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeRefreshTokensForAdmin revokes every live token for an account.
func (r *AdminRepository) RevokeRefreshTokensForAdmin(ctx context.Context, adminID string) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $1 WHERE admin_id = $2 AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), adminID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
