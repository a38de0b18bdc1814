package models

import "time"

// AdminRole represents the approver and administrative roles.
type AdminRole string

const (
	RoleDean               AdminRole = "DEAN"
	RolePremisesOfficer    AdminRole = "PREMISES_OFFICER"
	RoleAssistantRegistrar AdminRole = "ASSISTANT_REGISTRAR"
	RoleViceChancellor     AdminRole = "VICE_CHANCELLOR"
	RoleStudentService     AdminRole = "STUDENT_SERVICE"
	RoleSuperAdmin         AdminRole = "SUPER_ADMIN"
)

// AdminUser is an administrative account stored in the admin_users table.
// Faculty is only meaningful for Deans.
type AdminUser struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Role         AdminRole  `db:"role" json:"role"`
	Faculty      string     `db:"faculty" json:"faculty,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Actor is the resolved identity performing a workflow transition. It is
// threaded explicitly into every approval call rather than read from
// ambient request state.
type Actor struct {
	ID      string
	Name    string
	Email   string
	Role    AdminRole
	Faculty string
}

// Actor converts an admin user into a workflow actor.
func (u *AdminUser) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Faculty: u.Faculty}
}

// RefreshToken is a stored refresh token issued at login.
type RefreshToken struct {
	ID        string     `db:"id" json:"id"`
	AdminID   string     `db:"admin_id" json:"admin_id"`
	Token     string     `db:"token" json:"token"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Revoked   bool       `db:"revoked" json:"revoked"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
