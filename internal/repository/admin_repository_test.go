package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/gihansgamage/sms-api/internal/models"
)

func newAdminRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAdminRepositoryGetByEmail(t *testing.T) {
	db, mock, cleanup := newAdminRepoMock(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "faculty", "active", "last_login", "created_at", "updated_at"}).
		AddRow("adm-1", "dean.sci@pdn.ac.lk", "$2a$10$hash", "Dean of Science", "DEAN", "Science", true, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE LOWER(email)")).
		WithArgs("dean.sci@pdn.ac.lk").
		WillReturnRows(rows)

	admin, err := repo.GetByEmail(context.Background(), "dean.sci@pdn.ac.lk")
	require.NoError(t, err)
	require.Equal(t, models.RoleDean, admin.Role)
	require.Equal(t, "Science", admin.Faculty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryFindActiveByRoleAndFaculty(t *testing.T) {
	db, mock, cleanup := newAdminRepoMock(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "faculty", "active"}).
		AddRow("adm-1", "dean.eng@pdn.ac.lk", "Dean of Engineering", "DEAN", "Engineering", true)
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users")).
		WithArgs(models.RoleDean, "Engineering").
		WillReturnRows(rows)

	admins, err := repo.FindActiveByRoleAndFaculty(context.Background(), models.RoleDean, "Engineering")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "dean.eng@pdn.ac.lk", admins[0].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryRefreshTokenRoundTrip(t *testing.T) {
	db, mock, cleanup := newAdminRepoMock(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	token := &models.RefreshToken{
		AdminID:   "adm-1",
		Token:     "refresh-token-value",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.CreateRefreshToken(context.Background(), token))
	require.NotEmpty(t, token.ID)

	rows := sqlmock.NewRows([]string{"id", "admin_id", "token", "expires_at", "created_at", "revoked", "revoked_at"}).
		AddRow(token.ID, "adm-1", "refresh-token-value", token.ExpiresAt, time.Now(), false, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token")).
		WithArgs("refresh-token-value").
		WillReturnRows(rows)

	stored, err := repo.GetRefreshToken(context.Background(), "refresh-token-value")
	require.NoError(t, err)
	require.Equal(t, "adm-1", stored.AdminID)
	require.False(t, stored.Revoked)
	require.NoError(t, mock.ExpectationsWereMet())
}
