package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/pkg/config"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type mockAuthRepo struct {
	admin            *models.AdminUser
	refreshTokens    map[string]*models.RefreshToken
	lastLoginUpdated bool
	revoked          []string
}

func (m *mockAuthRepo) GetByEmail(context.Context, string) (*models.AdminUser, error) {
	if m.admin == nil {
		return nil, sql.ErrNoRows
	}
	return m.admin, nil
}

func (m *mockAuthRepo) GetByID(context.Context, string) (*models.AdminUser, error) {
	if m.admin == nil {
		return nil, sql.ErrNoRows
	}
	return m.admin, nil
}

func (m *mockAuthRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	if m.refreshTokens == nil {
		m.refreshTokens = make(map[string]*models.RefreshToken)
	}
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) GetRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return stored, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(_ context.Context, token string) error {
	m.revoked = append(m.revoked, token)
	if stored, ok := m.refreshTokens[token]; ok {
		stored.Revoked = true
	}
	return nil
}

func (m *mockAuthRepo) RevokeRefreshTokensForAdmin(context.Context, string) error {
	return nil
}

func activeAdmin(t *testing.T) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           "adm-1",
		Email:        "dean@sci.pdn.ac.lk",
		PasswordHash: string(hash),
		Name:         "Prof. Silva",
		Role:         models.RoleDean,
		Faculty:      "Science",
		Active:       true,
	}
}

func newAuthFixture(repo *mockAuthRepo) (*AuthService, *stubActivityRecorder) {
	activity := &stubActivityRecorder{}
	cfg := config.JWTConfig{
		Secret:            "test-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
	}
	return NewAuthService(repo, activity, nil, nil, cfg), activity
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := &mockAuthRepo{admin: activeAdmin(t)}
	svc, activity := newAuthFixture(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dean@sci.pdn.ac.lk",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, int64(3600), resp.ExpiresIn)
	require.Equal(t, "adm-1", resp.Admin.ID)
	require.Equal(t, models.RoleDean, resp.Admin.Role)
	require.True(t, repo.lastLoginUpdated)
	require.Contains(t, repo.refreshTokens, resp.RefreshToken)
	require.Len(t, activity.entries, 1)
	require.Equal(t, models.ActionAdminLogin, activity.entries[0].Action)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "adm-1", claims.AdminID)
	require.Equal(t, "Science", claims.Faculty)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockAuthRepo{admin: activeAdmin(t)}
	svc, _ := newAuthFixture(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dean@sci.pdn.ac.lk",
		Password: "wrong",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(&mockAuthRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@pdn.ac.lk",
		Password: "whatever",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	admin := activeAdmin(t)
	admin.Active = false
	svc, _ := newAuthFixture(&mockAuthRepo{admin: admin})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dean@sci.pdn.ac.lk",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := &mockAuthRepo{
		admin: activeAdmin(t),
		refreshTokens: map[string]*models.RefreshToken{
			"old-token": {
				AdminID:   "adm-1",
				Token:     "old-token",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
	}
	svc, _ := newAuthFixture(repo)

	resp, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "old-token"})
	require.NoError(t, err)

	require.NotEmpty(t, resp.AccessToken)
	require.NotEqual(t, "old-token", resp.RefreshToken)
	require.Contains(t, repo.revoked, "old-token")
	require.Contains(t, repo.refreshTokens, resp.RefreshToken)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	repo := &mockAuthRepo{
		admin: activeAdmin(t),
		refreshTokens: map[string]*models.RefreshToken{
			"stale": {
				AdminID:   "adm-1",
				Token:     "stale",
				ExpiresAt: time.Now().Add(-time.Minute),
			},
		},
	}
	svc, _ := newAuthFixture(repo)

	_, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	repo := &mockAuthRepo{
		admin: activeAdmin(t),
		refreshTokens: map[string]*models.RefreshToken{
			"revoked": {
				AdminID:   "adm-1",
				Token:     "revoked",
				ExpiresAt: time.Now().Add(time.Hour),
				Revoked:   true,
			},
		},
	}
	svc, _ := newAuthFixture(repo)

	_, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "revoked"})
	require.Error(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := &mockAuthRepo{
		admin: activeAdmin(t),
		refreshTokens: map[string]*models.RefreshToken{
			"tok": {AdminID: "adm-1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
		},
	}
	svc, _ := newAuthFixture(repo)

	require.NoError(t, svc.Logout(context.Background(), "tok", "adm-1"))
	require.Contains(t, repo.revoked, "tok")
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	repo := &mockAuthRepo{
		refreshTokens: map[string]*models.RefreshToken{
			"tok": {AdminID: "adm-2", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
		},
	}
	svc, _ := newAuthFixture(repo)

	err := svc.Logout(context.Background(), "tok", "adm-1")
	require.Error(t, err)
	require.Empty(t, repo.revoked)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(&mockAuthRepo{})

	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := &mockAuthRepo{admin: activeAdmin(t)}
	svc, _ := newAuthFixture(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dean@sci.pdn.ac.lk",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, nil, config.JWTConfig{
		Secret:     "different-secret",
		Expiration: time.Hour,
	})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}
