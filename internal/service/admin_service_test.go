package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gihansgamage/sms-api/internal/dto"
	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type mockAdminStore struct {
	created      *models.AdminUser
	admins       []models.AdminUser
	exists       bool
	activeSet    map[string]bool
	tokensRevoke []string
}

func (m *mockAdminStore) Create(_ context.Context, admin *models.AdminUser) error {
	admin.ID = "adm-9"
	m.created = admin
	return nil
}

func (m *mockAdminStore) GetByID(context.Context, string) (*models.AdminUser, error) {
	if m.created == nil {
		return nil, sql.ErrNoRows
	}
	return m.created, nil
}

func (m *mockAdminStore) ExistsByEmail(context.Context, string) (bool, error) {
	return m.exists, nil
}

func (m *mockAdminStore) List(context.Context) ([]models.AdminUser, error) {
	return m.admins, nil
}

func (m *mockAdminStore) SetActive(_ context.Context, id string, active bool) error {
	if m.activeSet == nil {
		m.activeSet = make(map[string]bool)
	}
	m.activeSet[id] = active
	return nil
}

func (m *mockAdminStore) RevokeRefreshTokensForAdmin(_ context.Context, adminID string) error {
	m.tokensRevoke = append(m.tokensRevoke, adminID)
	return nil
}

type stubBulkMailer struct {
	recipients []string
	subject    string
}

func (s *stubBulkMailer) BulkEmail(recipients []string, subject, _ string) int {
	s.recipients = recipients
	s.subject = subject
	return len(recipients)
}

func newAdminFixture(store *mockAdminStore) (*AdminService, *stubBulkMailer, *stubActivityRecorder) {
	if store == nil {
		store = &mockAdminStore{}
	}
	mailer := &stubBulkMailer{}
	activity := &stubActivityRecorder{}
	svc := NewAdminService(store, activity, &stubActivityLister{}, mailer, nil, nil)
	return svc, mailer, activity
}

type stubActivityLister struct {
	logs  []models.ActivityLog
	total int
}

func (s *stubActivityLister) List(context.Context, models.ActivityLogFilter) ([]models.ActivityLog, int, error) {
	return s.logs, s.total, nil
}

func superAdmin() models.Actor {
	return models.Actor{ID: "root", Name: "Super Admin", Role: models.RoleSuperAdmin}
}

func TestCreateAdminHashesPassword(t *testing.T) {
	store := &mockAdminStore{}
	svc, _, activity := newAdminFixture(store)

	admin, err := svc.Create(context.Background(), dto.CreateAdminRequest{
		Name:     "Prof. Silva",
		Email:    "Dean@Sci.pdn.ac.lk",
		Password: "s3cret-pass",
		Role:     models.RoleDean,
		Faculty:  "Science",
	}, superAdmin())
	require.NoError(t, err)

	require.Equal(t, "dean@sci.pdn.ac.lk", admin.Email)
	require.True(t, admin.Active)
	require.NotEqual(t, "s3cret-pass", admin.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")))
	require.Len(t, activity.entries, 1)
	require.Equal(t, models.ActionAdminCreated, activity.entries[0].Action)
}

func TestCreateAdminDeanRequiresFaculty(t *testing.T) {
	svc, _, _ := newAdminFixture(nil)

	_, err := svc.Create(context.Background(), dto.CreateAdminRequest{
		Name:     "Prof. Silva",
		Email:    "dean@sci.pdn.ac.lk",
		Password: "s3cret-pass",
		Role:     models.RoleDean,
	}, superAdmin())
	require.Error(t, err)
	require.Contains(t, err.Error(), "faculty")
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	store := &mockAdminStore{exists: true}
	svc, _, _ := newAdminFixture(store)

	_, err := svc.Create(context.Background(), dto.CreateAdminRequest{
		Name:     "Prof. Silva",
		Email:    "dean@sci.pdn.ac.lk",
		Password: "s3cret-pass",
		Role:     models.RoleViceChancellor,
	}, superAdmin())
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestCreateAdminUnknownRole(t *testing.T) {
	svc, _, _ := newAdminFixture(nil)

	_, err := svc.Create(context.Background(), dto.CreateAdminRequest{
		Name:     "X",
		Email:    "x@pdn.ac.lk",
		Password: "s3cret-pass",
		Role:     models.AdminRole("JANITOR"),
	}, superAdmin())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown role")
}

func TestDeactivateAdminRevokesSessions(t *testing.T) {
	store := &mockAdminStore{}
	svc, _, _ := newAdminFixture(store)

	require.NoError(t, svc.SetActive(context.Background(), "adm-2", false, superAdmin()))
	require.False(t, store.activeSet["adm-2"])
	require.Equal(t, []string{"adm-2"}, store.tokensRevoke)
}

func TestActivateAdminKeepsSessions(t *testing.T) {
	store := &mockAdminStore{}
	svc, _, _ := newAdminFixture(store)

	require.NoError(t, svc.SetActive(context.Background(), "adm-2", true, superAdmin()))
	require.True(t, store.activeSet["adm-2"])
	require.Empty(t, store.tokensRevoke)
}

func TestSendBulkEmail(t *testing.T) {
	svc, mailer, activity := newAdminFixture(nil)

	sent, err := svc.SendBulkEmail(context.Background(), dto.BulkEmailRequest{
		Subject:    "Hall Closure",
		Body:       "The main hall is closed this weekend.",
		Recipients: []string{"a@pdn.ac.lk", "b@pdn.ac.lk"},
	}, superAdmin())
	require.NoError(t, err)

	require.Equal(t, 2, sent)
	require.Equal(t, "Hall Closure", mailer.subject)
	require.Len(t, activity.entries, 1)
	require.Equal(t, models.ActionBulkEmailSent, activity.entries[0].Action)
}
