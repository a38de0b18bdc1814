package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
	token  string
}

func (s *stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	s.token = token
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func runProtected(t *testing.T, validator *stubValidator, authorization string, extra ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handlers := append([]gin.HandlerFunc{JWT(validator)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/protected", handlers...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTMissingHeader(t *testing.T) {
	rec := runProtected(t, &stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	rec := runProtected(t, &stubValidator{}, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	validator := &stubValidator{err: appErrors.ErrUnauthorized}
	rec := runProtected(t, validator, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "bad-token", validator.token)
}

func TestJWTStoresClaims(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{AdminID: "admin-1", Role: models.RoleDean, Faculty: "Science"}}

	var seen *models.JWTClaims
	rec := runProtected(t, validator, "Bearer good-token", func(c *gin.Context) {
		seen = ClaimsFromContext(c)
		c.Next()
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, seen) {
		assert.Equal(t, "admin-1", seen.AdminID)
		assert.Equal(t, models.RoleDean, seen.Role)
	}
}

func TestRequireRolesAllows(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{AdminID: "admin-1", Role: models.RoleViceChancellor}}
	rec := runProtected(t, validator, "Bearer good-token", RequireRoles(models.RoleViceChancellor, models.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{AdminID: "admin-1", Role: models.RoleDean}}
	rec := runProtected(t, validator, "Bearer good-token", RequireRoles(models.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireRoles(models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
