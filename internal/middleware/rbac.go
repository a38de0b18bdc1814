package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/gihansgamage/sms-api/internal/models"
	appErrors "github.com/gihansgamage/sms-api/pkg/errors"
	"github.com/gihansgamage/sms-api/pkg/response"
)

// RequireRoles enforces role-based access control for routes. The request
// must already have passed the JWT middleware.
func RequireRoles(roles ...models.AdminRole) gin.HandlerFunc {
	allowed := make(map[models.AdminRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ApproverRoles lists every role that can sit on an approval chain.
func ApproverRoles() []models.AdminRole {
	return []models.AdminRole{
		models.RoleDean,
		models.RolePremisesOfficer,
		models.RoleAssistantRegistrar,
		models.RoleViceChancellor,
		models.RoleStudentService,
		models.RoleSuperAdmin,
	}
}
