package middleware

import (
	"net/http"

	"agribot/internal/model"
	"agribot/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	UserLoginPath  = "/login"
	AdminLoginPath = "/admin_login"
)

// Authorized reports whether s may access a route reserved for role.
func Authorized(s *session.Session, role model.Role) bool {
	return s != nil && s.PrincipalID > 0 && s.Role == role
}

// RequireRole redirects callers without a session of the given role to loginPath
func RequireRole(role model.Role, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Authorized(CurrentSession(c), role) {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin guards the admin console
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(model.RoleAdmin, AdminLoginPath)
}

// RequireUser guards the user pages
func RequireUser() gin.HandlerFunc {
	return RequireRole(model.RoleUser, UserLoginPath)
}
