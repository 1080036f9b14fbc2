package middleware

import (
	"errors"

	"agribot/internal/session"
	"agribot/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the session cookie into a *session.Session.
// It never rejects a request; guards decide what an anonymous caller may see.
func SessionMiddleware(authority *session.Authority, cookie web.CookieSettings, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		s, err := authority.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrInvalidToken) {
				cookie.Clear(c)
			} else {
				// the store is unreachable; keep the cookie for the next request
				logger.Error("session lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(session.ContextKey, s)
		c.Next()
	}
}

// CurrentSession returns the request's session, or nil for anonymous callers.
func CurrentSession(c *gin.Context) *session.Session {
	v, exists := c.Get(session.ContextKey)
	if !exists {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
