package middleware

import (
	"context"
	"net/http"
	"time"

	"agribot/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	rateLimitNamespace = "ratelimit"

	MsgTooManyAttempts = "Too many login attempts. Please try again later."
)

// Counter counts hits inside a rolling window; *cache.Cache satisfies it.
type Counter interface {
	IncrWithExpire(ctx context.Context, namespace, key string, window time.Duration) (int64, error)
}

// LoginRateLimiter caps form submissions per route and client IP. GET requests
// pass through. When Redis is unavailable requests are let through.
func LoginRateLimiter(counter Counter, limit int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || limit <= 0 {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		count, err := counter.IncrWithExpire(c.Request.Context(), rateLimitNamespace, key, window)
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > limit {
			logger.Info("login rate limit exceeded", zap.String("route", c.FullPath()), zap.String("ip", c.ClientIP()))
			web.Redirect(c, c.Request.URL.Path, web.FlashDanger, MsgTooManyAttempts)
			c.Abort()
			return
		}
		c.Next()
	}
}
