package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is a dependency the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}

// PageHandler serves the public pages and the health check
type PageHandler struct {
	checks map[string]Pinger
	logger *zap.Logger
}

// NewPageHandler creates a new PageHandler. checks maps a dependency name to its probe.
func NewPageHandler(checks map[string]Pinger, logger *zap.Logger) *PageHandler {
	return &PageHandler{checks: checks, logger: logger}
}

// Health pings every dependency and reports each one
func (h *PageHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "error"
			body[name] = "unhealthy"
			continue
		}
		body[name] = "healthy"
	}
	c.JSON(status, body)
}

// RegisterRoutes registers the public pages
func (h *PageHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", page("index", ""))
	r.GET("/contact_us", page("contact_us", "Contact us"))
	r.GET("/about_us", page("about_us", "About us"))
	r.GET("/healthz", h.Health)
}
