// Package server assembles the gin engine: middleware chain, templates and routes.
package server

import (
	"fmt"

	"agribot/internal/config"
	"agribot/internal/handler"
	"agribot/internal/middleware"
	"agribot/internal/service"
	"agribot/internal/session"
	"agribot/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services are the application services the handlers call into.
type Services struct {
	Auth     service.AuthService
	Accounts service.AccountService
	Profiles service.ProfileService
	Feedback service.FeedbackService
	Chat     service.ChatService
}

// Options carries the infrastructure the router is wired with.
type Options struct {
	Config    *config.Config
	Authority *session.Authority
	Counter   middleware.Counter
	Checks    map[string]handler.Pinger
	Logger    *zap.Logger
}

// CookieSettings derives the session cookie settings from cfg
func CookieSettings(cfg *config.Config) web.CookieSettings {
	return web.CookieSettings{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Server.CookieSecure,
		TTL:    cfg.Session.TTL,
	}
}

// NewRouter builds the HTTP handler serving every route of the application
func NewRouter(opts Options, svc Services) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	cookie := CookieSettings(opts.Config)
	logger := opts.Logger

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(
		gin.Recovery(),
		middleware.Metrics(),
		middleware.RequestLogger(logger),
		middleware.SessionMiddleware(opts.Authority, cookie, logger),
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, cookie, logger)
	adminHandler := handler.NewAdminHandler(svc.Accounts, svc.Feedback, logger)
	userHandler := handler.NewUserHandler(svc.Profiles, svc.Feedback, svc.Chat, logger)
	chatHandler := handler.NewChatHandler(svc.Chat)
	pageHandler := handler.NewPageHandler(opts.Checks, logger)

	// --- Routes ---
	loginLimiter := middleware.LoginRateLimiter(opts.Counter, opts.Config.RateLimit.LoginAttempts, opts.Config.RateLimit.LoginWindow, logger)
	pageHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router, loginLimiter)
	adminHandler.RegisterRoutes(router, middleware.RequireAdmin())
	userHandler.RegisterRoutes(router, middleware.RequireUser())
	chatHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router, nil
}
