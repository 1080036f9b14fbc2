package handler

import (
	"errors"
	"net/http"

	"agribot/internal/middleware"
	"agribot/internal/model"
	"agribot/internal/service"
	"agribot/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	service service.AuthService
	cookie  web.CookieSettings
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, cookie web.CookieSettings, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, cookie: cookie, logger: logger}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "login", gin.H{"Title": "Login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Redirect(c, middleware.UserLoginPath, web.FlashDanger, MsgInvalidLogin)
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotApproved):
			web.Redirect(c, middleware.UserLoginPath, web.FlashDanger, MsgNotApproved)
		case errors.Is(err, service.ErrInvalidCredentials):
			web.Redirect(c, middleware.UserLoginPath, web.FlashDanger, MsgInvalidLogin)
		default:
			h.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
			web.Redirect(c, middleware.UserLoginPath, web.FlashDanger, MsgSomethingWentWrong)
		}
		return
	}

	h.replaceSession(c, token)
	c.Redirect(http.StatusFound, "/user_dashboard")
}

func (h *AuthHandler) AdminLoginPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "admin_login", gin.H{"Title": "Admin login"})
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Redirect(c, middleware.AdminLoginPath, web.FlashDanger, MsgInvalidAdminLogin)
		return
	}

	_, token, err := h.service.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrNotApproved) {
			web.Redirect(c, middleware.AdminLoginPath, web.FlashDanger, MsgInvalidAdminLogin)
			return
		}
		h.logger.Error("admin login failed", zap.String("username", req.Username), zap.Error(err))
		web.Redirect(c, middleware.AdminLoginPath, web.FlashDanger, MsgSomethingWentWrong)
		return
	}

	h.replaceSession(c, token)
	c.Redirect(http.StatusFound, "/admin_dashboard")
}

// replaceSession drops whatever session the browser held before handing out the new one.
func (h *AuthHandler) replaceSession(c *gin.Context, token string) {
	if err := h.service.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		h.logger.Warn("failed to destroy previous session", zap.Error(err))
	}
	h.cookie.Set(c, token)
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "register", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Redirect(c, "/register", web.FlashDanger, MsgRegisterInvalid)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrDuplicateKey) {
			web.Redirect(c, "/register", web.FlashDanger, MsgDuplicateAccount)
			return
		}
		if errors.Is(err, service.ErrMissingFields) {
			web.Redirect(c, "/register", web.FlashDanger, MsgRegisterInvalid)
			return
		}
		h.logger.Error("registration failed", zap.String("username", req.Username), zap.Error(err))
		web.Redirect(c, "/register", web.FlashDanger, MsgSomethingWentWrong)
		return
	}

	web.Redirect(c, middleware.UserLoginPath, web.FlashSuccess, MsgRegistered)
}

// Logout destroys the whole session, whichever portal opened it
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, middleware.UserLoginPath)
}

// RegisterRoutes registers auth routes. limiter guards the login form submissions.
func (h *AuthHandler) RegisterRoutes(r gin.IRouter, limiter gin.HandlerFunc) {
	r.GET("/login", h.LoginPage)
	r.POST("/login", limiter, h.Login)
	r.GET("/admin_login", h.AdminLoginPage)
	r.POST("/admin_login", limiter, h.AdminLogin)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)
}
