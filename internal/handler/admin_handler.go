package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"agribot/internal/model"
	"agribot/internal/service"
	"agribot/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin console
type AdminHandler struct {
	accounts service.AccountService
	feedback service.FeedbackService
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(accounts service.AccountService, feedback service.FeedbackService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{accounts: accounts, feedback: feedback, logger: logger}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.accounts.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard", zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, "admin_dashboard", gin.H{"Title": "Admin dashboard", "Stats": stats})
}

func (h *AdminHandler) AllUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, "admin_all_users", gin.H{"Title": "All users", "Users": users})
}

func (h *AdminHandler) PendingUsers(c *gin.Context) {
	users, err := h.accounts.ListPending(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list pending users", zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, "admin_pending_users", gin.H{"Title": "Pending users", "Users": users})
}

func (h *AdminHandler) UserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		web.Redirect(c, "/admin_all_users", web.FlashDanger, MsgUserNotFound)
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			web.Redirect(c, "/admin_all_users", web.FlashDanger, MsgUserNotFound)
			return
		}
		h.logger.Error("failed to load user", zap.Int("user_id", userID), zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, "admin_user_profile", gin.H{"Title": "User profile", "User": user})
}

func (h *AdminHandler) ApproveUser(c *gin.Context) {
	h.changeStatus(c, h.accounts.Approve, MsgUserApproved)
}

func (h *AdminHandler) RestrictUser(c *gin.Context) {
	h.changeStatus(c, h.accounts.Restrict, MsgUserRestricted)
}

func (h *AdminHandler) changeStatus(c *gin.Context, apply func(ctx context.Context, userID int) (*model.User, error), success string) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		web.Redirect(c, "/admin_dashboard", web.FlashDanger, MsgUserNotFound)
		return
	}

	if _, err := apply(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			web.Redirect(c, "/admin_dashboard", web.FlashDanger, MsgUserNotFound)
		case errors.Is(err, service.ErrAdminImmutable):
			web.Redirect(c, "/admin_dashboard", web.FlashDanger, MsgAdminImmutable)
		case errors.Is(err, service.ErrInvalidTransition):
			web.Redirect(c, "/admin_dashboard", web.FlashDanger, MsgInvalidTransition)
		default:
			h.logger.Error("status change failed", zap.Int("user_id", userID), zap.Error(err))
			web.Redirect(c, "/admin_dashboard", web.FlashDanger, MsgSomethingWentWrong)
		}
		return
	}
	web.Redirect(c, "/admin_dashboard", web.FlashSuccess, success)
}

func (h *AdminHandler) Feedback(c *gin.Context) {
	entries, err := h.feedback.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list feedback", zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, "admin_feedback", gin.H{"Title": "Feedback", "Feedback": entries})
}

func (h *AdminHandler) FeedbackGraph(c *gin.Context) {
	web.Render(c, http.StatusOK, "admin_feedback_graph", gin.H{"Title": "Feedback by type"})
}

// FeedbackStats returns the per-type feedback counts as JSON
func (h *AdminHandler) FeedbackStats(c *gin.Context) {
	stats, err := h.feedback.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to count feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers the admin console behind guard
func (h *AdminHandler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	admin := r.Group("/", guard)
	{
		admin.GET("/admin_dashboard", h.Dashboard)
		admin.GET("/admin_all_users", h.AllUsers)
		admin.GET("/admin_pending_users", h.PendingUsers)
		admin.GET("/admin_user_profile/:id", h.UserProfile)
		admin.GET("/approve_user/:id", h.ApproveUser)
		admin.GET("/restrict_user/:id", h.RestrictUser)
		admin.GET("/admin_feedback", h.Feedback)
		admin.GET("/admin_feedback_graph", h.FeedbackGraph)
		admin.GET("/feedback_stats", h.FeedbackStats)
	}
}
