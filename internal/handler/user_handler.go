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

// userPages are the informational pages behind the user guard, by template name.
var userPages = map[string]string{
	"user_dashboard":     "Dashboard",
	"chatbot":            "Chatbot",
	"crop":               "Crops",
	"fertilizer":         "Fertilizers",
	"prediction":         "Prediction",
	"crop_advisor":       "Crop advisor",
	"disease_detector":   "Disease detector",
	"fertilizer_advisor": "Fertilizer advisor",
}

// UserHandler serves the logged-in user's pages
type UserHandler struct {
	profiles service.ProfileService
	feedback service.FeedbackService
	chat     service.ChatService
	logger   *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profiles service.ProfileService, feedback service.FeedbackService, chat service.ChatService, logger *zap.Logger) *UserHandler {
	return &UserHandler{profiles: profiles, feedback: feedback, chat: chat, logger: logger}
}

func page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		web.Render(c, http.StatusOK, name, gin.H{"Title": title})
	}
}

func (h *UserHandler) FeedbackPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "feedback", gin.H{"Title": "Feedback"})
}

func (h *UserHandler) SubmitFeedback(c *gin.Context) {
	var req model.SubmitFeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Redirect(c, "/feedback", web.FlashDanger, MsgFeedbackInvalid)
		return
	}

	userID := middleware.CurrentSession(c).PrincipalID
	if _, err := h.feedback.Submit(c.Request.Context(), userID, req); err != nil {
		h.logger.Error("failed to submit feedback", zap.Int("user_id", userID), zap.Error(err))
		web.Redirect(c, "/feedback", web.FlashDanger, MsgSomethingWentWrong)
		return
	}
	web.Redirect(c, "/feedback", web.FlashSuccess, MsgFeedbackSubmitted)
}

// loadProfile renders the named page with the caller's account
func (h *UserHandler) loadProfile(c *gin.Context, name, title string) {
	userID := middleware.CurrentSession(c).PrincipalID
	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load profile", zap.Int("user_id", userID), zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, name, gin.H{"Title": title, "User": user})
}

func (h *UserHandler) MyProfile(c *gin.Context) {
	h.loadProfile(c, "my_profile", "My profile")
}

func (h *UserHandler) EditProfilePage(c *gin.Context) {
	h.loadProfile(c, "edit_profile", "Edit profile")
}

func (h *UserHandler) EditProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Redirect(c, "/edit_profile", web.FlashDanger, MsgProfileInvalid)
		return
	}

	userID := middleware.CurrentSession(c).PrincipalID
	if err := h.profiles.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		h.logger.Error("failed to update profile", zap.Int("user_id", userID), zap.Error(err))
		web.Redirect(c, "/edit_profile", web.FlashDanger, MsgSomethingWentWrong)
		return
	}
	web.Redirect(c, "/my_profile", web.FlashSuccess, MsgProfileUpdated)
}

func (h *UserHandler) ChangePasswordPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "change_password", gin.H{"Title": "Change password"})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Redirect(c, "/change_password", web.FlashDanger, MsgPasswordFields)
		return
	}

	userID := middleware.CurrentSession(c).PrincipalID
	err := h.profiles.ChangePassword(c.Request.Context(), userID, req)
	switch {
	case err == nil:
		web.Redirect(c, "/my_profile", web.FlashSuccess, MsgPasswordUpdated)
	case errors.Is(err, service.ErrInvalidCredentials):
		web.Redirect(c, "/change_password", web.FlashDanger, MsgCurrentPassword)
	case errors.Is(err, service.ErrPasswordMismatch):
		web.Redirect(c, "/change_password", web.FlashDanger, MsgPasswordMismatch)
	default:
		h.logger.Error("failed to change password", zap.Int("user_id", userID), zap.Error(err))
		web.Redirect(c, "/change_password", web.FlashDanger, MsgSomethingWentWrong)
	}
}

func (h *UserHandler) History(c *gin.Context) {
	userID := middleware.CurrentSession(c).PrincipalID
	messages, err := h.chat.History(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load chat history", zap.Int("user_id", userID), zap.Error(err))
		web.RenderError(c)
		return
	}
	web.Render(c, http.StatusOK, "history", gin.H{"Title": "Chat history", "Messages": messages})
}

// RegisterRoutes registers the user pages behind guard
func (h *UserHandler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	user := r.Group("/", guard)
	{
		for name, title := range userPages {
			user.GET("/"+name, page(name, title))
		}
		user.GET("/history", h.History)
		user.GET("/feedback", h.FeedbackPage)
		user.POST("/feedback", h.SubmitFeedback)
		user.GET("/my_profile", h.MyProfile)
		user.GET("/edit_profile", h.EditProfilePage)
		user.POST("/edit_profile", h.EditProfile)
		user.GET("/change_password", h.ChangePasswordPage)
		user.POST("/change_password", h.ChangePassword)
	}
}
