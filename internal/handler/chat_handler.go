package handler

import (
	"net/http"

	"agribot/internal/middleware"
	"agribot/internal/model"
	"agribot/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the JSON chat endpoint used by the chatbot page
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(s service.ChatService) *ChatHandler {
	return &ChatHandler{service: s}
}

// Chat answers {"message"} with {"response"}. Callers without a user session
// get a fixed refusal instead of a redirect, since the page reads the body.
func (h *ChatHandler) Chat(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if !middleware.Authorized(s, model.RoleUser) {
		c.JSON(http.StatusOK, model.ChatResponse{Response: service.ReplyLoginRequired})
		return
	}

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ChatResponse{Response: service.ReplyEmptyMessage})
		return
	}

	reply := h.service.Ask(c.Request.Context(), s.PrincipalID, req.Message)
	c.JSON(http.StatusOK, model.ChatResponse{Response: reply})
}

// RegisterRoutes registers the chat API
func (h *ChatHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/chat_api", h.Chat)
}
