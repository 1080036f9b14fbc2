package service

import (
	"context"
	"strings"

	"agribot/internal/metrics"
	"agribot/internal/model"
	"agribot/internal/repository"

	"go.uber.org/zap"
)

const (
	SystemPrompt = "You are AgriBot, an expert agriculture assistant. " +
		"Reply in simple, clear, farmer-friendly language."

	ReplyLoginRequired = "Please login first."
	ReplyEmptyMessage  = "Please type a message."
	ReplyUnavailable   = "AI is temporarily unavailable. Please try again later."

	historyLimit = 50
)

// Completer sends one prompt to the remote language model
type Completer interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

// ChatService answers chat messages and keeps the chat history
type ChatService interface {
	Ask(ctx context.Context, userID int, message string) string
	History(ctx context.Context, userID int) ([]model.ChatMessage, error)
}

type chatService struct {
	completer Completer
	repo      repository.ChatRepository
	logger    *zap.Logger
}

// NewChatService creates a new ChatService
func NewChatService(completer Completer, repo repository.ChatRepository, logger *zap.Logger) ChatService {
	return &chatService{completer: completer, repo: repo, logger: logger}
}

// Ask never fails: remote or storage errors yield ReplyUnavailable. Only
// successful exchanges are recorded, and they are recorded before the reply
// is returned.
func (s *chatService) Ask(ctx context.Context, userID int, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return ReplyEmptyMessage
	}

	reply, err := s.completer.Complete(ctx, SystemPrompt, message)
	if err != nil {
		s.logger.Error("assistant request failed", zap.Int("user_id", userID), zap.Error(err))
		metrics.AssistantRequests.WithLabelValues("remote_error").Inc()
		return ReplyUnavailable
	}

	if err := s.repo.Create(ctx, &model.ChatMessage{UserID: userID, Message: message, Response: reply}); err != nil {
		s.logger.Error("failed to record chat exchange", zap.Int("user_id", userID), zap.Error(err))
		metrics.AssistantRequests.WithLabelValues("store_error").Inc()
		return ReplyUnavailable
	}

	metrics.AssistantRequests.WithLabelValues("success").Inc()
	return reply
}

func (s *chatService) History(ctx context.Context, userID int) ([]model.ChatMessage, error) {
	return s.repo.ListByUser(ctx, userID, historyLimit)
}
