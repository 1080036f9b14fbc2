package service

import (
	"context"
	"fmt"
	"strings"

	"agribot/internal/model"
	"agribot/internal/repository"
)

// FeedbackService records user feedback and serves the admin views of it
type FeedbackService interface {
	Submit(ctx context.Context, userID int, req model.SubmitFeedbackRequest) (*model.Feedback, error)
	List(ctx context.Context) ([]model.FeedbackEntry, error)
	Stats(ctx context.Context) ([]model.FeedbackStat, error)
}

type feedbackService struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(repo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo}
}

// Submit records feedback authored by userID, which always comes from the session
func (s *feedbackService) Submit(ctx context.Context, userID int, req model.SubmitFeedbackRequest) (*model.Feedback, error) {
	feedback := &model.Feedback{
		UserID:       userID,
		FeedbackType: strings.TrimSpace(req.FeedbackType),
		Rating:       req.Rating,
		Comments:     strings.TrimSpace(req.Comments),
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context) ([]model.FeedbackEntry, error) {
	return s.repo.ListWithUsernames(ctx)
}

func (s *feedbackService) Stats(ctx context.Context) ([]model.FeedbackStat, error) {
	return s.repo.CountByType(ctx)
}
