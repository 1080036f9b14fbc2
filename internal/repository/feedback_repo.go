package repository

import (
	"context"
	"fmt"

	"agribot/internal/model"
)

// FeedbackRepository defines operations for feedback data
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	ListWithUsernames(ctx context.Context) ([]model.FeedbackEntry, error)
	CountByType(ctx context.Context) ([]model.FeedbackStat, error)
}

type feedbackRepository struct {
	db DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create appends a feedback row and fills in its id and creation time
func (r *feedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	sql := `INSERT INTO feedback (user_id, feedback_type, rating, comments)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, f.UserID, f.FeedbackType, f.Rating, f.Comments).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// ListWithUsernames returns all feedback joined with the author's username, newest first
func (r *feedbackRepository) ListWithUsernames(ctx context.Context) ([]model.FeedbackEntry, error) {
	sql := `SELECT feedback.id, users.username, feedback.feedback_type,
                   feedback.rating, feedback.comments, feedback.created_at
            FROM feedback
            JOIN users ON feedback.user_id = users.id
            ORDER BY feedback.id DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var entries []model.FeedbackEntry
	for rows.Next() {
		var e model.FeedbackEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.FeedbackType, &e.Rating, &e.Comments, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}
	return entries, nil
}

// CountByType returns the number of submissions per feedback type
func (r *feedbackRepository) CountByType(ctx context.Context) ([]model.FeedbackStat, error) {
	sql := `SELECT feedback_type, COUNT(*) FROM feedback GROUP BY feedback_type ORDER BY feedback_type`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback stats: %w", err)
	}
	defer rows.Close()

	stats := []model.FeedbackStat{}
	for rows.Next() {
		var s model.FeedbackStat
		if err := rows.Scan(&s.FeedbackType, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan feedback stat row: %w", err)
		}
		stats = append(stats, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback stat rows: %w", err)
	}
	return stats, nil
}
