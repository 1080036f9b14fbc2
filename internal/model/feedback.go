package model

import "time"

// Feedback is a single immutable feedback submission.
type Feedback struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	FeedbackType string    `json:"feedback_type"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackEntry is a feedback row joined with the author's username, as shown to admins.
type FeedbackEntry struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FeedbackType string    `json:"feedback_type"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackStat is the number of submissions of one feedback type.
type FeedbackStat struct {
	FeedbackType string `json:"feedback_type"`
	Count        int64  `json:"count"`
}

// SubmitFeedbackRequest is the feedback form. The author always comes from the session.
type SubmitFeedbackRequest struct {
	FeedbackType string `form:"feedback_type" binding:"required"`
	Rating       int    `form:"rating" binding:"required,min=1,max=5"`
	Comments     string `form:"comments"`
}
