package repository

import (
	"context"
	"fmt"

	"agribot/internal/model"
)

// ChatRepository defines operations for the chat history
type ChatRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	ListByUser(ctx context.Context, userID int, limit int) ([]model.ChatMessage, error)
}

type chatRepository struct {
	db DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create appends one exchange to the chat history
func (r *chatRepository) Create(ctx context.Context, m *model.ChatMessage) error {
	sql := `INSERT INTO chat_history (user_id, message, response)
            VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, m.UserID, m.Message, m.Response).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record chat message: %w", err)
	}
	return nil
}

// ListByUser returns the most recent exchanges of one user, newest first
func (r *chatRepository) ListByUser(ctx context.Context, userID int, limit int) ([]model.ChatMessage, error) {
	sql := `SELECT id, user_id, message, response, created_at
            FROM chat_history WHERE user_id = $1
            ORDER BY id DESC LIMIT $2`
	rows, err := r.db.Query(ctx, sql, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Message, &m.Response, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}
	return messages, nil
}
