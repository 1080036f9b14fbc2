package model

import "time"

// ChatMessage is one persisted exchange with the assistant.
type ChatMessage struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the body accepted by the chat API.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by the chat API.
type ChatResponse struct {
	Response string `json:"response"`
}
