package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agribot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.AssistantConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
		Timeout: 2 * time.Second,
	})
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":` + content + `},"finish_reason":"stop"}]}`))
}

func TestClient_Complete(t *testing.T) {
	var got capturedRequest
	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(w, `"Sow wheat in autumn."`)
	})

	reply, err := client.Complete(context.Background(), "system prompt", "when to sow wheat?")

	require.NoError(t, err)
	assert.Equal(t, "Sow wheat in autumn.", reply)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system prompt", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "when to sow wheat?", got.Messages[1].Content)
}

func TestClient_Complete_ServerError(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := client.Complete(context.Background(), "system prompt", "hello")

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Complete_EmptyReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, `"   "`)
	})

	_, err := client.Complete(context.Background(), "system prompt", "hello")

	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	client := NewClient(config.AssistantConfig{APIKey: "k", BaseURL: srv.URL, Model: "m", Timeout: 50 * time.Millisecond})

	_, err := client.Complete(context.Background(), "system prompt", "hello")

	assert.Error(t, err)
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	client := NewClient(config.AssistantConfig{Model: "gpt-4o-mini", Timeout: time.Second})

	_, err := client.Complete(context.Background(), "system prompt", "hello")

	assert.ErrorIs(t, err, ErrNotConfigured)
}
