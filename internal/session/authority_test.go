package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"agribot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenSigner struct{}

func (brokenSigner) GenerateToken(*Session) (string, error) { return "", errors.New("sign failed") }
func (brokenSigner) ValidateToken(string) (*Claims, error)  { return nil, errors.New("invalid") }

// undeletableStore saves sessions but refuses to delete them.
type undeletableStore struct {
	saved []string
}

func (s *undeletableStore) Save(_ context.Context, sess *Session, _ time.Duration) error {
	s.saved = append(s.saved, sess.ID)
	return nil
}
func (s *undeletableStore) Load(context.Context, string) (*Session, error) { return nil, ErrNoSession }
func (s *undeletableStore) Delete(context.Context, string) error {
	return errors.New("redis down")
}

func TestAuthority_Issue_SigningFailureLogsCleanupError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := &undeletableStore{}
	authority := NewAuthority(store, "secret", time.Hour, zap.New(core))
	authority.signer = brokenSigner{}

	token, s, err := authority.Issue(context.Background(), Principal{ID: 3, Role: model.RoleUser, Username: "alice"})

	require.Error(t, err)
	assert.Empty(t, token)
	assert.Nil(t, s)
	require.Len(t, store.saved, 1)

	entries := logs.FilterMessage("failed to remove unsigned session").All()
	require.Len(t, entries, 1)
	assert.Equal(t, store.saved[0], entries[0].ContextMap()["session_id"])
}
