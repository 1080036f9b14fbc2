// Package session issues, validates and destroys login sessions. A session
// record lives server-side in a Store; the client only holds a signed token
// naming it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agribot/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Session is the server-held claim of who is logged in.
type Session struct {
	ID          string     `json:"id"`
	PrincipalID int        `json:"principal_id"`
	Role        model.Role `json:"role"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Principal is the authenticated identity a session is minted for.
type Principal struct {
	ID       int
	Role     model.Role
	Username string
}

// Store persists session records.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	// Load returns ErrNoSession when the record is absent or expired.
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// signer is satisfied by *TokenSigner.
type signer interface {
	GenerateToken(s *Session) (string, error)
	ValidateToken(token string) (*Claims, error)
}

// Authority mints and checks sessions.
type Authority struct {
	store  Store
	signer signer
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewAuthority(store Store, secret string, ttl time.Duration, logger *zap.Logger) *Authority {
	return &Authority{
		store:  store,
		signer: NewTokenSigner(secret, ttl),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// TTL is the lifetime of issued sessions.
func (a *Authority) TTL() time.Duration {
	return a.ttl
}

// Issue stores a new session for p and returns the signed token naming it.
func (a *Authority) Issue(ctx context.Context, p Principal) (string, *Session, error) {
	s := &Session{
		ID:          uuid.NewString(),
		PrincipalID: p.ID,
		Role:        p.Role,
		Username:    p.Username,
		CreatedAt:   a.now().UTC().Truncate(time.Second),
	}

	if err := a.store.Save(ctx, s, a.ttl); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := a.signer.GenerateToken(s)
	if err != nil {
		if delErr := a.store.Delete(ctx, s.ID); delErr != nil {
			a.logger.Warn("failed to remove unsigned session", zap.String("session_id", s.ID), zap.Error(delErr))
		}
		return "", nil, err
	}
	return token, s, nil
}

// Validate resolves a token into its live session.
func (a *Authority) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	claims, err := a.signer.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	s, err := a.store.Load(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	if s.PrincipalID != claims.PrincipalID || s.Role != claims.Role {
		return nil, ErrInvalidToken
	}
	return s, nil
}

// Destroy removes the session record; tokens naming it stop validating.
func (a *Authority) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ContextKey is the gin context key holding the request's *Session.
const ContextKey = "session"
