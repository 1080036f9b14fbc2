package session

import (
	"fmt"
	"strconv"
	"time"

	"agribot/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed content of the session cookie.
type Claims struct {
	PrincipalID int        `json:"pid"`
	Role        model.Role `json:"role"`
	Username    string     `json:"username"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies session cookies with HS256
type TokenSigner struct {
	secretKey string
	ttl       time.Duration
}

// NewTokenSigner creates a new TokenSigner
func NewTokenSigner(secretKey string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secretKey: secretKey, ttl: ttl}
}

// GenerateToken signs a token naming the given session
func (ts *TokenSigner) GenerateToken(s *Session) (string, error) {
	claims := &Claims{
		PrincipalID: s.PrincipalID,
		Role:        s.Role,
		Username:    s.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			ExpiresAt: jwt.NewNumericDate(s.CreatedAt.Add(ts.ttl)),
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			Subject:   strconv.Itoa(s.PrincipalID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates the token signature, method and expiry
func (ts *TokenSigner) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
