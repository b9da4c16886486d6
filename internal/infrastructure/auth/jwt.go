// Package auth verifies bearer tokens issued by the external auth service.
package auth

import (
	"errors"
	"time"

	"github.com/cobranza/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingSubject   = errors.New("missing subject in claims")
)

// Role values carried by tokens
const (
	RoleCollector = "collector"
	RoleAdmin     = "admin"
)

// Claims are the claims the auth service puts in access tokens
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	// CollectorID is set for collector accounts
	CollectorID string `json:"collector_id,omitempty"`
}

// CollectorUUID parses CollectorID
func (c *Claims) CollectorUUID() (uuid.UUID, bool) {
	id, err := uuid.Parse(c.CollectorID)
	return id, err == nil
}

// IsAdmin reports whether the token belongs to an administrator
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Verifier validates HS256 tokens against a shared secret
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a verifier. Issuer and audience are checked only when configured.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &Verifier{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}
}

// ValidateAccessToken validates a token and returns its claims
func (v *Verifier) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := v.parser.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrInvalidClaims
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
