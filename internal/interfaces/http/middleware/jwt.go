package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cobranza/backend/internal/infrastructure/auth"
	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Verifier         TokenVerifier
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig returns the default configuration; health and docs are public
func DefaultJWTConfig(verifier TokenVerifier, log *zap.Logger) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Verifier:         verifier,
		SkipPaths:        []string{"/health", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
		Logger:           log,
	}
}

// JWTAuth rejects requests without a valid bearer token
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) || strings.TrimPrefix(header, BearerPrefix) == "" {
			abortUnauthorized(c, cfg.Logger, auth.ErrInvalidToken, "Missing bearer token")
			return
		}

		claims, err := cfg.Verifier.ValidateAccessToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			abortUnauthorized(c, cfg.Logger, err, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		ctx := logger.WithUserID(c.Request.Context(), claims.Subject)
		if claims.CollectorID != "" {
			ctx = logger.WithCollectorID(ctx, claims.CollectorID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error, message string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code := dto.ErrCodeUnauthorized
	text := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, text = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid), errors.Is(err, auth.ErrMissingSubject):
		code, text = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, text, GetRequestID(c), nil))
}

// GetJWTClaims returns the verified claims, or nil when auth is disabled
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// CanAccessCollector reports whether the caller may act on collectorID.
// Collector tokens are limited to their own collector; admin tokens and
// unauthenticated deployments are not.
func CanAccessCollector(c *gin.Context, collectorID uuid.UUID) bool {
	claims := GetJWTClaims(c)
	if claims == nil || claims.IsAdmin() {
		return true
	}
	own, ok := claims.CollectorUUID()
	if !ok {
		return claims.Role != auth.RoleCollector
	}
	return own == collectorID
}

// IsAdmin reports whether the caller holds the admin role. Unauthenticated
// deployments act as admin.
func IsAdmin(c *gin.Context) bool {
	claims := GetJWTClaims(c)
	return claims == nil || claims.IsAdmin()
}
