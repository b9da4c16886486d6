package middleware

import (
	"net/http"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader lets clients retry a write without repeating it
	IdempotencyKeyHeader = "Idempotency-Key"
	maxIdempotencyKeyLen = 200
	idempotencyKeyPrefix = "http:"
)

// IdempotencyKey rejects a request whose Idempotency-Key was already seen
// within ttl with 409 DUPLICATE_REQUEST. Requests without the header pass
// through. If the store fails the request is let through.
func IdempotencyKey(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c), nil))
			return
		}

		scoped := idempotencyKeyPrefix + c.Request.Method + " " + c.FullPath() + ":" + key
		fresh, err := store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			logger.L(c.Request.Context()).Warn("Idempotency store unavailable, processing request", zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
				map[string]any{"idempotency_key": key},
			))
			return
		}
		c.Next()
	}
}
