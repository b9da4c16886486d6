package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panicking handler into a logged 500 response
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Enrich(c.Request.Context(), base).Error("Panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
					dto.ErrCodeInternal,
					"An unexpected error occurred",
					GetRequestID(c),
					nil,
				))
			}
		}()
		c.Next()
	}
}
