package middleware

import (
	"context"

	"github.com/cobranza/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling tags CPU samples taken while serving a request with its route
// pattern and method so Pyroscope can slice profiles per endpoint
func Profiling(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := skip[route]; ok || route == "" {
			c.Next()
			return
		}
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
