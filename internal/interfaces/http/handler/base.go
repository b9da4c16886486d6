// Package handler holds the gin handlers of the cobranza API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/cobranza/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxPageSize = 100

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c), nil))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access to this collector is not allowed")
}

// BindError answers a request whose body or query failed to bind. Field
// validation failures list the offending fields.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	if fields := middleware.ValidationDetails(err); fields != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", middleware.GetRequestID(c), fields))
		return
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Malformed request: "+err.Error())
}

// HandleError renders domain errors with their mapped status and details.
// Anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(
			domainErr.Code, domainErr.Message, middleware.GetRequestID(c), domainErr.Details))
		return
	}

	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// uuidParam parses a path parameter, answering 400 when it is not a UUID
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrCodeValidation, "Invalid "+name, middleware.GetRequestID(c),
			map[string]any{"field": name}))
		return uuid.Nil, false
	}
	return id, true
}

// collectorParam parses the collector path parameter and checks the caller
// may act on it
func (h *BaseHandler) collectorParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := h.uuidParam(c, name)
	if !ok {
		return uuid.Nil, false
	}
	if !canAccess(c, id) {
		h.Forbidden(c)
		return uuid.Nil, false
	}
	return id, true
}

func canAccess(c *gin.Context, collectorID uuid.UUID) bool {
	return middleware.CanAccessCollector(c, collectorID)
}

// requireAdmin answers 403 unless the caller is an administrator
func (h *BaseHandler) requireAdmin(c *gin.Context) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "Administrator role required")
	return false
}

// pageFilter reads page and page_size query parameters
func pageFilter(c *gin.Context) shared.Filter {
	f := shared.DefaultFilter()
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		f.Page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil && ps > 0 {
		f.PageSize = min(ps, maxPageSize)
	}
	return f
}
