package handler

import (
	"context"

	appcollection "github.com/cobranza/backend/internal/application/collection"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CollectorService manages the collector registry
type CollectorService interface {
	Create(ctx context.Context, in appcollection.CreateCollectorInput) (*collection.Collector, error)
	Get(ctx context.Context, id uuid.UUID) (*collection.Collector, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[collection.Collector], error)
}

// CreateCollectorRequest registers a collector
// @Description Request body for creating a collector
type CreateCollectorRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100" example:"Juan Pérez"`
	PhoneNumber string `json:"phone_number" binding:"required,max=20" example:"+525512345678"`
}

// CollectorResponse represents a collector
// @Description Collector
type CollectorResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" example:"Juan Pérez"`
	PhoneNumber string    `json:"phone_number" example:"+525512345678"`
}

func toCollectorResponse(c *collection.Collector) CollectorResponse {
	return CollectorResponse{ID: c.ID, Name: c.Name, PhoneNumber: c.PhoneNumber}
}

// CollectorHandler serves the collector registry
type CollectorHandler struct {
	BaseHandler
	collectors CollectorService
}

// NewCollectorHandler creates a new CollectorHandler
func NewCollectorHandler(collectors CollectorService) *CollectorHandler {
	return &CollectorHandler{collectors: collectors}
}

// Create godoc
// @ID           createCollector
// @Summary      Create a collector
// @Tags         collectors
// @Accept       json
// @Produce      json
// @Param        request body CreateCollectorRequest true "Collector"
// @Success      201 {object} APIResponse[CollectorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /collectors [post]
func (h *CollectorHandler) Create(c *gin.Context) {
	var req CreateCollectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collector, err := h.collectors.Create(c.Request.Context(), appcollection.CreateCollectorInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCollectorResponse(collector))
}

// Get godoc
// @ID           getCollector
// @Summary      Get a collector
// @Tags         collectors
// @Produce      json
// @Param        id path string true "Collector ID" format(uuid)
// @Success      200 {object} APIResponse[CollectorResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /collectors/{id} [get]
func (h *CollectorHandler) Get(c *gin.Context) {
	id, ok := h.collectorParam(c, "id")
	if !ok {
		return
	}
	collector, err := h.collectors.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCollectorResponse(collector))
}

// List godoc
// @ID           listCollectors
// @Summary      List collectors
// @Tags         collectors
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]CollectorResponse]
// @Security     BearerAuth
// @Router       /collectors [get]
func (h *CollectorHandler) List(c *gin.Context) {
	page, err := h.collectors.List(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]CollectorResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toCollectorResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}
