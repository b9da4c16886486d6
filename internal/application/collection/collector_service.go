package collection

import (
	"context"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectorService manages collector records.
type CollectorService struct {
	collectors collection.CollectorRepository
	logger     *zap.Logger
}

// NewCollectorService creates a new CollectorService
func NewCollectorService(collectors collection.CollectorRepository, logger *zap.Logger) *CollectorService {
	return &CollectorService{collectors: collectors, logger: logger}
}

// CreateCollectorInput is the input of Create
type CreateCollectorInput struct {
	Name        string
	PhoneNumber string
}

// Create registers a collector; phone numbers are unique.
func (s *CollectorService) Create(ctx context.Context, in CreateCollectorInput) (*collection.Collector, error) {
	c, err := collection.NewCollector(in.Name, in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	exists, err := s.collectors.ExistsByPhone(ctx, c.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithDetail("phone_number", c.PhoneNumber)
	}
	if err := s.collectors.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Collector created", zap.String("collector_id", c.ID.String()))
	return c, nil
}

// Get returns a collector by ID
func (s *CollectorService) Get(ctx context.Context, id uuid.UUID) (*collection.Collector, error) {
	return s.collectors.FindByID(ctx, id)
}

// List returns a page of collectors
func (s *CollectorService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[collection.Collector], error) {
	items, total, err := s.collectors.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[collection.Collector]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
