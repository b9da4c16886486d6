package reconciliation

import (
	"context"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CutRepository defines the interface for daily cut persistence
type CutRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cut, error)

	// FindLatest returns the collector's daily cut with the latest window end,
	// or shared.ErrNotFound when the collector was never cut
	FindLatest(ctx context.Context, collectorID uuid.UUID) (*Cut, error)

	// FindOverlapping returns the collector's daily cuts intersecting window
	FindOverlapping(ctx context.Context, collectorID uuid.UUID, window Window) ([]Cut, error)

	// FindContainedIn returns the collector's daily cuts lying inside window
	FindContainedIn(ctx context.Context, collectorID uuid.UUID, window Window) ([]Cut, error)

	// FindByCollector lists cuts newest first with the total count
	FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]Cut, int64, error)

	Save(ctx context.Context, cut *Cut) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WeeklyCutRepository defines the interface for weekly cut persistence
type WeeklyCutRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WeeklyCut, error)
	FindOverlapping(ctx context.Context, collectorID uuid.UUID, window Window) ([]WeeklyCut, error)
	FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]WeeklyCut, int64, error)
	Save(ctx context.Context, cut *WeeklyCut) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PreCutRepository defines the interface for pre-cut persistence
type PreCutRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PreCut, error)

	// FindLatest returns the most recently created pre-cut of the collector
	FindLatest(ctx context.Context, collectorID uuid.UUID) (*PreCut, error)

	FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]PreCut, int64, error)

	// DeleteWithin removes the collector's pre-cuts whose window lies inside window
	DeleteWithin(ctx context.Context, collectorID uuid.UUID, window Window) (int64, error)

	Save(ctx context.Context, preCut *PreCut) error
	Delete(ctx context.Context, id uuid.UUID) error
}
