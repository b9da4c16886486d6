package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPreCutRepository implements PreCutRepository using GORM
type GormPreCutRepository struct {
	db *gorm.DB
}

// NewGormPreCutRepository creates a new GormPreCutRepository
func NewGormPreCutRepository(db *gorm.DB) *GormPreCutRepository {
	return &GormPreCutRepository{db: db}
}

// FindByID finds a pre-cut by its ID
func (r *GormPreCutRepository) FindByID(ctx context.Context, id uuid.UUID) (*reconciliation.PreCut, error) {
	var model models.PreCutModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "pre-cut", id)
	}
	return model.ToDomain(), nil
}

// FindLatest returns the most recently created pre-cut of the collector
func (r *GormPreCutRepository) FindLatest(ctx context.Context, collectorID uuid.UUID) (*reconciliation.PreCut, error) {
	var model models.PreCutModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ?", collectorID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err, "pre-cut", collectorID)
	}
	return model.ToDomain(), nil
}

// FindByCollector lists the collector's pre-cuts, newest first by default
func (r *GormPreCutRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]reconciliation.PreCut, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PreCutModel{}).
		Where("collector_id = ?", collectorID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PreCutModel
	if err := paginate(query, filter, CutSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	preCuts := make([]reconciliation.PreCut, len(rows))
	for i := range rows {
		preCuts[i] = *rows[i].ToDomain()
	}
	return preCuts, total, nil
}

// DeleteWithin removes the collector's pre-cuts whose window lies inside window
func (r *GormPreCutRepository) DeleteWithin(ctx context.Context, collectorID uuid.UUID, window reconciliation.Window) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("collector_id = ? AND window_start >= ? AND window_end <= ?", collectorID, window.Start.UTC(), window.End.UTC()).
		Delete(&models.PreCutModel{})
	return result.RowsAffected, result.Error
}

// Save inserts a pre-cut
func (r *GormPreCutRepository) Save(ctx context.Context, preCut *reconciliation.PreCut) error {
	return r.db.WithContext(ctx).Create(models.PreCutModelFromDomain(preCut)).Error
}

// Delete removes a pre-cut
func (r *GormPreCutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PreCutModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("pre-cut", id)
	}
	return nil
}

var _ reconciliation.PreCutRepository = (*GormPreCutRepository)(nil)
