package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCutRepository implements CutRepository using GORM
type GormCutRepository struct {
	db *gorm.DB
}

// NewGormCutRepository creates a new GormCutRepository
func NewGormCutRepository(db *gorm.DB) *GormCutRepository {
	return &GormCutRepository{db: db}
}

// FindByID finds a daily cut by its ID
func (r *GormCutRepository) FindByID(ctx context.Context, id uuid.UUID) (*reconciliation.Cut, error) {
	var model models.CutModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "cut", id)
	}
	return model.ToDomain(), nil
}

// FindLatest returns the collector's cut with the latest window end
func (r *GormCutRepository) FindLatest(ctx context.Context, collectorID uuid.UUID) (*reconciliation.Cut, error) {
	var model models.CutModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ?", collectorID).
		Order("window_end DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err, "cut", collectorID)
	}
	return model.ToDomain(), nil
}

// FindOverlapping returns the collector's cuts sharing at least one instant with window
func (r *GormCutRepository) FindOverlapping(ctx context.Context, collectorID uuid.UUID, window reconciliation.Window) ([]reconciliation.Cut, error) {
	var rows []models.CutModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ? AND window_start < ? AND window_end > ?", collectorID, window.End.UTC(), window.Start.UTC()).
		Order("window_start").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return cutsToDomain(rows), nil
}

// FindContainedIn returns the collector's cuts lying entirely inside window
func (r *GormCutRepository) FindContainedIn(ctx context.Context, collectorID uuid.UUID, window reconciliation.Window) ([]reconciliation.Cut, error) {
	var rows []models.CutModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ? AND window_start >= ? AND window_end <= ?", collectorID, window.Start.UTC(), window.End.UTC()).
		Order("window_start").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return cutsToDomain(rows), nil
}

// FindByCollector lists the collector's cuts, newest first by default
func (r *GormCutRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]reconciliation.Cut, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CutModel{}).
		Where("collector_id = ?", collectorID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CutModel
	if err := paginate(query, filter, CutSortFields, "window_start").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return cutsToDomain(rows), total, nil
}

// Save inserts a cut. A second cut for the same collector window violates
// idx_cuts_collector_window and is reported as a duplicate cut.
func (r *GormCutRepository) Save(ctx context.Context, cut *reconciliation.Cut) error {
	err := r.db.WithContext(ctx).Create(models.CutModelFromDomain(cut)).Error
	if isUniqueViolation(err) {
		return shared.ErrDuplicateCut.
			WithDetail("date", cut.Date.String()).
			WithDetail("constraint", constraintName(err))
	}
	return err
}

// Delete removes a cut
func (r *GormCutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CutModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("cut", id)
	}
	return nil
}

func cutsToDomain(rows []models.CutModel) []reconciliation.Cut {
	cuts := make([]reconciliation.Cut, len(rows))
	for i := range rows {
		cuts[i] = *rows[i].ToDomain()
	}
	return cuts
}

var _ reconciliation.CutRepository = (*GormCutRepository)(nil)
