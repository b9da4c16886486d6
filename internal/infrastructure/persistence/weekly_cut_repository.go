package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWeeklyCutRepository implements WeeklyCutRepository using GORM
type GormWeeklyCutRepository struct {
	db *gorm.DB
}

// NewGormWeeklyCutRepository creates a new GormWeeklyCutRepository
func NewGormWeeklyCutRepository(db *gorm.DB) *GormWeeklyCutRepository {
	return &GormWeeklyCutRepository{db: db}
}

// FindByID finds a weekly cut by its ID
func (r *GormWeeklyCutRepository) FindByID(ctx context.Context, id uuid.UUID) (*reconciliation.WeeklyCut, error) {
	var model models.WeeklyCutModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "weekly cut", id)
	}
	return model.ToDomain(), nil
}

// FindOverlapping returns the collector's weekly cuts intersecting window
func (r *GormWeeklyCutRepository) FindOverlapping(ctx context.Context, collectorID uuid.UUID, window reconciliation.Window) ([]reconciliation.WeeklyCut, error) {
	var rows []models.WeeklyCutModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ? AND window_start < ? AND window_end > ?", collectorID, window.End.UTC(), window.Start.UTC()).
		Order("window_start").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return weeklyCutsToDomain(rows), nil
}

// FindByCollector lists the collector's weekly cuts, newest first by default
func (r *GormWeeklyCutRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]reconciliation.WeeklyCut, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WeeklyCutModel{}).
		Where("collector_id = ?", collectorID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.WeeklyCutModel
	if err := paginate(query, filter, WeeklyCutSortFields, "start_date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return weeklyCutsToDomain(rows), total, nil
}

// Save inserts a weekly cut
func (r *GormWeeklyCutRepository) Save(ctx context.Context, cut *reconciliation.WeeklyCut) error {
	err := r.db.WithContext(ctx).Create(models.WeeklyCutModelFromDomain(cut)).Error
	if isUniqueViolation(err) {
		return shared.ErrOverlappingRange.
			WithDetail("start_date", cut.StartDate.String()).
			WithDetail("end_date", cut.EndDate.String())
	}
	return err
}

// Delete removes a weekly cut
func (r *GormWeeklyCutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.WeeklyCutModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("weekly cut", id)
	}
	return nil
}

func weeklyCutsToDomain(rows []models.WeeklyCutModel) []reconciliation.WeeklyCut {
	cuts := make([]reconciliation.WeeklyCut, len(rows))
	for i := range rows {
		cuts[i] = *rows[i].ToDomain()
	}
	return cuts
}

var _ reconciliation.WeeklyCutRepository = (*GormWeeklyCutRepository)(nil)
