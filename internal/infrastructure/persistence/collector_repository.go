package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCollectorRepository implements CollectorRepository using GORM
type GormCollectorRepository struct {
	db *gorm.DB
}

// NewGormCollectorRepository creates a new GormCollectorRepository
func NewGormCollectorRepository(db *gorm.DB) *GormCollectorRepository {
	return &GormCollectorRepository{db: db}
}

// FindByID finds a collector by its ID
func (r *GormCollectorRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collector, error) {
	var model models.CollectorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "collector", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists collectors and returns the total count
func (r *GormCollectorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]collection.Collector, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CollectorModel{})

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CollectorModel
	if err := paginate(query, filter, CollectorSortFields, "name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	collectors := make([]collection.Collector, len(rows))
	for i := range rows {
		collectors[i] = *rows[i].ToDomain()
	}
	return collectors, total, nil
}

// FindAllIDs returns the ID of every collector
func (r *GormCollectorRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.CollectorModel{}).
		Order("created_at").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsByPhone checks whether a phone number is already registered
func (r *GormCollectorRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CollectorModel{}).
		Where("phone_number = ?", phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a collector
func (r *GormCollectorRepository) Save(ctx context.Context, collector *collection.Collector) error {
	err := r.db.WithContext(ctx).Save(models.CollectorModelFromDomain(collector)).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists.WithDetail("phone_number", collector.PhoneNumber)
	}
	return err
}

var _ collection.CollectorRepository = (*GormCollectorRepository)(nil)
