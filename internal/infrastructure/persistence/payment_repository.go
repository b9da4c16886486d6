package persistence

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment", id)
	}
	return model.ToDomain(), nil
}

// FindByCollectorBetween finds the collector's payments with payment_date in [start, end)
func (r *GormPaymentRepository) FindByCollectorBetween(ctx context.Context, collectorID uuid.UUID, start, end time.Time) ([]collection.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ? AND payment_date >= ? AND payment_date < ?", collectorID, start.UTC(), end.UTC()).
		Order("payment_date").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(rows), nil
}

// FindByDebtor lists a debtor's payments, newest first by default
func (r *GormPaymentRepository) FindByDebtor(ctx context.Context, debtorID uuid.UUID, filter shared.Filter) ([]collection.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("debtor_id = ?", debtorID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PaymentModel
	if err := paginate(query, filter, PaymentSortFields, "payment_date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return paymentsToDomain(rows), total, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *collection.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error
}

// Delete removes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("payment", id)
	}
	return nil
}

func paymentsToDomain(rows []models.PaymentModel) []collection.Payment {
	payments := make([]collection.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments
}

var _ collection.PaymentRepository = (*GormPaymentRepository)(nil)
