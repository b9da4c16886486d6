package persistence

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDebtorRepository implements DebtorRepository using GORM
type GormDebtorRepository struct {
	db *gorm.DB
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{db: db}
}

// FindByID finds a debtor by its ID
func (r *GormDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	var model models.DebtorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "debtor", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads a debtor with SELECT ... FOR UPDATE. It only locks
// when called on a transaction-scoped repository.
func (r *GormDebtorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	var model models.DebtorModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "debtor", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists debtors matching the filter and returns the total count
func (r *GormDebtorRepository) FindAll(ctx context.Context, filter collection.DebtorFilter) ([]collection.Debtor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DebtorModel{})
	if filter.CollectorID != nil {
		query = query.Where("collector_id = ?", *filter.CollectorID)
	}
	if filter.ActiveOnly {
		query = query.Where("balance > 0")
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.DebtorModel
	if err := paginate(query, filter.Filter, DebtorSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return debtorsToDomain(rows), total, nil
}

// FindCreatedBetween finds the collector's debtors created in [start, end)
func (r *GormDebtorRepository) FindCreatedBetween(ctx context.Context, collectorID uuid.UUID, start, end time.Time) ([]collection.Debtor, error) {
	var rows []models.DebtorModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ? AND created_at >= ? AND created_at < ?", collectorID, start.UTC(), end.UTC()).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return debtorsToDomain(rows), nil
}

// CountActive counts the collector's debtors with a positive balance
func (r *GormDebtorRepository) CountActive(ctx context.Context, collectorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DebtorModel{}).
		Where("collector_id = ? AND balance > 0", collectorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByContractNumber checks whether a contract number is taken
func (r *GormDebtorRepository) ExistsByContractNumber(ctx context.Context, contractNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DebtorModel{}).
		Where("contract_number = ?", contractNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a debtor
func (r *GormDebtorRepository) Save(ctx context.Context, debtor *collection.Debtor) error {
	err := r.db.WithContext(ctx).Save(models.DebtorModelFromDomain(debtor)).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists.WithDetail("contract_number", debtor.ContractNumber)
	}
	return err
}

func debtorsToDomain(rows []models.DebtorModel) []collection.Debtor {
	debtors := make([]collection.Debtor, len(rows))
	for i := range rows {
		debtors[i] = *rows[i].ToDomain()
	}
	return debtors
}

var _ collection.DebtorRepository = (*GormDebtorRepository)(nil)
