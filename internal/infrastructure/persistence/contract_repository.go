package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContractRepository stores archived contracts using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByDebtor returns a debtor's archived contracts, oldest first
func (r *GormContractRepository) FindByDebtor(ctx context.Context, debtorID uuid.UUID) ([]collection.Contract, error) {
	var rows []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("debtor_id = ?", debtorID).
		Order("ended_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	contracts := make([]collection.Contract, len(rows))
	for i := range rows {
		contracts[i] = *rows[i].ToDomain()
	}
	return contracts, nil
}

// Save inserts an archived contract. Archives are never updated.
func (r *GormContractRepository) Save(ctx context.Context, contract *collection.Contract) error {
	return r.db.WithContext(ctx).Create(models.ContractModelFromDomain(contract)).Error
}

var _ collection.ContractRepository = (*GormContractRepository)(nil)
