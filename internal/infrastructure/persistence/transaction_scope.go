package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/application/ledger"
	appreconciliation "github.com/cobranza/backend/internal/application/reconciliation"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"gorm.io/gorm"
)

// LedgerTransactionScope implements ledger.TransactionScope using GORM transactions.
// The debtor update, the payment write and any contract archive commit together.
type LedgerTransactionScope struct {
	db *gorm.DB
}

// NewLedgerTransactionScope creates a new LedgerTransactionScope.
func NewLedgerTransactionScope(db *gorm.DB) *LedgerTransactionScope {
	return &LedgerTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *LedgerTransactionScope) Execute(ctx context.Context, fn func(repos ledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// CutTransactionScope implements the reconciliation TransactionScope using GORM
// transactions. A cut insert and the pre-cut cleanup commit together.
type CutTransactionScope struct {
	db *gorm.DB
}

// NewCutTransactionScope creates a new CutTransactionScope.
func NewCutTransactionScope(db *gorm.DB) *CutTransactionScope {
	return &CutTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *CutTransactionScope) Execute(ctx context.Context, fn func(repos appreconciliation.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// DebtorRepo returns the debtor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DebtorRepo() collection.DebtorRepository {
	return NewGormDebtorRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PaymentRepo() collection.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// ContractRepo returns the contract repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ContractRepo() collection.ContractRepository {
	return NewGormContractRepository(r.tx)
}

// CutRepo returns the daily cut repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CutRepo() reconciliation.CutRepository {
	return NewGormCutRepository(r.tx)
}

// WeeklyCutRepo returns the weekly cut repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WeeklyCutRepo() reconciliation.WeeklyCutRepository {
	return NewGormWeeklyCutRepository(r.tx)
}

// PreCutRepo returns the pre-cut repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PreCutRepo() reconciliation.PreCutRepository {
	return NewGormPreCutRepository(r.tx)
}

var (
	_ ledger.TransactionScope                     = (*LedgerTransactionScope)(nil)
	_ appreconciliation.TransactionScope          = (*CutTransactionScope)(nil)
	_ ledger.TransactionalRepositories            = (*gormTransactionalRepositories)(nil)
	_ appreconciliation.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
