package ledger

import (
	"context"

	"github.com/cobranza/backend/internal/domain/collection"
)

// TransactionScope runs ledger mutations atomically.
// If the function returns an error, the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories that share one transaction.
// DebtorRepo().FindByIDForUpdate holds the debtor row until commit.
type TransactionalRepositories interface {
	DebtorRepo() collection.DebtorRepository
	PaymentRepo() collection.PaymentRepository
	ContractRepo() collection.ContractRepository
}
