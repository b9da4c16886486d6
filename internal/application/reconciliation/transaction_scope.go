package reconciliation

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
)

// TransactionScope runs cut finalization atomically: the cut insert and the
// pre-cut cleanup commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories that share one transaction.
type TransactionalRepositories interface {
	DebtorRepo() collection.DebtorRepository
	PaymentRepo() collection.PaymentRepository
	CutRepo() reconciliation.CutRepository
	WeeklyCutRepo() reconciliation.WeeklyCutRepository
	PreCutRepo() reconciliation.PreCutRepository
}

// FolioGenerator issues the printed folio numbers of cuts.
type FolioGenerator interface {
	NextFolio() int64
}

// CutMetrics observes cut attempts. *telemetry.CollectionMetrics implements it.
type CutMetrics interface {
	RecordCutRejected(ctx context.Context, kind reconciliation.Kind)
	RecordCutDuration(ctx context.Context, kind reconciliation.Kind, d time.Duration, err error)
}
