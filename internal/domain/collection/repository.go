package collection

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CollectorRepository defines the interface for collector persistence
type CollectorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Collector, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Collector, int64, error)
	// FindAllIDs returns every collector ID, used by the automatic daily cut
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Save(ctx context.Context, collector *Collector) error
}

// DebtorFilter defines filtering options for debtor queries
type DebtorFilter struct {
	shared.Filter
	CollectorID *uuid.UUID
	ActiveOnly  bool // only debtors with balance > 0
}

// DebtorRepository defines the interface for debtor persistence
type DebtorRepository interface {
	// FindByID finds a debtor by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Debtor, error)

	// FindByIDForUpdate finds a debtor and locks its row until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Debtor, error)

	// FindAll lists debtors with filtering and returns the total count
	FindAll(ctx context.Context, filter DebtorFilter) ([]Debtor, int64, error)

	// FindCreatedBetween finds the collector's debtors created in [start, end)
	FindCreatedBetween(ctx context.Context, collectorID uuid.UUID, start, end time.Time) ([]Debtor, error)

	// CountActive counts the collector's debtors with a positive balance
	CountActive(ctx context.Context, collectorID uuid.UUID) (int64, error)

	ExistsByContractNumber(ctx context.Context, contractNumber string) (bool, error)

	// Save creates or updates a debtor
	Save(ctx context.Context, debtor *Debtor) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByCollectorBetween finds the collector's payments with payment_date in [start, end)
	FindByCollectorBetween(ctx context.Context, collectorID uuid.UUID, start, end time.Time) ([]Payment, error)

	// FindByDebtor lists a debtor's payments, newest first
	FindByDebtor(ctx context.Context, debtorID uuid.UUID, filter shared.Filter) ([]Payment, int64, error)

	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContractRepository stores archived contracts
type ContractRepository interface {
	FindByDebtor(ctx context.Context, debtorID uuid.UUID) ([]Contract, error)
	Save(ctx context.Context, contract *Contract) error
}
