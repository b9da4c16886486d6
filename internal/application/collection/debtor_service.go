// Package collection holds the use cases for collectors and debtor contracts.
package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/application/ledger"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtorService originates, lists and renews debtor contracts.
type DebtorService struct {
	txScope    ledger.TransactionScope
	collectors collection.CollectorRepository
	debtors    collection.DebtorRepository
	contracts  collection.ContractRepository
	locker     shared.KeyedLocker
	publisher  shared.EventPublisher
	clock      shared.Clock
	logger     *zap.Logger
}

// NewDebtorService creates a new DebtorService
func NewDebtorService(
	txScope ledger.TransactionScope,
	collectors collection.CollectorRepository,
	debtors collection.DebtorRepository,
	contracts collection.ContractRepository,
	locker shared.KeyedLocker,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *zap.Logger,
) *DebtorService {
	if locker == nil {
		locker = shared.NoopLocker{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &DebtorService{
		txScope:    txScope,
		collectors: collectors,
		debtors:    debtors,
		contracts:  contracts,
		locker:     locker,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// TermsInput carries contract money terms
type TermsInput struct {
	Amount           decimal.Decimal
	TotalToPay       decimal.Decimal
	FirstPayment     decimal.Decimal
	SuggestedPayment decimal.Decimal
	Cadence          string
}

func (t TermsInput) toDomain() collection.ContractTerms {
	return collection.ContractTerms{
		Amount:           t.Amount,
		TotalToPay:       t.TotalToPay,
		FirstPayment:     t.FirstPayment,
		SuggestedPayment: t.SuggestedPayment,
		Cadence:          collection.Cadence(t.Cadence),
	}
}

// CreateDebtorInput is the input of Create
type CreateDebtorInput struct {
	ContractNumber string
	Name           string
	Phone          string
	Address        string
	CollectorID    uuid.UUID
	Terms          TermsInput
	Guarantor      collection.Guarantor
	// CreatedAt backdates the contract; zero means now
	CreatedAt time.Time
}

// Create originates a new contract.
func (s *DebtorService) Create(ctx context.Context, in CreateDebtorInput) (*collection.Debtor, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debtor", "create")
	defer span.End()

	if _, err := s.collectors.FindByID(ctx, in.CollectorID); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if createdAt.After(now) {
		return nil, shared.NewInvalidDateError("created_at %s is in the future", createdAt.Format(time.RFC3339))
	}

	d, err := collection.NewDebtor(collection.NewDebtorInput{
		ContractNumber: in.ContractNumber,
		Name:           in.Name,
		Phone:          in.Phone,
		Address:        in.Address,
		CollectorID:    in.CollectorID,
		Terms:          in.Terms.toDomain(),
		Guarantor:      in.Guarantor,
		CreatedAt:      createdAt,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.debtors.ExistsByContractNumber(ctx, d.ContractNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithDetail("contract_number", d.ContractNumber)
	}

	// new credits count toward the collector's open day
	unlock, err := s.locker.Lock(ctx, ledger.CollectorLockKey(d.CollectorID))
	if err != nil {
		return nil, fmt.Errorf("lock collector: %w", err)
	}
	defer unlock()

	if err := s.debtors.Save(ctx, d); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publish(ctx, d)

	telemetry.SetAttribute(span, telemetry.SpanAttrDebtorID, d.ID.String())
	s.logger.Info("Debtor originated",
		zap.String("debtor_id", d.ID.String()),
		zap.String("contract_number", d.ContractNumber),
		zap.String("balance", d.Balance.StringFixed(2)),
	)
	return d, nil
}

// Get returns a debtor by ID
func (s *DebtorService) Get(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	return s.debtors.FindByID(ctx, id)
}

// List returns a page of debtors
func (s *DebtorService) List(ctx context.Context, filter collection.DebtorFilter) (shared.Paginated[collection.Debtor], error) {
	items, total, err := s.debtors.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[collection.Debtor]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Renew archives the paid-off contract and applies new terms to the debtor.
func (s *DebtorService) Renew(ctx context.Context, debtorID uuid.UUID, terms TermsInput) (*collection.Debtor, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debtor", "renew")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDebtorID, debtorID.String())

	current, err := s.debtors.FindByID(ctx, debtorID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.locker.Lock(ctx, ledger.CollectorLockKey(current.CollectorID))
	if err != nil {
		return nil, fmt.Errorf("lock collector: %w", err)
	}
	defer unlock()

	now := s.clock.Now().UTC()
	var renewed *collection.Debtor
	err = s.txScope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		d, err := repos.DebtorRepo().FindByIDForUpdate(ctx, debtorID)
		if err != nil {
			return err
		}
		archived, err := d.Renew(terms.toDomain(), now)
		if err != nil {
			return err
		}
		if err := repos.ContractRepo().Save(ctx, archived); err != nil {
			return err
		}
		if err := repos.DebtorRepo().Save(ctx, d); err != nil {
			return err
		}
		renewed = d
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publish(ctx, renewed)
	s.logger.Info("Contract renewed",
		zap.String("debtor_id", renewed.ID.String()),
		zap.Int("renewals", renewed.Renewals),
	)
	return renewed, nil
}

// ListContracts returns the archived contracts of a debtor
func (s *DebtorService) ListContracts(ctx context.Context, debtorID uuid.UUID) ([]collection.Contract, error) {
	if _, err := s.debtors.FindByID(ctx, debtorID); err != nil {
		return nil, err
	}
	return s.contracts.FindByDebtor(ctx, debtorID)
}

func (s *DebtorService) publish(ctx context.Context, d *collection.Debtor) {
	events := d.GetDomainEvents()
	d.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish debtor events", zap.String("debtor_id", d.ID.String()), zap.Error(err))
	}
}
