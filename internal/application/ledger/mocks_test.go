package ledger

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCollectorRepository is a mock implementation of collection.CollectorRepository
type MockCollectorRepository struct {
	mock.Mock
}

func (m *MockCollectorRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collector, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collector), args.Error(1)
}

func (m *MockCollectorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]collection.Collector, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.Collector), args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectorRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCollectorRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCollectorRepository) Save(ctx context.Context, c *collection.Collector) error {
	return m.Called(ctx, c).Error(0)
}

// MockDebtorRepository is a mock implementation of collection.DebtorRepository
type MockDebtorRepository struct {
	mock.Mock
}

func (m *MockDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) FindAll(ctx context.Context, filter collection.DebtorFilter) ([]collection.Debtor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.Debtor), args.Get(1).(int64), args.Error(2)
}

func (m *MockDebtorRepository) FindCreatedBetween(ctx context.Context, collectorID uuid.UUID, start, end time.Time) ([]collection.Debtor, error) {
	args := m.Called(ctx, collectorID, start, end)
	return args.Get(0).([]collection.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) CountActive(ctx context.Context, collectorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, collectorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDebtorRepository) ExistsByContractNumber(ctx context.Context, contractNumber string) (bool, error) {
	args := m.Called(ctx, contractNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockDebtorRepository) Save(ctx context.Context, d *collection.Debtor) error {
	return m.Called(ctx, d).Error(0)
}

// MockPaymentRepository is a mock implementation of collection.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByCollectorBetween(ctx context.Context, collectorID uuid.UUID, start, end time.Time) ([]collection.Payment, error) {
	args := m.Called(ctx, collectorID, start, end)
	return args.Get(0).([]collection.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByDebtor(ctx context.Context, debtorID uuid.UUID, filter shared.Filter) ([]collection.Payment, int64, error) {
	args := m.Called(ctx, debtorID, filter)
	return args.Get(0).([]collection.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *collection.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockContractRepository is a mock implementation of collection.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByDebtor(ctx context.Context, debtorID uuid.UUID) ([]collection.Contract, error) {
	args := m.Called(ctx, debtorID)
	return args.Get(0).([]collection.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *collection.Contract) error {
	return m.Called(ctx, c).Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

// fakeTxScope runs the callback against the mocks without a database.
// A returned error counts as a rollback.
type fakeTxScope struct {
	debtors   *MockDebtorRepository
	payments  *MockPaymentRepository
	contracts *MockContractRepository
	rollbacks int
}

func (s *fakeTxScope) Execute(_ context.Context, fn func(TransactionalRepositories) error) error {
	if err := fn(s); err != nil {
		s.rollbacks++
		return err
	}
	return nil
}

func (s *fakeTxScope) DebtorRepo() collection.DebtorRepository     { return s.debtors }
func (s *fakeTxScope) PaymentRepo() collection.PaymentRepository   { return s.payments }
func (s *fakeTxScope) ContractRepo() collection.ContractRepository { return s.contracts }

// countingLocker counts lock acquisitions per key
type countingLocker struct {
	locked   map[string]int
	released int
}

func (l *countingLocker) Lock(_ context.Context, key string) (func(), error) {
	if l.locked == nil {
		l.locked = map[string]int{}
	}
	l.locked[key]++
	return func() { l.released++ }, nil
}
