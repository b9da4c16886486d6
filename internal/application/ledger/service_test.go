package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ledgerFixture struct {
	service    *Service
	collectors *MockCollectorRepository
	debtors    *MockDebtorRepository
	payments   *MockPaymentRepository
	publisher  *MockEventPublisher
	tx         *fakeTxScope
	locker     *countingLocker
	collector  *collection.Collector
	debtor     *collection.Debtor
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		collectors: new(MockCollectorRepository),
		debtors:    new(MockDebtorRepository),
		payments:   new(MockPaymentRepository),
		publisher:  new(MockEventPublisher),
		locker:     &countingLocker{},
	}
	f.tx = &fakeTxScope{debtors: f.debtors, payments: f.payments, contracts: new(MockContractRepository)}

	c, err := collection.NewCollector("Luis", "5550001111")
	require.NoError(t, err)
	f.collector = c

	d, err := collection.NewDebtor(collection.NewDebtorInput{
		ContractNumber: "CT-100",
		Name:           "Ana",
		CollectorID:    c.ID,
		Terms: collection.ContractTerms{
			Amount:       dec("800"),
			TotalToPay:   dec("1000"),
			FirstPayment: dec("200"),
			Cadence:      collection.CadenceDaily,
		},
		CreatedAt: testNow.Add(-72 * time.Hour),
	})
	require.NoError(t, err)
	d.ClearDomainEvents()
	f.debtor = d

	f.service = NewService(f.tx, f.collectors, f.debtors, f.payments, f.locker, f.publisher,
		shared.FixedClock{T: testNow}, zap.NewNop())
	return f
}

func (f *ledgerFixture) expectCollector() {
	f.collectors.On("FindByID", mock.Anything, f.collector.ID).Return(f.collector, nil)
}

func TestService_RegisterPayment(t *testing.T) {
	t.Run("decrements balance and records a normal payment", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Save", mock.Anything, mock.AnythingOfType("*collection.Payment")).Return(nil)
		f.debtors.On("Save", mock.Anything, f.debtor).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		res, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID,
			DebtorID:    f.debtor.ID,
			Amount:      dec("150"),
		})
		require.NoError(t, err)

		assert.True(t, res.NewBalance.Equal(dec("650")))
		assert.Equal(t, collection.PaymentTypeNormal, res.Payment.PaymentType)
		assert.Equal(t, testNow, res.Payment.PaymentDate, "zero date defaults to now")
		assert.Equal(t, 1, f.locker.locked[CollectorLockKey(f.collector.ID)])
		assert.Equal(t, 1, f.locker.released)
		assert.Empty(t, f.debtor.GetDomainEvents(), "events are drained after publish")
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("paying the exact balance liquidates", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.debtors.On("Save", mock.Anything, f.debtor).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 2 && events[1].EventType() == collection.EventTypeDebtorLiquidated
		})).Return(nil)

		res, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID,
			DebtorID:    f.debtor.ID,
			Amount:      dec("800"),
		})
		require.NoError(t, err)
		assert.True(t, res.NewBalance.IsZero())
		assert.Equal(t, collection.PaymentTypeLiquidation, res.Payment.PaymentType)
		require.NotNil(t, f.debtor.ContractEndDate)
		f.publisher.AssertExpectations(t)
	})

	t.Run("overpayment rolls back and persists nothing", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID,
			DebtorID:    f.debtor.ID,
			Amount:      dec("800.01"),
		})
		assert.ErrorIs(t, err, shared.ErrBalanceExceeded)
		assert.Equal(t, 1, f.tx.rollbacks)
		assert.True(t, f.debtor.Balance.Equal(dec("800")))
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("zero balance", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.debtor.Balance = decimal.Zero
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID, DebtorID: f.debtor.ID, Amount: dec("1"),
		})
		assert.ErrorIs(t, err, shared.ErrZeroBalance)
	})

	t.Run("non positive amount", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID, DebtorID: f.debtor.ID, Amount: dec("0"),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})

	t.Run("unknown collector", func(t *testing.T) {
		f := newLedgerFixture(t)
		missing := uuid.New()
		f.collectors.On("FindByID", mock.Anything, missing).Return(nil, shared.NewNotFoundError("collector", missing))

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: missing, DebtorID: f.debtor.ID, Amount: dec("10"),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, f.locker.locked)
	})

	t.Run("unknown debtor", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		missing := uuid.New()
		f.debtors.On("FindByIDForUpdate", mock.Anything, missing).Return(nil, shared.NewNotFoundError("debtor", missing))

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID, DebtorID: missing, Amount: dec("10"),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("future payment date", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID,
			DebtorID:    f.debtor.ID,
			Amount:      dec("10"),
			PaymentDate: testNow.Add(time.Minute),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidDate)
		assert.True(t, f.debtor.Balance.Equal(dec("800")))
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown debtor is reported before a future date", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		missing := uuid.New()
		f.debtors.On("FindByIDForUpdate", mock.Anything, missing).Return(nil, shared.NewNotFoundError("debtor", missing))

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID,
			DebtorID:    missing,
			Amount:      dec("10"),
			PaymentDate: testNow.Add(time.Hour),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("debtor of another collector", func(t *testing.T) {
		f := newLedgerFixture(t)
		other, err := collection.NewCollector("Rosa", "5550002222")
		require.NoError(t, err)
		f.collectors.On("FindByID", mock.Anything, other.ID).Return(other, nil)
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)

		_, err = f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: other.ID, DebtorID: f.debtor.ID, Amount: dec("10"),
		})
		assert.True(t, shared.HasCode(err, shared.CodeValidation), "got %v", err)
		assert.True(t, f.debtor.Balance.Equal(dec("800")))
		assert.Equal(t, 1, f.tx.rollbacks)
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the payment", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.expectCollector()
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.debtors.On("Save", mock.Anything, f.debtor).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down"))

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			CollectorID: f.collector.ID, DebtorID: f.debtor.ID, Amount: dec("10"),
		})
		assert.NoError(t, err)
	})
}

func (f *ledgerFixture) existingPayment(amount string) *collection.Payment {
	p := &collection.Payment{
		BaseEntity:  shared.NewBaseEntityAt(testNow.Add(-time.Hour)),
		CollectorID: f.collector.ID,
		DebtorID:    f.debtor.ID,
		Amount:      dec(amount),
		PaymentDate: testNow.Add(-time.Hour),
		PaymentType: collection.PaymentTypeNormal,
	}
	// the payment was already applied
	f.debtor.Balance = f.debtor.Balance.Sub(p.Amount)
	f.payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	return p
}

func TestService_AmendPayment(t *testing.T) {
	t.Run("balance moves by old minus new", func(t *testing.T) {
		f := newLedgerFixture(t)
		p := f.existingPayment("100") // balance 700
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Save", mock.Anything, p).Return(nil)
		f.debtors.On("Save", mock.Anything, f.debtor).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		res, err := f.service.AmendPayment(context.Background(), p.ID, dec("40"))
		require.NoError(t, err)
		assert.True(t, res.NewBalance.Equal(dec("760")))
		assert.True(t, res.Payment.Amount.Equal(dec("40")))
	})

	t.Run("increase beyond balance is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		p := f.existingPayment("100")
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)

		_, err := f.service.AmendPayment(context.Background(), p.ID, dec("800.01"))
		assert.ErrorIs(t, err, shared.ErrBalanceExceeded)
		assert.True(t, f.debtor.Balance.Equal(dec("700")))
	})

	t.Run("amending to the full balance liquidates", func(t *testing.T) {
		f := newLedgerFixture(t)
		p := f.existingPayment("100")
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Save", mock.Anything, p).Return(nil)
		f.debtors.On("Save", mock.Anything, f.debtor).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		res, err := f.service.AmendPayment(context.Background(), p.ID, dec("800"))
		require.NoError(t, err)
		assert.True(t, res.NewBalance.IsZero())
		assert.Equal(t, collection.PaymentTypeLiquidation, res.Payment.PaymentType)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newLedgerFixture(t)
		missing := uuid.New()
		f.payments.On("FindByID", mock.Anything, missing).Return(nil, shared.NewNotFoundError("payment", missing))

		_, err := f.service.AmendPayment(context.Background(), missing, dec("10"))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_CancelPayment(t *testing.T) {
	t.Run("restores the amount and deletes the payment", func(t *testing.T) {
		f := newLedgerFixture(t)
		p := f.existingPayment("100")
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Delete", mock.Anything, p.ID).Return(nil)
		f.debtors.On("Save", mock.Anything, f.debtor).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		res, err := f.service.CancelPayment(context.Background(), p.ID)
		require.NoError(t, err)
		assert.True(t, res.RestoredBalance.Equal(dec("800")))
		assert.Equal(t, f.debtor.ID, res.DebtorID)
		f.payments.AssertCalled(t, "Delete", mock.Anything, p.ID)
	})

	t.Run("delete failure rolls back", func(t *testing.T) {
		f := newLedgerFixture(t)
		p := f.existingPayment("100")
		f.debtors.On("FindByIDForUpdate", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
		f.payments.On("Delete", mock.Anything, p.ID).Return(errors.New("connection reset"))

		_, err := f.service.CancelPayment(context.Background(), p.ID)
		assert.Error(t, err)
		assert.Equal(t, 1, f.tx.rollbacks)
		f.debtors.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_ListDebtorPayments(t *testing.T) {
	f := newLedgerFixture(t)
	filter := shared.Filter{Page: 1, PageSize: 2}
	f.debtors.On("FindByID", mock.Anything, f.debtor.ID).Return(f.debtor, nil)
	f.payments.On("FindByDebtor", mock.Anything, f.debtor.ID, filter).
		Return([]collection.Payment{{}, {}}, int64(5), nil)

	page, err := f.service.ListDebtorPayments(context.Background(), f.debtor.ID, filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
