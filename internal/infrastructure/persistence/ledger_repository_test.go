package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cobranza/backend/internal/application/ledger"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ledgerNow = time.Date(2024, time.May, 1, 18, 0, 0, 0, time.UTC)

func seedDebtor(t *testing.T, db *gorm.DB, contract, total string, createdAt time.Time) (*collection.Collector, *collection.Debtor) {
	t.Helper()
	ctx := context.Background()

	c, err := collection.NewCollector("Luis", uuid.NewString()[:10])
	require.NoError(t, err)
	require.NoError(t, NewGormCollectorRepository(db).Save(ctx, c))

	d, err := collection.NewDebtor(collection.NewDebtorInput{
		ContractNumber: contract,
		Name:           "Maria Lopez",
		CollectorID:    c.ID,
		Terms: collection.ContractTerms{
			Amount:           decimal.RequireFromString("1000"),
			TotalToPay:       decimal.RequireFromString(total),
			FirstPayment:     decimal.Zero,
			SuggestedPayment: decimal.RequireFromString("100"),
			Cadence:          collection.CadenceDaily,
		},
		Guarantor: collection.Guarantor{Name: "Jose", Phone: "5550001111"},
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormDebtorRepository(db).Save(ctx, d))
	return c, d
}

func TestGormDebtorRepository_FindByIDForUpdate_SQL(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormDebtorRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "debtors" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contract_number", "balance"}).
			AddRow(id, "C-001", "250.00"))

	d, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "C-001", d.ContractNumber)
	assert.Equal(t, "250.00", d.Balance.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDebtorRepository(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormDebtorRepository(db)
	ctx := context.Background()

	c, d := seedDebtor(t, db, "C-001", "1500", ledgerNow)

	t.Run("round trips guarantor and terms", func(t *testing.T) {
		found, err := repo.FindByIDForUpdate(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jose", found.Guarantor.Name)
		assert.Equal(t, "5550001111", found.Guarantor.Phone)
		assert.Equal(t, collection.CadenceDaily, found.Cadence)
		assert.Equal(t, "1500.00", found.Balance.StringFixed(2))
		assert.Nil(t, found.ContractEndDate)
	})

	t.Run("rejects duplicate contract number", func(t *testing.T) {
		dup, err := collection.NewDebtor(collection.NewDebtorInput{
			ContractNumber: "C-001",
			Name:           "Otra",
			CollectorID:    c.ID,
			Terms: collection.ContractTerms{
				Amount:     decimal.RequireFromString("100"),
				TotalToPay: decimal.RequireFromString("150"),
				Cadence:    collection.CadenceWeekly,
			},
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)

		exists, err := repo.ExistsByContractNumber(ctx, "C-001")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("filters by collector and active balance", func(t *testing.T) {
		list, total, err := repo.FindAll(ctx, collection.DebtorFilter{
			Filter:      shared.DefaultFilter(),
			CollectorID: &c.ID,
			ActiveOnly:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, d.ID, list[0].ID)

		active, err := repo.CountActive(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), active)
	})

	t.Run("finds debtors created in a window", func(t *testing.T) {
		found, err := repo.FindCreatedBetween(ctx, c.ID, ledgerNow.Add(-time.Hour), ledgerNow.Add(time.Hour))
		require.NoError(t, err)
		assert.Len(t, found, 1)

		found, err = repo.FindCreatedBetween(ctx, c.ID, ledgerNow.Add(time.Hour), ledgerNow.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLedgerTransactionScope(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	c, d := seedDebtor(t, db, "C-100", "800", ledgerNow.Add(-48*time.Hour))

	svc := ledger.NewService(
		NewLedgerTransactionScope(db),
		NewGormCollectorRepository(db),
		NewGormDebtorRepository(db),
		NewGormPaymentRepository(db),
		nil, nil,
		shared.FixedClock{T: ledgerNow},
		zap.NewNop(),
	)

	t.Run("payment and balance commit together", func(t *testing.T) {
		res, err := svc.RegisterPayment(ctx, ledger.RegisterPaymentInput{
			CollectorID: c.ID,
			DebtorID:    d.ID,
			Amount:      decimal.RequireFromString("300"),
		})
		require.NoError(t, err)
		assert.Equal(t, "500.00", res.NewBalance.StringFixed(2))

		stored, err := NewGormDebtorRepository(db).FindByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "500.00", stored.Balance.StringFixed(2))

		payments, err := NewGormPaymentRepository(db).FindByCollectorBetween(ctx, c.ID, ledgerNow.Add(-time.Hour), ledgerNow.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, collection.PaymentTypeNormal, payments[0].PaymentType)
	})

	t.Run("liquidation stamps the contract end date", func(t *testing.T) {
		res, err := svc.RegisterPayment(ctx, ledger.RegisterPaymentInput{
			CollectorID: c.ID,
			DebtorID:    d.ID,
			Amount:      decimal.RequireFromString("500"),
		})
		require.NoError(t, err)
		assert.True(t, res.NewBalance.IsZero())
		assert.True(t, res.Payment.IsLiquidation())

		stored, err := NewGormDebtorRepository(db).FindByID(ctx, d.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ContractEndDate)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		boom := errors.New("boom")
		scope := NewLedgerTransactionScope(db)
		stray := &collection.Payment{
			BaseEntity:  shared.NewBaseEntityAt(ledgerNow),
			CollectorID: c.ID,
			DebtorID:    d.ID,
			Amount:      decimal.RequireFromString("1"),
			PaymentDate: ledgerNow,
			PaymentType: collection.PaymentTypeNormal,
		}
		err := scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
			require.NoError(t, repos.PaymentRepo().Save(ctx, stray))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormPaymentRepository(db).FindByID(ctx, stray.ID)
		assert.True(t, shared.HasCode(err, shared.CodeNotFound))
	})

	t.Run("history pages newest first", func(t *testing.T) {
		page, err := svc.ListDebtorPayments(ctx, d.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})
}
