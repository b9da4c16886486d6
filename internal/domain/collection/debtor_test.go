package collection

import (
	"testing"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Test helpers
func createTestDebtor(t *testing.T) *Debtor {
	t.Helper()
	d, err := NewDebtor(NewDebtorInput{
		ContractNumber: "CT-0001",
		Name:           "Juana Pérez",
		CollectorID:    uuid.New(),
		Terms: ContractTerms{
			Amount:       dec("800"),
			TotalToPay:   dec("1000"),
			FirstPayment: dec("200"),
			Cadence:      CadenceDaily,
		},
	})
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func TestNewDebtor(t *testing.T) {
	t.Run("opening balance is total minus first payment", func(t *testing.T) {
		d := createTestDebtor(t)
		assert.True(t, d.Balance.Equal(dec("800")))
		assert.True(t, d.HasFirstPayment())
		assert.True(t, d.IsActive())
		assert.Nil(t, d.ContractEndDate)
		assert.Equal(t, 1, d.Version)
	})

	t.Run("emits origination event", func(t *testing.T) {
		d, err := NewDebtor(NewDebtorInput{
			ContractNumber: "CT-0002",
			Name:           "Pedro",
			CollectorID:    uuid.New(),
			Terms:          ContractTerms{Amount: dec("100"), TotalToPay: dec("130"), Cadence: CadenceWeekly},
		})
		require.NoError(t, err)
		events := d.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDebtorOriginated, events[0].EventType())
	})

	tests := []struct {
		name  string
		input NewDebtorInput
	}{
		{"empty contract number", NewDebtorInput{Name: "x", CollectorID: uuid.New(), Terms: ContractTerms{Amount: dec("1"), TotalToPay: dec("2"), Cadence: CadenceDaily}}},
		{"empty name", NewDebtorInput{ContractNumber: "c", CollectorID: uuid.New(), Terms: ContractTerms{Amount: dec("1"), TotalToPay: dec("2"), Cadence: CadenceDaily}}},
		{"missing collector", NewDebtorInput{ContractNumber: "c", Name: "x", Terms: ContractTerms{Amount: dec("1"), TotalToPay: dec("2"), Cadence: CadenceDaily}}},
		{"first payment covers total", NewDebtorInput{ContractNumber: "c", Name: "x", CollectorID: uuid.New(), Terms: ContractTerms{Amount: dec("1"), TotalToPay: dec("2"), FirstPayment: dec("2"), Cadence: CadenceDaily}}},
		{"negative first payment", NewDebtorInput{ContractNumber: "c", Name: "x", CollectorID: uuid.New(), Terms: ContractTerms{Amount: dec("1"), TotalToPay: dec("2"), FirstPayment: dec("-1"), Cadence: CadenceDaily}}},
		{"bad cadence", NewDebtorInput{ContractNumber: "c", Name: "x", CollectorID: uuid.New(), Terms: ContractTerms{Amount: dec("1"), TotalToPay: dec("2"), Cadence: "mensual"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDebtor(tt.input)
			assert.True(t, shared.HasCode(err, shared.CodeValidation), "got %v", err)
		})
	}
}

func TestDebtor_ApplyPayment(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	t.Run("partial payment is normal", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("300"), now, now)
		require.NoError(t, err)
		assert.Equal(t, PaymentTypeNormal, p.PaymentType)
		assert.True(t, d.Balance.Equal(dec("500")))
		assert.Nil(t, d.ContractEndDate)
		assert.Len(t, d.GetDomainEvents(), 1)
	})

	t.Run("payment of the full balance is a liquidation", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("800"), now, now)
		require.NoError(t, err)
		assert.Equal(t, PaymentTypeLiquidation, p.PaymentType)
		assert.True(t, d.Balance.IsZero())
		require.NotNil(t, d.ContractEndDate)
		assert.Equal(t, now, *d.ContractEndDate)

		events := d.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeDebtorLiquidated, events[1].EventType())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.ApplyPayment(d.CollectorID, decimal.Zero, now, now)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		_, err = d.ApplyPayment(d.CollectorID, dec("-5"), now, now)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})

	t.Run("rejects amounts that round to zero", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.ApplyPayment(d.CollectorID, dec("0.004"), now, now)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		assert.True(t, d.Balance.Equal(dec("800")))
		assert.Empty(t, d.GetDomainEvents())

		p, err := d.ApplyPayment(d.CollectorID, dec("100"), now, now)
		require.NoError(t, err)
		d.ClearDomainEvents()
		err = d.AmendPayment(p, dec("0.001"), now)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		assert.True(t, p.Amount.Equal(dec("100")))
		assert.True(t, d.Balance.Equal(dec("700")))
	})

	t.Run("rejects debtor of another collector", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.ApplyPayment(uuid.New(), dec("100"), now, now)
		assert.True(t, shared.HasCode(err, shared.CodeValidation), "got %v", err)
		assert.True(t, d.Balance.Equal(dec("800")))
	})

	t.Run("rejects payment on zero balance", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.ApplyPayment(d.CollectorID, dec("800"), now, now)
		require.NoError(t, err)
		_, err = d.ApplyPayment(d.CollectorID, dec("1"), now, now)
		assert.ErrorIs(t, err, shared.ErrZeroBalance)
	})

	t.Run("rejects overdraw and leaves balance unchanged", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.ApplyPayment(d.CollectorID, dec("800.01"), now, now)
		assert.ErrorIs(t, err, shared.ErrBalanceExceeded)
		assert.True(t, d.Balance.Equal(dec("800")))
		assert.Empty(t, d.GetDomainEvents())
	})

	t.Run("many small payments accumulate exactly", func(t *testing.T) {
		d := createTestDebtor(t)
		var last *Payment
		for i := 0; i < 8000; i++ {
			p, err := d.ApplyPayment(d.CollectorID, dec("0.10"), now, now)
			require.NoError(t, err)
			last = p
		}
		assert.True(t, d.Balance.IsZero())
		assert.Equal(t, PaymentTypeLiquidation, last.PaymentType)
	})
}

func TestDebtor_AmendPayment(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	t.Run("balance moves by old minus new", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("300"), now, now)
		require.NoError(t, err)
		before := d.Balance

		require.NoError(t, d.AmendPayment(p, dec("100"), now))
		assert.True(t, d.Balance.Equal(before.Add(dec("200"))))
		assert.True(t, p.Amount.Equal(dec("100")))
	})

	t.Run("amending up to the balance turns it into a liquidation", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("300"), now, now)
		require.NoError(t, err)

		require.NoError(t, d.AmendPayment(p, dec("800"), now))
		assert.Equal(t, PaymentTypeLiquidation, p.PaymentType)
		assert.True(t, d.Balance.IsZero())
		assert.NotNil(t, d.ContractEndDate)
	})

	t.Run("amending a liquidation down reopens the contract", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("800"), now, now)
		require.NoError(t, err)

		require.NoError(t, d.AmendPayment(p, dec("500"), now))
		assert.Equal(t, PaymentTypeNormal, p.PaymentType)
		assert.True(t, d.Balance.Equal(dec("300")))
		assert.Nil(t, d.ContractEndDate)
	})

	t.Run("rejects amendment that would overdraw", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("300"), now, now)
		require.NoError(t, err)

		err = d.AmendPayment(p, dec("800.01"), now)
		assert.ErrorIs(t, err, shared.ErrBalanceExceeded)
		assert.True(t, p.Amount.Equal(dec("300")))
		assert.True(t, d.Balance.Equal(dec("500")))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		d := createTestDebtor(t)
		p, err := d.ApplyPayment(d.CollectorID, dec("300"), now, now)
		require.NoError(t, err)
		assert.ErrorIs(t, d.AmendPayment(p, decimal.Zero, now), shared.ErrInvalidAmount)
	})

	t.Run("rejects payment of another debtor", func(t *testing.T) {
		d := createTestDebtor(t)
		other := createTestDebtor(t)
		p, err := other.ApplyPayment(other.CollectorID, dec("10"), now, now)
		require.NoError(t, err)
		assert.True(t, shared.HasCode(d.AmendPayment(p, dec("5"), now), shared.CodeValidation))
	})
}

func TestDebtor_CancelPayment(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	t.Run("cancel restores the pre-payment balance", func(t *testing.T) {
		for _, amount := range []string{"0.01", "123.45", "799.99", "800"} {
			d := createTestDebtor(t)
			before := d.Balance
			p, err := d.ApplyPayment(d.CollectorID, dec(amount), now, now)
			require.NoError(t, err)
			require.NoError(t, d.CancelPayment(p, now))
			assert.True(t, d.Balance.Equal(before), "amount %s", amount)
			assert.Nil(t, d.ContractEndDate)
		}
	})
}

func TestDebtor_Renew(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	terms := ContractTerms{Amount: dec("2000"), TotalToPay: dec("2600"), FirstPayment: dec("100"), Cadence: CadenceWeekly}

	t.Run("archives paid-off contract and resets terms", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.ApplyPayment(d.CollectorID, dec("800"), now, now)
		require.NoError(t, err)

		archived, err := d.Renew(terms, now)
		require.NoError(t, err)
		assert.Equal(t, d.ID, archived.DebtorID)
		assert.True(t, archived.TotalToPay.Equal(dec("1000")))
		assert.True(t, archived.Balance.IsZero())
		assert.Equal(t, now, archived.EndedAt)

		assert.Equal(t, 1, d.Renewals)
		assert.True(t, d.Balance.Equal(dec("2500")))
		assert.Equal(t, CadenceWeekly, d.Cadence)
		assert.Nil(t, d.ContractEndDate)
		assert.Equal(t, now, d.ContractStart)
	})

	t.Run("rejects renewal with outstanding balance", func(t *testing.T) {
		d := createTestDebtor(t)
		_, err := d.Renew(terms, now)
		assert.True(t, shared.HasCode(err, shared.CodeValidation))
	})
}
