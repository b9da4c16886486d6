package collection

import (
	"fmt"
	"strings"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cadence is how often a debtor is expected to pay
type Cadence string

const (
	CadenceDaily  Cadence = "diario"
	CadenceWeekly Cadence = "semanal"
)

// IsValid checks if the cadence is known
func (c Cadence) IsValid() bool {
	return c == CadenceDaily || c == CadenceWeekly
}

// Guarantor is the co-signer (aval) of a credit contract
type Guarantor struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ContractTerms are the monetary terms of a credit contract
type ContractTerms struct {
	Amount           decimal.Decimal // principal handed to the debtor
	TotalToPay       decimal.Decimal
	FirstPayment     decimal.Decimal
	SuggestedPayment decimal.Decimal
	Cadence          Cadence
}

// validate checks the monetary terms of a contract
func (t ContractTerms) validate() error {
	if !t.Amount.IsPositive() {
		return shared.NewValidationError("amount must be positive")
	}
	if !t.TotalToPay.IsPositive() {
		return shared.NewValidationError("total_to_pay must be positive")
	}
	if t.FirstPayment.IsNegative() {
		return shared.NewValidationError("first_payment cannot be negative")
	}
	if t.FirstPayment.GreaterThanOrEqual(t.TotalToPay) {
		return shared.NewValidationError("first_payment must be less than total_to_pay")
	}
	if t.SuggestedPayment.IsNegative() {
		return shared.NewValidationError("suggested_payment cannot be negative")
	}
	if !t.Cadence.IsValid() {
		return shared.NewValidationError("payment_type must be %q or %q", CadenceDaily, CadenceWeekly)
	}
	return nil
}

// Debtor is an individual under a credit contract. Its balance is mutated
// only through ApplyPayment, AmendPayment and CancelPayment, which keep
// balance = total_to_pay - (first_payment + applied payments) >= 0.
type Debtor struct {
	shared.BaseAggregateRoot
	ContractNumber   string          `json:"contract_number"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	CollectorID      uuid.UUID       `json:"collector_id"`
	Amount           decimal.Decimal `json:"amount"`
	TotalToPay       decimal.Decimal `json:"total_to_pay"`
	FirstPayment     decimal.Decimal `json:"first_payment"`
	SuggestedPayment decimal.Decimal `json:"suggested_payment"`
	Balance          decimal.Decimal `json:"balance"`
	Cadence          Cadence         `json:"payment_type"`
	ContractStart    time.Time       `json:"contract_start"`
	ContractEndDate  *time.Time      `json:"contract_end_date,omitempty"`
	Renewals         int             `json:"renewals"`
	Guarantor        Guarantor       `json:"guarantor"`
}

// NewDebtorInput contains the data needed to originate a contract
type NewDebtorInput struct {
	ContractNumber string
	Name           string
	Phone          string
	Address        string
	CollectorID    uuid.UUID
	Terms          ContractTerms
	Guarantor      Guarantor
	CreatedAt      time.Time
}

// NewDebtor originates a credit contract. The opening balance is
// total_to_pay minus the down payment taken at signing.
func NewDebtor(in NewDebtorInput) (*Debtor, error) {
	contractNumber := strings.TrimSpace(in.ContractNumber)
	name := strings.TrimSpace(in.Name)
	if contractNumber == "" {
		return nil, shared.NewValidationError("contract_number cannot be empty")
	}
	if len(contractNumber) > 50 {
		return nil, shared.NewValidationError("contract_number cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("debtor name cannot be empty")
	}
	if in.CollectorID == uuid.Nil {
		return nil, shared.NewValidationError("collector_id cannot be empty")
	}
	if err := in.Terms.validate(); err != nil {
		return nil, err
	}

	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	d := &Debtor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractNumber:    contractNumber,
		Name:              name,
		Phone:             strings.TrimSpace(in.Phone),
		Address:           strings.TrimSpace(in.Address),
		CollectorID:       in.CollectorID,
		Guarantor:         in.Guarantor,
	}
	d.BaseEntity = shared.NewBaseEntityAt(createdAt)
	d.applyTerms(in.Terms, createdAt)

	d.AddDomainEvent(NewDebtorOriginatedEvent(d))
	return d, nil
}

func (d *Debtor) applyTerms(terms ContractTerms, start time.Time) {
	d.Amount = valueobject.RoundAmount(terms.Amount)
	d.TotalToPay = valueobject.RoundAmount(terms.TotalToPay)
	d.FirstPayment = valueobject.RoundAmount(terms.FirstPayment)
	d.SuggestedPayment = valueobject.RoundAmount(terms.SuggestedPayment)
	d.Cadence = terms.Cadence
	d.Balance = d.TotalToPay.Sub(d.FirstPayment)
	d.ContractStart = start.UTC()
	d.ContractEndDate = nil
}

// HasFirstPayment reports whether a down payment was taken at signing
func (d *Debtor) HasFirstPayment() bool {
	return d.FirstPayment.IsPositive()
}

// IsActive reports whether the debtor still owes money
func (d *Debtor) IsActive() bool {
	return d.Balance.IsPositive()
}

// ApplyPayment registers a collection against the balance and returns the
// resulting payment. Payment type and contract end date follow the new balance.
func (d *Debtor) ApplyPayment(collectorID uuid.UUID, amount decimal.Decimal, paymentDate, now time.Time) (*Payment, error) {
	if collectorID != d.CollectorID {
		return nil, shared.NewValidationError("debtor %s is not assigned to collector %s", d.ContractNumber, collectorID)
	}
	amount = valueobject.RoundAmount(amount)
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if !d.Balance.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeZeroBalance,
			fmt.Sprintf("debtor %s has no outstanding balance", d.ContractNumber))
	}
	if amount.GreaterThan(d.Balance) {
		return nil, shared.NewDomainError(shared.CodeBalanceExceeded,
			fmt.Sprintf("payment of %s exceeds outstanding balance %s", amount.StringFixed(2), d.Balance.StringFixed(2))).
			WithDetail("balance", d.Balance.StringFixed(2))
	}

	newBalance := d.Balance.Sub(amount)
	payment := &Payment{
		BaseEntity:  shared.NewBaseEntityAt(now),
		CollectorID: collectorID,
		DebtorID:    d.ID,
		Amount:      amount,
		PaymentDate: paymentDate.UTC(),
		PaymentType: classifyPayment(newBalance),
	}

	d.setBalance(newBalance, now)
	d.AddDomainEvent(NewPaymentRegisteredEvent(d, payment))
	if payment.IsLiquidation() {
		d.AddDomainEvent(NewDebtorLiquidatedEvent(d, payment))
	}
	return payment, nil
}

// AmendPayment changes the amount of a previously applied payment.
// The balance moves by exactly old - new.
func (d *Debtor) AmendPayment(p *Payment, newAmount decimal.Decimal, now time.Time) error {
	if p.DebtorID != d.ID {
		return shared.NewValidationError("payment %s does not belong to debtor %s", p.ID, d.ID)
	}
	newAmount = valueobject.RoundAmount(newAmount)
	if !newAmount.IsPositive() {
		return shared.ErrInvalidAmount
	}

	oldAmount := p.Amount
	delta := newAmount.Sub(oldAmount)
	newBalance := d.Balance.Sub(delta)
	if newBalance.IsNegative() {
		return shared.NewDomainError(shared.CodeBalanceExceeded,
			fmt.Sprintf("amended amount %s exceeds outstanding balance by %s", newAmount.StringFixed(2), newBalance.Neg().StringFixed(2))).
			WithDetail("balance", d.Balance.StringFixed(2))
	}

	p.Amount = newAmount
	p.PaymentType = classifyPayment(newBalance)
	p.UpdatedAt = now.UTC()

	d.setBalance(newBalance, now)
	d.AddDomainEvent(NewPaymentAmendedEvent(d, p, oldAmount))
	if p.IsLiquidation() {
		d.AddDomainEvent(NewDebtorLiquidatedEvent(d, p))
	}
	return nil
}

// CancelPayment reverses a payment, restoring its amount to the balance
func (d *Debtor) CancelPayment(p *Payment, now time.Time) error {
	if p.DebtorID != d.ID {
		return shared.NewValidationError("payment %s does not belong to debtor %s", p.ID, d.ID)
	}
	restored := d.Balance.Add(p.Amount)
	if restored.GreaterThan(d.TotalToPay.Sub(d.FirstPayment)) {
		return shared.NewValidationError("cancelling payment %s would exceed the contract total", p.ID)
	}
	d.setBalance(restored, now)
	d.AddDomainEvent(NewPaymentCancelledEvent(d, p))
	return nil
}

// setBalance updates the balance and keeps contract_end_date in step:
// stamped when the balance reaches zero, cleared when it becomes positive again.
func (d *Debtor) setBalance(balance decimal.Decimal, now time.Time) {
	d.Balance = balance
	switch {
	case balance.IsZero() && d.ContractEndDate == nil:
		end := now.UTC()
		d.ContractEndDate = &end
	case balance.IsPositive():
		d.ContractEndDate = nil
	}
	d.UpdatedAt = now.UTC()
	d.IncrementVersion()
}

// Renew archives the finished contract and starts a new one on the same debtor
func (d *Debtor) Renew(terms ContractTerms, now time.Time) (*Contract, error) {
	if d.Balance.IsPositive() {
		return nil, shared.NewValidationError("debtor %s still owes %s and cannot be renewed", d.ContractNumber, d.Balance.StringFixed(2))
	}
	if err := terms.validate(); err != nil {
		return nil, err
	}

	archived := NewContractFromDebtor(d, now)

	d.applyTerms(terms, now)
	d.Renewals++
	d.UpdatedAt = now.UTC()
	d.IncrementVersion()
	d.AddDomainEvent(NewContractRenewedEvent(d, archived))
	return archived, nil
}
