package collection

import (
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeDebtor = "Debtor"

	EventTypeDebtorOriginated  = "DebtorOriginated"
	EventTypePaymentRegistered = "PaymentRegistered"
	EventTypePaymentAmended    = "PaymentAmended"
	EventTypePaymentCancelled  = "PaymentCancelled"
	EventTypeDebtorLiquidated  = "DebtorLiquidated"
	EventTypeContractRenewed   = "ContractRenewed"
)

// DebtorOriginatedEvent is raised when a new credit contract is signed
type DebtorOriginatedEvent struct {
	shared.BaseDomainEvent
	DebtorID     uuid.UUID       `json:"debtor_id"`
	CollectorID  uuid.UUID       `json:"collector_id"`
	Amount       decimal.Decimal `json:"amount"`
	FirstPayment decimal.Decimal `json:"first_payment"`
}

// NewDebtorOriginatedEvent creates a new DebtorOriginatedEvent
func NewDebtorOriginatedEvent(d *Debtor) *DebtorOriginatedEvent {
	return &DebtorOriginatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtorOriginated, AggregateTypeDebtor, d.ID),
		DebtorID:        d.ID,
		CollectorID:     d.CollectorID,
		Amount:          d.Amount,
		FirstPayment:    d.FirstPayment,
	}
}

// PaymentRegisteredEvent is raised when a payment is applied to a debtor
type PaymentRegisteredEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	DebtorID    uuid.UUID       `json:"debtor_id"`
	CollectorID uuid.UUID       `json:"collector_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType PaymentType     `json:"payment_type"`
	NewBalance  decimal.Decimal `json:"new_balance"`
}

// NewPaymentRegisteredEvent creates a new PaymentRegisteredEvent
func NewPaymentRegisteredEvent(d *Debtor, p *Payment) *PaymentRegisteredEvent {
	return &PaymentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRegistered, AggregateTypeDebtor, d.ID),
		PaymentID:       p.ID,
		DebtorID:        d.ID,
		CollectorID:     p.CollectorID,
		Amount:          p.Amount,
		PaymentType:     p.PaymentType,
		NewBalance:      d.Balance,
	}
}

// PaymentAmendedEvent is raised when a payment amount is corrected
type PaymentAmendedEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	DebtorID    uuid.UUID       `json:"debtor_id"`
	CollectorID uuid.UUID       `json:"collector_id"`
	OldAmount   decimal.Decimal `json:"old_amount"`
	NewAmount   decimal.Decimal `json:"new_amount"`
	NewBalance  decimal.Decimal `json:"new_balance"`
}

// NewPaymentAmendedEvent creates a new PaymentAmendedEvent
func NewPaymentAmendedEvent(d *Debtor, p *Payment, oldAmount decimal.Decimal) *PaymentAmendedEvent {
	return &PaymentAmendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentAmended, AggregateTypeDebtor, d.ID),
		PaymentID:       p.ID,
		DebtorID:        d.ID,
		CollectorID:     p.CollectorID,
		OldAmount:       oldAmount,
		NewAmount:       p.Amount,
		NewBalance:      d.Balance,
	}
}

// PaymentCancelledEvent is raised when a payment is reversed
type PaymentCancelledEvent struct {
	shared.BaseDomainEvent
	PaymentID       uuid.UUID       `json:"payment_id"`
	DebtorID        uuid.UUID       `json:"debtor_id"`
	CollectorID     uuid.UUID       `json:"collector_id"`
	Amount          decimal.Decimal `json:"amount"`
	RestoredBalance decimal.Decimal `json:"restored_balance"`
}

// NewPaymentCancelledEvent creates a new PaymentCancelledEvent
func NewPaymentCancelledEvent(d *Debtor, p *Payment) *PaymentCancelledEvent {
	return &PaymentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCancelled, AggregateTypeDebtor, d.ID),
		PaymentID:       p.ID,
		DebtorID:        d.ID,
		CollectorID:     p.CollectorID,
		Amount:          p.Amount,
		RestoredBalance: d.Balance,
	}
}

// DebtorLiquidatedEvent is raised when a payment brings the balance to zero
type DebtorLiquidatedEvent struct {
	shared.BaseDomainEvent
	DebtorID       uuid.UUID       `json:"debtor_id"`
	CollectorID    uuid.UUID       `json:"collector_id"`
	ContractNumber string          `json:"contract_number"`
	PaymentID      uuid.UUID       `json:"payment_id"`
	TotalToPay     decimal.Decimal `json:"total_to_pay"`
}

// NewDebtorLiquidatedEvent creates a new DebtorLiquidatedEvent
func NewDebtorLiquidatedEvent(d *Debtor, p *Payment) *DebtorLiquidatedEvent {
	return &DebtorLiquidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtorLiquidated, AggregateTypeDebtor, d.ID),
		DebtorID:        d.ID,
		CollectorID:     d.CollectorID,
		ContractNumber:  d.ContractNumber,
		PaymentID:       p.ID,
		TotalToPay:      d.TotalToPay,
	}
}

// ContractRenewedEvent is raised when a paid-off debtor signs a new contract
type ContractRenewedEvent struct {
	shared.BaseDomainEvent
	DebtorID           uuid.UUID       `json:"debtor_id"`
	ArchivedContractID uuid.UUID       `json:"archived_contract_id"`
	Renewals           int             `json:"renewals"`
	NewTotalToPay      decimal.Decimal `json:"new_total_to_pay"`
}

// NewContractRenewedEvent creates a new ContractRenewedEvent
func NewContractRenewedEvent(d *Debtor, archived *Contract) *ContractRenewedEvent {
	return &ContractRenewedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeContractRenewed, AggregateTypeDebtor, d.ID),
		DebtorID:           d.ID,
		ArchivedContractID: archived.ID,
		Renewals:           d.Renewals,
		NewTotalToPay:      d.TotalToPay,
	}
}
