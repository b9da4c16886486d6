package collection

import (
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType classifies a collection event
type PaymentType string

const (
	PaymentTypeNormal      PaymentType = "normal"
	PaymentTypeLiquidation PaymentType = "liquidación"
	// PaymentTypeFirstPayment only appears on stored history rows; it is
	// never assigned by classifyPayment.
	PaymentTypeFirstPayment PaymentType = "primer pago"
)

// IsValid checks if the payment type is known
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeNormal, PaymentTypeLiquidation, PaymentTypeFirstPayment:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// classifyPayment derives the payment type from the balance left after it
func classifyPayment(resultingBalance decimal.Decimal) PaymentType {
	if resultingBalance.IsZero() {
		return PaymentTypeLiquidation
	}
	return PaymentTypeNormal
}

// Payment (cobro) is one collection event against a debtor's balance.
// It is only created, amended and cancelled through the owning Debtor.
type Payment struct {
	shared.BaseEntity
	CollectorID uuid.UUID       `json:"collector_id"`
	DebtorID    uuid.UUID       `json:"debtor_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	PaymentType PaymentType     `json:"payment_type"`
}

// IsLiquidation reports whether the payment paid the debt off
func (p *Payment) IsLiquidation() bool {
	return p.PaymentType == PaymentTypeLiquidation
}
