package collection

import (
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract is an immutable archive of a finished credit contract, written
// when the debtor renews
type Contract struct {
	shared.BaseEntity
	DebtorID       uuid.UUID       `json:"debtor_id"`
	CollectorID    uuid.UUID       `json:"collector_id"`
	ContractNumber string          `json:"contract_number"`
	DebtorName     string          `json:"debtor_name"`
	Amount         decimal.Decimal `json:"amount"`
	TotalToPay     decimal.Decimal `json:"total_to_pay"`
	FirstPayment   decimal.Decimal `json:"first_payment"`
	Balance        decimal.Decimal `json:"balance"`
	Cadence        Cadence         `json:"payment_type"`
	StartedAt      time.Time       `json:"started_at"`
	EndedAt        time.Time       `json:"ended_at"`
}

// NewContractFromDebtor snapshots the debtor's current contract
func NewContractFromDebtor(d *Debtor, now time.Time) *Contract {
	ended := now.UTC()
	if d.ContractEndDate != nil {
		ended = *d.ContractEndDate
	}
	return &Contract{
		BaseEntity:     shared.NewBaseEntityAt(now),
		DebtorID:       d.ID,
		CollectorID:    d.CollectorID,
		ContractNumber: d.ContractNumber,
		DebtorName:     d.Name,
		Amount:         d.Amount,
		TotalToPay:     d.TotalToPay,
		FirstPayment:   d.FirstPayment,
		Balance:        d.Balance,
		Cadence:        d.Cadence,
		StartedAt:      d.ContractStart,
		EndedAt:        ended,
	}
}
