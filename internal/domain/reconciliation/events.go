package reconciliation

import (
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeCutFinalized     = "CutFinalized"
	EventTypeWeeklyCutCreated = "WeeklyCutCreated"
)

// CutFinalizedEvent is raised after a daily cut is committed
type CutFinalizedEvent struct {
	shared.BaseDomainEvent
	Cut Cut `json:"cut"`
}

// NewCutFinalizedEvent creates a new CutFinalizedEvent
func NewCutFinalizedEvent(c *Cut) *CutFinalizedEvent {
	return &CutFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCutFinalized, "Cut", c.ID),
		Cut:             *c,
	}
}

// WeeklyCutCreatedEvent is raised after a weekly cut is committed
type WeeklyCutCreatedEvent struct {
	shared.BaseDomainEvent
	WeeklyCut   WeeklyCut       `json:"weekly_cut"`
	CollectorID uuid.UUID       `json:"collector_id"`
	SaldoFinal  decimal.Decimal `json:"saldo_final"`
}

// NewWeeklyCutCreatedEvent creates a new WeeklyCutCreatedEvent
func NewWeeklyCutCreatedEvent(c *WeeklyCut) *WeeklyCutCreatedEvent {
	return &WeeklyCutCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWeeklyCutCreated, "WeeklyCut", c.ID),
		WeeklyCut:       *c,
		CollectorID:     c.CollectorID,
		SaldoFinal:      c.SaldoFinal,
	}
}
