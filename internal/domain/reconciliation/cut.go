package reconciliation

import (
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stats is the aggregate statistics tuple carried by every cut and pre-cut
type Stats struct {
	Collected           decimal.Decimal `json:"cobranza_total"`
	PayingDebtors       int             `json:"deudores_cobrados"`
	LiquidationsTotal   decimal.Decimal `json:"liquidaciones_total"`
	LiquidatedDebtors   int             `json:"deudores_liquidados"`
	NonPaying           int             `json:"no_pagos_total"`
	CreditsCount        int             `json:"creditos_total"`
	CreditsAmount       decimal.Decimal `json:"creditos_total_monto"`
	FirstPaymentsCount  int             `json:"primeros_pagos_total"`
	FirstPaymentsAmount decimal.Decimal `json:"primeros_pagos_montos"`
	NewDebtors          int             `json:"nuevos_deudores"`
	ActiveDebtors       int             `json:"deudores_totales"`
}

// ZeroStats returns an all-zero aggregate
func ZeroStats() Stats {
	return Stats{
		Collected:           decimal.Zero,
		LiquidationsTotal:   decimal.Zero,
		CreditsAmount:       decimal.Zero,
		FirstPaymentsAmount: decimal.Zero,
	}
}

// Add returns the field-wise sum of two aggregates
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Collected:           s.Collected.Add(o.Collected),
		PayingDebtors:       s.PayingDebtors + o.PayingDebtors,
		LiquidationsTotal:   s.LiquidationsTotal.Add(o.LiquidationsTotal),
		LiquidatedDebtors:   s.LiquidatedDebtors + o.LiquidatedDebtors,
		NonPaying:           s.NonPaying + o.NonPaying,
		CreditsCount:        s.CreditsCount + o.CreditsCount,
		CreditsAmount:       s.CreditsAmount.Add(o.CreditsAmount),
		FirstPaymentsCount:  s.FirstPaymentsCount + o.FirstPaymentsCount,
		FirstPaymentsAmount: s.FirstPaymentsAmount.Add(o.FirstPaymentsAmount),
		NewDebtors:          s.NewDebtors + o.NewDebtors,
		ActiveDebtors:       s.ActiveDebtors + o.ActiveDebtors,
	}
}

// Cut is an immutable daily reconciliation snapshot for one collector
type Cut struct {
	shared.BaseEntity
	Folio       int64     `json:"folio"`
	CollectorID uuid.UUID `json:"collector_id"`
	Date        LocalDate `json:"date"`
	Window      Window    `json:"window"`
	Stats       Stats     `json:"stats"`
}

// NewCut creates a finalized daily cut
func NewCut(collectorID uuid.UUID, folio int64, date LocalDate, window Window, stats Stats, now time.Time) *Cut {
	return &Cut{
		BaseEntity:  shared.NewBaseEntityAt(now),
		Folio:       folio,
		CollectorID: collectorID,
		Date:        date,
		Window:      window,
		Stats:       stats,
	}
}

// PreCut is a provisional snapshot of a still-open day. Later pre-cuts
// supersede earlier ones and all are removed when the day is finalized.
type PreCut struct {
	shared.BaseEntity
	CollectorID  uuid.UUID `json:"collector_id"`
	Date         LocalDate `json:"date"`
	Window       Window    `json:"window"`
	Stats        Stats     `json:"stats"`
	VentanillaID string    `json:"ventanilla_id,omitempty"` // cash window that received the money
	Agente       string    `json:"agente,omitempty"`        // clerk at that window
}

// NewPreCut creates a draft snapshot
func NewPreCut(collectorID uuid.UUID, date LocalDate, window Window, stats Stats, ventanillaID, agente string, now time.Time) *PreCut {
	return &PreCut{
		BaseEntity:   shared.NewBaseEntityAt(now),
		CollectorID:  collectorID,
		Date:         date,
		Window:       window,
		Stats:        stats,
		VentanillaID: ventanillaID,
		Agente:       agente,
	}
}

// Expenses are the operator-entered deductions of a weekly cut
type Expenses struct {
	ComisionCobro  decimal.Decimal `json:"comision_cobro"`
	ComisionVentas decimal.Decimal `json:"comision_ventas"`
	Gastos         decimal.Decimal `json:"gastos"`
}

// Validate rejects negative deductions
func (e Expenses) Validate() error {
	if e.ComisionCobro.IsNegative() || e.ComisionVentas.IsNegative() || e.Gastos.IsNegative() {
		return shared.NewValidationError("comision_cobro, comision_ventas and gastos cannot be negative")
	}
	return nil
}

// Total returns the sum of all deductions
func (e Expenses) Total() decimal.Decimal {
	return e.ComisionCobro.Add(e.ComisionVentas).Add(e.Gastos)
}

// WeeklyCut is an immutable weekly snapshot built from the daily cuts in its range
type WeeklyCut struct {
	shared.BaseEntity
	Folio        int64           `json:"folio"`
	CollectorID  uuid.UUID       `json:"collector_id"`
	StartDate    LocalDate       `json:"start_date"`
	EndDate      LocalDate       `json:"end_date"`
	Window       Window          `json:"window"`
	Stats        Stats           `json:"stats"`
	Expenses     Expenses        `json:"expenses"`
	TotalIngreso decimal.Decimal `json:"total_ingreso"`
	TotalGasto   decimal.Decimal `json:"total_gasto"`
	SaldoFinal   decimal.Decimal `json:"saldo_final"`
	DailyCutIDs  []uuid.UUID     `json:"daily_cut_ids"`
}

// NewWeeklyCut sums the daily cuts contained in the window and settles the
// week's balance against the entered expenses
func NewWeeklyCut(collectorID uuid.UUID, folio int64, startDate, endDate LocalDate, window Window, dailyCuts []Cut, expenses Expenses, now time.Time) (*WeeklyCut, error) {
	if err := expenses.Validate(); err != nil {
		return nil, err
	}
	stats, ids := SumDailyCuts(window, dailyCuts)
	income, outgo, balance := SettleWeek(stats, expenses)
	return &WeeklyCut{
		BaseEntity:   shared.NewBaseEntityAt(now),
		Folio:        folio,
		CollectorID:  collectorID,
		StartDate:    startDate,
		EndDate:      endDate,
		Window:       window,
		Stats:        stats,
		Expenses:     expenses,
		TotalIngreso: income,
		TotalGasto:   outgo,
		SaldoFinal:   balance,
		DailyCutIDs:  ids,
	}, nil
}
