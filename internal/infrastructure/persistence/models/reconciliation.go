package models

import (
	"time"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// StatsColumns holds the aggregate columns shared by cuts, weekly cuts and pre-cuts.
type StatsColumns struct {
	CobranzaTotal       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DeudoresCobrados    int             `gorm:"not null;default:0"`
	LiquidacionesTotal  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DeudoresLiquidados  int             `gorm:"not null;default:0"`
	NoPagosTotal        int             `gorm:"not null;default:0"`
	CreditosTotal       int             `gorm:"not null;default:0"`
	CreditosTotalMonto  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PrimerosPagosTotal  int             `gorm:"not null;default:0"`
	PrimerosPagosMontos decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NuevosDeudores      int             `gorm:"not null;default:0"`
	DeudoresTotales     int             `gorm:"not null;default:0"`
}

func statsColumnsFrom(s reconciliation.Stats) StatsColumns {
	return StatsColumns{
		CobranzaTotal:       s.Collected,
		DeudoresCobrados:    s.PayingDebtors,
		LiquidacionesTotal:  s.LiquidationsTotal,
		DeudoresLiquidados:  s.LiquidatedDebtors,
		NoPagosTotal:        s.NonPaying,
		CreditosTotal:       s.CreditsCount,
		CreditosTotalMonto:  s.CreditsAmount,
		PrimerosPagosTotal:  s.FirstPaymentsCount,
		PrimerosPagosMontos: s.FirstPaymentsAmount,
		NuevosDeudores:      s.NewDebtors,
		DeudoresTotales:     s.ActiveDebtors,
	}
}

func (c StatsColumns) toDomain() reconciliation.Stats {
	return reconciliation.Stats{
		Collected:           c.CobranzaTotal,
		PayingDebtors:       c.DeudoresCobrados,
		LiquidationsTotal:   c.LiquidacionesTotal,
		LiquidatedDebtors:   c.DeudoresLiquidados,
		NonPaying:           c.NoPagosTotal,
		CreditsCount:        c.CreditosTotal,
		CreditsAmount:       c.CreditosTotalMonto,
		FirstPaymentsCount:  c.PrimerosPagosTotal,
		FirstPaymentsAmount: c.PrimerosPagosMontos,
		NewDebtors:          c.NuevosDeudores,
		ActiveDebtors:       c.DeudoresTotales,
	}
}

// dates are stored as UTC midnight of the local calendar day
func dateColumn(d reconciliation.LocalDate) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func localDate(t time.Time) reconciliation.LocalDate {
	t = t.UTC()
	return reconciliation.LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// CutModel is the persistence model for a finalized daily cut.
// (collector_id, window_start) is unique so a window is finalized at most once.
type CutModel struct {
	BaseModel
	StatsColumns `gorm:"embedded"`

	Folio       int64     `gorm:"not null"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cuts_collector_window,priority:1"`
	Date        time.Time `gorm:"type:date;not null"`
	WindowStart time.Time `gorm:"not null;uniqueIndex:idx_cuts_collector_window,priority:2"`
	WindowEnd   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CutModel) TableName() string {
	return "cuts"
}

// ToDomain converts the persistence model to a domain Cut.
func (m *CutModel) ToDomain() *reconciliation.Cut {
	return &reconciliation.Cut{
		BaseEntity:  m.BaseModel.ToDomain(),
		Folio:       m.Folio,
		CollectorID: m.CollectorID,
		Date:        localDate(m.Date),
		Window:      reconciliation.NewWindow(m.WindowStart, m.WindowEnd),
		Stats:       m.StatsColumns.toDomain(),
	}
}

// CutModelFromDomain creates a persistence model from a domain Cut.
func CutModelFromDomain(c *reconciliation.Cut) *CutModel {
	m := &CutModel{
		Folio:        c.Folio,
		CollectorID:  c.CollectorID,
		Date:         dateColumn(c.Date),
		WindowStart:  c.Window.Start.UTC(),
		WindowEnd:    c.Window.End.UTC(),
		StatsColumns: statsColumnsFrom(c.Stats),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// PreCutModel is the persistence model for a provisional pre-cut.
type PreCutModel struct {
	BaseModel
	StatsColumns `gorm:"embedded"`

	CollectorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Date         time.Time `gorm:"type:date;not null"`
	WindowStart  time.Time `gorm:"not null"`
	WindowEnd    time.Time `gorm:"not null"`
	VentanillaID string    `gorm:"type:varchar(50)"`
	Agente       string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PreCutModel) TableName() string {
	return "pre_cuts"
}

// ToDomain converts the persistence model to a domain PreCut.
func (m *PreCutModel) ToDomain() *reconciliation.PreCut {
	return &reconciliation.PreCut{
		BaseEntity:   m.BaseModel.ToDomain(),
		CollectorID:  m.CollectorID,
		Date:         localDate(m.Date),
		Window:       reconciliation.NewWindow(m.WindowStart, m.WindowEnd),
		Stats:        m.StatsColumns.toDomain(),
		VentanillaID: m.VentanillaID,
		Agente:       m.Agente,
	}
}

// PreCutModelFromDomain creates a persistence model from a domain PreCut.
func PreCutModelFromDomain(p *reconciliation.PreCut) *PreCutModel {
	m := &PreCutModel{
		CollectorID:  p.CollectorID,
		Date:         dateColumn(p.Date),
		WindowStart:  p.Window.Start.UTC(),
		WindowEnd:    p.Window.End.UTC(),
		VentanillaID: p.VentanillaID,
		Agente:       p.Agente,
		StatsColumns: statsColumnsFrom(p.Stats),
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// WeeklyCutModel is the persistence model for a weekly cut.
type WeeklyCutModel struct {
	BaseModel
	StatsColumns `gorm:"embedded"`

	Folio          int64                          `gorm:"not null"`
	CollectorID    uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_cuts_collector_start,priority:1"`
	StartDate      time.Time                      `gorm:"type:date;not null;uniqueIndex:idx_weekly_cuts_collector_start,priority:2"`
	EndDate        time.Time                      `gorm:"type:date;not null"`
	WindowStart    time.Time                      `gorm:"not null"`
	WindowEnd      time.Time                      `gorm:"not null"`
	ComisionCobro  decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0"`
	ComisionVentas decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0"`
	Gastos         decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0"`
	TotalIngreso   decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0"`
	TotalGasto     decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0"`
	SaldoFinal     decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0"`
	DailyCutIDs    datatypes.JSONSlice[uuid.UUID] `gorm:"column:daily_cut_ids;type:jsonb"`
}

// TableName returns the table name for GORM
func (WeeklyCutModel) TableName() string {
	return "weekly_cuts"
}

// ToDomain converts the persistence model to a domain WeeklyCut.
func (m *WeeklyCutModel) ToDomain() *reconciliation.WeeklyCut {
	ids := make([]uuid.UUID, len(m.DailyCutIDs))
	copy(ids, m.DailyCutIDs)
	return &reconciliation.WeeklyCut{
		BaseEntity:  m.BaseModel.ToDomain(),
		Folio:       m.Folio,
		CollectorID: m.CollectorID,
		StartDate:   localDate(m.StartDate),
		EndDate:     localDate(m.EndDate),
		Window:      reconciliation.NewWindow(m.WindowStart, m.WindowEnd),
		Stats:       m.StatsColumns.toDomain(),
		Expenses: reconciliation.Expenses{
			ComisionCobro:  m.ComisionCobro,
			ComisionVentas: m.ComisionVentas,
			Gastos:         m.Gastos,
		},
		TotalIngreso: m.TotalIngreso,
		TotalGasto:   m.TotalGasto,
		SaldoFinal:   m.SaldoFinal,
		DailyCutIDs:  ids,
	}
}

// WeeklyCutModelFromDomain creates a persistence model from a domain WeeklyCut.
func WeeklyCutModelFromDomain(w *reconciliation.WeeklyCut) *WeeklyCutModel {
	ids := w.DailyCutIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	m := &WeeklyCutModel{
		Folio:          w.Folio,
		CollectorID:    w.CollectorID,
		StartDate:      dateColumn(w.StartDate),
		EndDate:        dateColumn(w.EndDate),
		WindowStart:    w.Window.Start.UTC(),
		WindowEnd:      w.Window.End.UTC(),
		StatsColumns:   statsColumnsFrom(w.Stats),
		ComisionCobro:  w.Expenses.ComisionCobro,
		ComisionVentas: w.Expenses.ComisionVentas,
		Gastos:         w.Expenses.Gastos,
		TotalIngreso:   w.TotalIngreso,
		TotalGasto:     w.TotalGasto,
		SaldoFinal:     w.SaldoFinal,
		DailyCutIDs:    datatypes.NewJSONSlice(ids),
	}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}
