package handler

import (
	"time"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinalizeDailyCutRequest closes the collector's current day
// @Description Request body for finalizing the current daily cut
type FinalizeDailyCutRequest struct {
	CollectorID string `json:"collector_id" binding:"required,uuid" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
}

// FinalizeManualCutRequest closes a past calendar day
// @Description Request body for finalizing the daily cut of a given date
type FinalizeManualCutRequest struct {
	CollectorID string `json:"collector_id" binding:"required,uuid" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Date        string `json:"date" binding:"required,local_date" example:"2024-05-01"`
}

// CreateWeeklyCutRequest builds a weekly cut. Either start_date and
// end_date, or a single date inside the week, or neither for the last
// completed week.
// @Description Request body for creating a weekly cut
type CreateWeeklyCutRequest struct {
	CollectorID    string          `json:"collector_id" binding:"required,uuid" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	StartDate      string          `json:"start_date" binding:"omitempty,local_date" example:"2024-05-02"`
	EndDate        string          `json:"end_date" binding:"omitempty,local_date" example:"2024-05-08"`
	Date           string          `json:"date" binding:"omitempty,local_date" example:"2024-05-05"`
	ComisionCobro  decimal.Decimal `json:"comision_cobro" binding:"decimal_gte0" swaggertype:"string" example:"150.00"`
	ComisionVentas decimal.Decimal `json:"comision_ventas" binding:"decimal_gte0" swaggertype:"string" example:"80.00"`
	Gastos         decimal.Decimal `json:"gastos" binding:"decimal_gte0" swaggertype:"string" example:"40.00"`
}

// CreatePreCutRequest snapshots the open day
// @Description Request body for creating a pre-cut
type CreatePreCutRequest struct {
	CollectorID  string `json:"collector_id" binding:"required,uuid" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	VentanillaID string `json:"ventanilla_id" binding:"max=50" example:"V-03"`
	Agente       string `json:"agente" binding:"max=100" example:"Laura"`
}

// WindowResponse is a half-open [start, end) interval in the operating timezone
type WindowResponse struct {
	Start time.Time `json:"start" example:"2024-05-01T00:00:00-06:00"`
	End   time.Time `json:"end" example:"2024-05-02T00:00:00-06:00"`
}

// CutResponse represents a finalized daily cut
// @Description Daily cut
type CutResponse struct {
	ID          uuid.UUID            `json:"id"`
	Folio       int64                `json:"folio,string" example:"1784467532908544"`
	CollectorID uuid.UUID            `json:"collector_id"`
	Date        string               `json:"date" example:"2024-05-01"`
	Window      WindowResponse       `json:"window"`
	Stats       reconciliation.Stats `json:"stats"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PreCutResponse represents a provisional snapshot
// @Description Pre-cut
type PreCutResponse struct {
	ID           uuid.UUID            `json:"id"`
	CollectorID  uuid.UUID            `json:"collector_id"`
	Date         string               `json:"date" example:"2024-05-01"`
	Window       WindowResponse       `json:"window"`
	Stats        reconciliation.Stats `json:"stats"`
	VentanillaID string               `json:"ventanilla_id,omitempty"`
	Agente       string               `json:"agente,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// WeeklyCutResponse represents a weekly settlement
// @Description Weekly cut
type WeeklyCutResponse struct {
	ID           uuid.UUID               `json:"id"`
	Folio        int64                   `json:"folio,string" example:"1784467532908545"`
	CollectorID  uuid.UUID               `json:"collector_id"`
	StartDate    string                  `json:"start_date" example:"2024-05-02"`
	EndDate      string                  `json:"end_date" example:"2024-05-08"`
	Window       WindowResponse          `json:"window"`
	Stats        reconciliation.Stats    `json:"stats"`
	Expenses     reconciliation.Expenses `json:"expenses"`
	TotalIngreso decimal.Decimal         `json:"total_ingreso" swaggertype:"string" example:"5250.00"`
	TotalGasto   decimal.Decimal         `json:"total_gasto" swaggertype:"string" example:"270.00"`
	SaldoFinal   decimal.Decimal         `json:"saldo_final" swaggertype:"string" example:"4980.00"`
	DailyCutIDs  []uuid.UUID             `json:"daily_cut_ids"`
	CreatedAt    time.Time               `json:"created_at"`
}

// WeekPreviewResponse describes the week a date belongs to
// @Description Resolved weekly window
type WeekPreviewResponse struct {
	StartDate string         `json:"start_date" example:"2024-05-02"`
	EndDate   string         `json:"end_date" example:"2024-05-08"`
	Window    WindowResponse `json:"window"`
}

// DeleteCutResponse reports which record was removed
type DeleteCutResponse struct {
	ID   uuid.UUID `json:"id"`
	Kind string    `json:"kind" example:"daily_cut"`
}

func toWindowResponse(w reconciliation.Window, loc *time.Location) WindowResponse {
	return WindowResponse{Start: w.Start.In(loc), End: w.End.In(loc)}
}

func toCutResponse(c *reconciliation.Cut, loc *time.Location) CutResponse {
	return CutResponse{
		ID:          c.ID,
		Folio:       c.Folio,
		CollectorID: c.CollectorID,
		Date:        c.Date.String(),
		Window:      toWindowResponse(c.Window, loc),
		Stats:       c.Stats,
		CreatedAt:   c.CreatedAt.In(loc),
	}
}

func toPreCutResponse(p *reconciliation.PreCut, loc *time.Location) PreCutResponse {
	return PreCutResponse{
		ID:           p.ID,
		CollectorID:  p.CollectorID,
		Date:         p.Date.String(),
		Window:       toWindowResponse(p.Window, loc),
		Stats:        p.Stats,
		VentanillaID: p.VentanillaID,
		Agente:       p.Agente,
		CreatedAt:    p.CreatedAt.In(loc),
	}
}

func toWeeklyCutResponse(wc *reconciliation.WeeklyCut, loc *time.Location) WeeklyCutResponse {
	ids := wc.DailyCutIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return WeeklyCutResponse{
		ID:           wc.ID,
		Folio:        wc.Folio,
		CollectorID:  wc.CollectorID,
		StartDate:    wc.StartDate.String(),
		EndDate:      wc.EndDate.String(),
		Window:       toWindowResponse(wc.Window, loc),
		Stats:        wc.Stats,
		Expenses:     wc.Expenses,
		TotalIngreso: wc.TotalIngreso,
		TotalGasto:   wc.TotalGasto,
		SaldoFinal:   wc.SaldoFinal,
		DailyCutIDs:  ids,
		CreatedAt:    wc.CreatedAt.In(loc),
	}
}
