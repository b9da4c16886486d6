package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	appreconciliation "github.com/cobranza/backend/internal/application/reconciliation"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const exportPageSize = 500

// CutService is the part of the reconciliation engine served over HTTP
type CutService interface {
	CreatePreCut(ctx context.Context, in appreconciliation.CreatePreCutInput) (*reconciliation.PreCut, error)
	FinalizeDailyCut(ctx context.Context, collectorID uuid.UUID) (*reconciliation.Cut, error)
	FinalizeManualDailyCut(ctx context.Context, collectorID uuid.UUID, date string) (*reconciliation.Cut, error)
	CreateWeeklyCut(ctx context.Context, in appreconciliation.CreateWeeklyCutInput) (*reconciliation.WeeklyCut, error)
	PreviewWeek(date string) (*appreconciliation.WeekPreview, error)
	ListDailyCuts(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) (shared.Paginated[reconciliation.Cut], error)
	ListWeeklyCuts(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) (shared.Paginated[reconciliation.WeeklyCut], error)
	LatestPreCut(ctx context.Context, collectorID uuid.UUID) (*reconciliation.PreCut, error)
	GetWeeklyCut(ctx context.Context, id uuid.UUID) (*reconciliation.WeeklyCut, error)
	DeleteCut(ctx context.Context, id uuid.UUID) (string, error)
}

// CollectorLookup resolves collector names for printed documents
type CollectorLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*collection.Collector, error)
}

// CutExporter renders daily cuts as a spreadsheet
type CutExporter interface {
	DailyCuts(cuts []*reconciliation.Cut) ([]byte, error)
}

// ReceiptPrinter renders a weekly cut receipt as PDF
type ReceiptPrinter interface {
	WeeklyReceipt(ctx context.Context, wc *reconciliation.WeeklyCut, collectorName string) ([]byte, error)
}

// CutHandler serves pre-cuts, daily cuts and weekly cuts
type CutHandler struct {
	BaseHandler
	cuts       CutService
	collectors CollectorLookup
	exporter   CutExporter
	receipts   ReceiptPrinter
	loc        *time.Location
}

// CutHandlerOption configures optional CutHandler outputs
type CutHandlerOption func(*CutHandler)

// WithExporter enables the spreadsheet export endpoint
func WithExporter(e CutExporter) CutHandlerOption {
	return func(h *CutHandler) { h.exporter = e }
}

// WithReceiptPrinter enables the PDF receipt endpoint
func WithReceiptPrinter(p ReceiptPrinter) CutHandlerOption {
	return func(h *CutHandler) { h.receipts = p }
}

// NewCutHandler creates a new CutHandler. Instants are rendered in loc.
func NewCutHandler(cuts CutService, collectors CollectorLookup, loc *time.Location, opts ...CutHandlerOption) *CutHandler {
	h := &CutHandler{cuts: cuts, collectors: collectors, loc: loc}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// requestCollector parses a collector_id from a request body and checks access
func (h *CutHandler) requestCollector(c *gin.Context, raw string) (uuid.UUID, bool) {
	id := uuid.MustParse(raw) // validated by binding
	if !canAccess(c, id) {
		h.Forbidden(c)
		return uuid.Nil, false
	}
	return id, true
}

// CreatePreCut godoc
// @ID           createPreCut
// @Summary      Create a pre-cut
// @Description  Snapshot the collector's open day. Pre-cuts never block each other.
// @Tags         precuts
// @Accept       json
// @Produce      json
// @Param        request body CreatePreCutRequest true "Pre-cut request"
// @Success      201 {object} APIResponse[PreCutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /precuts [post]
func (h *CutHandler) CreatePreCut(c *gin.Context) {
	var req CreatePreCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collectorID, ok := h.requestCollector(c, req.CollectorID)
	if !ok {
		return
	}

	pc, err := h.cuts.CreatePreCut(c.Request.Context(), appreconciliation.CreatePreCutInput{
		CollectorID:  collectorID,
		VentanillaID: req.VentanillaID,
		Agente:       req.Agente,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPreCutResponse(pc, h.loc))
}

// LatestPreCut godoc
// @ID           getLatestPreCut
// @Summary      Latest pre-cut of a collector
// @Tags         precuts
// @Produce      json
// @Param        collectorId path string true "Collector ID" format(uuid)
// @Success      200 {object} APIResponse[PreCutResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /precuts/collector/{collectorId}/latest [get]
func (h *CutHandler) LatestPreCut(c *gin.Context) {
	collectorID, ok := h.collectorParam(c, "collectorId")
	if !ok {
		return
	}
	pc, err := h.cuts.LatestPreCut(c.Request.Context(), collectorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPreCutResponse(pc, h.loc))
}

// FinalizeDailyCut godoc
// @ID           finalizeDailyCut
// @Summary      Finalize the current daily cut
// @Description  Close the window since the last daily cut. Fails with DUPLICATE_CUT when it was already closed.
// @Tags         cuts
// @Accept       json
// @Produce      json
// @Param        request body FinalizeDailyCutRequest true "Collector"
// @Success      201 {object} APIResponse[CutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/daily [post]
func (h *CutHandler) FinalizeDailyCut(c *gin.Context) {
	var req FinalizeDailyCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collectorID, ok := h.requestCollector(c, req.CollectorID)
	if !ok {
		return
	}

	cut, err := h.cuts.FinalizeDailyCut(c.Request.Context(), collectorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCutResponse(cut, h.loc))
}

// FinalizeManualDailyCut godoc
// @ID           finalizeManualDailyCut
// @Summary      Finalize the daily cut of a calendar date
// @Tags         cuts
// @Accept       json
// @Produce      json
// @Param        request body FinalizeManualCutRequest true "Collector and date"
// @Success      201 {object} APIResponse[CutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/daily/manual [post]
func (h *CutHandler) FinalizeManualDailyCut(c *gin.Context) {
	var req FinalizeManualCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collectorID, ok := h.requestCollector(c, req.CollectorID)
	if !ok {
		return
	}

	cut, err := h.cuts.FinalizeManualDailyCut(c.Request.Context(), collectorID, req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCutResponse(cut, h.loc))
}

// CreateWeeklyCut godoc
// @ID           createWeeklyCut
// @Summary      Create a weekly cut
// @Description  Sum the daily cuts of the week and settle them against the expenses. Overlapping weeks fail with OVERLAPPING_RANGE.
// @Tags         cuts
// @Accept       json
// @Produce      json
// @Param        request body CreateWeeklyCutRequest true "Weekly cut request"
// @Success      201 {object} APIResponse[WeeklyCutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/weekly [post]
func (h *CutHandler) CreateWeeklyCut(c *gin.Context) {
	var req CreateWeeklyCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collectorID, ok := h.requestCollector(c, req.CollectorID)
	if !ok {
		return
	}

	start, end := req.StartDate, req.EndDate
	if req.Date != "" {
		if start != "" || end != "" {
			h.HandleError(c, shared.NewValidationError("date cannot be combined with start_date or end_date"))
			return
		}
		week, err := h.cuts.PreviewWeek(req.Date)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		start, end = week.StartDate.String(), week.EndDate.String()
	}

	wc, err := h.cuts.CreateWeeklyCut(c.Request.Context(), appreconciliation.CreateWeeklyCutInput{
		CollectorID: collectorID,
		StartDate:   start,
		EndDate:     end,
		Expenses: reconciliation.Expenses{
			ComisionCobro:  req.ComisionCobro,
			ComisionVentas: req.ComisionVentas,
			Gastos:         req.Gastos,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toWeeklyCutResponse(wc, h.loc))
}

// PreviewWeek godoc
// @ID           previewWeeklyWindow
// @Summary      Resolve the week of a date
// @Tags         cuts
// @Produce      json
// @Param        date query string false "Date inside the week (YYYY-MM-DD), today when omitted"
// @Success      200 {object} APIResponse[WeekPreviewResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/weekly/window [get]
func (h *CutHandler) PreviewWeek(c *gin.Context) {
	week, err := h.cuts.PreviewWeek(c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, WeekPreviewResponse{
		StartDate: week.StartDate.String(),
		EndDate:   week.EndDate.String(),
		Window:    toWindowResponse(week.Window, h.loc),
	})
}

// ListDailyCuts godoc
// @ID           listDailyCuts
// @Summary      List daily cuts of a collector
// @Tags         cuts
// @Produce      json
// @Param        collectorId path string true "Collector ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]CutResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/daily/collector/{collectorId} [get]
func (h *CutHandler) ListDailyCuts(c *gin.Context) {
	collectorID, ok := h.collectorParam(c, "collectorId")
	if !ok {
		return
	}
	page, err := h.cuts.ListDailyCuts(c.Request.Context(), collectorID, pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]CutResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toCutResponse(&page.Items[i], h.loc)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// ListWeeklyCuts godoc
// @ID           listWeeklyCuts
// @Summary      List weekly cuts of a collector
// @Tags         cuts
// @Produce      json
// @Param        collectorId path string true "Collector ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]WeeklyCutResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/weekly/collector/{collectorId} [get]
func (h *CutHandler) ListWeeklyCuts(c *gin.Context) {
	collectorID, ok := h.collectorParam(c, "collectorId")
	if !ok {
		return
	}
	page, err := h.cuts.ListWeeklyCuts(c.Request.Context(), collectorID, pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]WeeklyCutResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toWeeklyCutResponse(&page.Items[i], h.loc)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// ExportDailyCuts godoc
// @ID           exportDailyCuts
// @Summary      Export a collector's daily cuts as xlsx
// @Tags         cuts
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        collectorId path string true "Collector ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/daily/collector/{collectorId}/export [get]
func (h *CutHandler) ExportDailyCuts(c *gin.Context) {
	if h.exporter == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Export is not enabled")
		return
	}
	collectorID, ok := h.collectorParam(c, "collectorId")
	if !ok {
		return
	}

	var cuts []*reconciliation.Cut
	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	for {
		page, err := h.cuts.ListDailyCuts(c.Request.Context(), collectorID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		for i := range page.Items {
			cuts = append(cuts, &page.Items[i])
		}
		if filter.Page >= page.TotalPages {
			break
		}
		filter.Page++
	}

	data, err := h.exporter.DailyCuts(cuts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("cortes-%s.xlsx", collectorID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// WeeklyReceipt godoc
// @ID           printWeeklyReceipt
// @Summary      Print a weekly cut receipt
// @Tags         cuts
// @Produce      application/pdf
// @Param        id path string true "Weekly cut ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/weekly/{id}/receipt [get]
func (h *CutHandler) WeeklyReceipt(c *gin.Context) {
	if h.receipts == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Printing is not enabled")
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	wc, err := h.cuts.GetWeeklyCut(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !canAccess(c, wc.CollectorID) {
		h.Forbidden(c)
		return
	}
	collector, err := h.collectors.Get(ctx, wc.CollectorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.receipts.WeeklyReceipt(ctx, wc, collector.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("corte-semanal-%d.pdf", wc.Folio)
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// DeleteCut godoc
// @ID           deleteCut
// @Summary      Delete a daily cut, weekly cut or pre-cut
// @Description  Removes whichever record has the ID. Balances are not touched. Administrators only.
// @Tags         cuts
// @Produce      json
// @Param        id path string true "Cut ID" format(uuid)
// @Success      200 {object} APIResponse[DeleteCutResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cuts/{id} [delete]
func (h *CutHandler) DeleteCut(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	kind, err := h.cuts.DeleteCut(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeleteCutResponse{ID: id, Kind: kind})
}
