package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appreconciliation "github.com/cobranza/backend/internal/application/reconciliation"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	mayFirst  = reconciliation.LocalDate{Year: 2024, Month: time.May, Day: 1}
	dayWindow = reconciliation.NewWindow(
		time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC),
	)
)

func newCutRouter(svc *MockCutService, collectors CollectorLookup, engine *gin.Engine, opts ...CutHandlerOption) *gin.Engine {
	h := NewCutHandler(svc, collectors, mexicoCity, opts...)
	engine.POST("/precuts", h.CreatePreCut)
	engine.GET("/precuts/collector/:collectorId/latest", h.LatestPreCut)
	engine.POST("/cuts/daily", h.FinalizeDailyCut)
	engine.POST("/cuts/daily/manual", h.FinalizeManualDailyCut)
	engine.GET("/cuts/daily/collector/:collectorId", h.ListDailyCuts)
	engine.GET("/cuts/daily/collector/:collectorId/export", h.ExportDailyCuts)
	engine.POST("/cuts/weekly", h.CreateWeeklyCut)
	engine.GET("/cuts/weekly/window", h.PreviewWeek)
	engine.GET("/cuts/weekly/collector/:collectorId", h.ListWeeklyCuts)
	engine.GET("/cuts/weekly/:id/receipt", h.WeeklyReceipt)
	engine.DELETE("/cuts/:id", h.DeleteCut)
	return engine
}

func sampleStats() reconciliation.Stats {
	s := reconciliation.ZeroStats()
	s.Collected = decimal.RequireFromString("1250.50")
	s.PayingDebtors = 4
	s.ActiveDebtors = 10
	s.NonPaying = 6
	return s
}

func TestCutHandler_FinalizeDailyCut(t *testing.T) {
	collectorID := uuid.New()

	t.Run("created with local window", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		cut := reconciliation.NewCut(collectorID, 1784467532908544, mayFirst, dayWindow, sampleStats(), dayWindow.End)
		svc.On("FinalizeDailyCut", mock.Anything, collectorID).Return(cut, nil)

		w := doJSON(t, r, http.MethodPost, "/cuts/daily", map[string]any{"collector_id": collectorID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"folio":"1784467532908544"`)
		assert.Contains(t, w.Body.String(), `"start":"2024-05-01T00:00:00-06:00"`)
		assert.Contains(t, w.Body.String(), `"cobranza_total":"1250.5"`)

		var got CutResponse
		decode(t, w, &got)
		assert.Equal(t, "2024-05-01", got.Date)
		assert.Equal(t, 6, got.Stats.NonPaying)
	})

	t.Run("second finalization conflicts", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		svc.On("FinalizeDailyCut", mock.Anything, collectorID).
			Return(nil, shared.ErrDuplicateCut.WithDetail("kind", "daily"))

		w := doJSON(t, r, http.MethodPost, "/cuts/daily", map[string]any{"collector_id": collectorID})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, shared.CodeDuplicateCut, decode(t, w, nil).Error.Code)
	})

	t.Run("manual cut needs a valid date", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))

		w := doJSON(t, r, http.MethodPost, "/cuts/daily/manual", map[string]any{"collector_id": collectorID, "date": "01/05/2024"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		svc.On("FinalizeManualDailyCut", mock.Anything, collectorID, "2099-01-01").
			Return(nil, shared.NewInvalidDateError("date 2099-01-01 is in the future"))
		w = doJSON(t, r, http.MethodPost, "/cuts/daily/manual", map[string]any{"collector_id": collectorID, "date": "2099-01-01"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeInvalidDate, decode(t, w, nil).Error.Code)

		cut := reconciliation.NewCut(collectorID, 2, mayFirst, dayWindow, reconciliation.ZeroStats(), dayWindow.End)
		svc.On("FinalizeManualDailyCut", mock.Anything, collectorID, "2024-05-01").Return(cut, nil)
		w = doJSON(t, r, http.MethodPost, "/cuts/daily/manual", map[string]any{"collector_id": collectorID, "date": "2024-05-01"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestCutHandler_CreatePreCut(t *testing.T) {
	collectorID := uuid.New()
	svc := new(MockCutService)
	r := newCutRouter(svc, nil, newTestEngine(nil))

	pc := reconciliation.NewPreCut(collectorID, mayFirst, dayWindow, sampleStats(), "V-03", "Laura", dayWindow.Start.Add(5*time.Hour))
	svc.On("CreatePreCut", mock.Anything, appreconciliation.CreatePreCutInput{
		CollectorID: collectorID, VentanillaID: "V-03", Agente: "Laura",
	}).Return(pc, nil)
	svc.On("LatestPreCut", mock.Anything, collectorID).Return(pc, nil)

	w := doJSON(t, r, http.MethodPost, "/precuts", map[string]any{
		"collector_id": collectorID, "ventanilla_id": "V-03", "agente": "Laura",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/precuts/collector/"+collectorID.String()+"/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got PreCutResponse
	decode(t, w, &got)
	assert.Equal(t, pc.ID, got.ID)
	assert.Equal(t, "V-03", got.VentanillaID)
	svc.AssertExpectations(t)
}

func TestCutHandler_CreateWeeklyCut(t *testing.T) {
	collectorID := uuid.New()
	start := reconciliation.LocalDate{Year: 2024, Month: time.May, Day: 2}
	end := start.AddDays(6)
	weekWindow := reconciliation.NewWindow(
		time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 9, 6, 0, 0, 0, time.UTC),
	)
	expenses := reconciliation.Expenses{
		ComisionCobro:  decimal.NewFromInt(150),
		ComisionVentas: decimal.NewFromInt(80),
		Gastos:         decimal.NewFromInt(40),
	}
	matchesInput := func(start, end string) any {
		return mock.MatchedBy(func(in appreconciliation.CreateWeeklyCutInput) bool {
			return in.CollectorID == collectorID && in.StartDate == start && in.EndDate == end &&
				in.Expenses.Total().Equal(decimal.NewFromInt(270))
		})
	}
	body := func(extra map[string]any) map[string]any {
		m := map[string]any{
			"collector_id": collectorID, "comision_cobro": "150", "comision_ventas": "80", "gastos": "40",
		}
		for k, v := range extra {
			m[k] = v
		}
		return m
	}
	wc, err := reconciliation.NewWeeklyCut(collectorID, 7, start, end, weekWindow, nil, expenses, weekWindow.End)
	require.NoError(t, err)

	t.Run("explicit range", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		svc.On("CreateWeeklyCut", mock.Anything, matchesInput("2024-05-02", "2024-05-08")).Return(wc, nil)

		w := doJSON(t, r, http.MethodPost, "/cuts/weekly", body(map[string]any{"start_date": "2024-05-02", "end_date": "2024-05-08"}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got WeeklyCutResponse
		decode(t, w, &got)
		assert.Equal(t, "2024-05-02", got.StartDate)
		assert.True(t, got.SaldoFinal.Equal(decimal.NewFromInt(-270)))
		assert.NotNil(t, got.DailyCutIDs)
	})

	t.Run("single date resolves its week", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		svc.On("PreviewWeek", "2024-05-05").Return(&appreconciliation.WeekPreview{StartDate: start, EndDate: end, Window: weekWindow}, nil)
		svc.On("CreateWeeklyCut", mock.Anything, matchesInput("2024-05-02", "2024-05-08")).Return(wc, nil)

		w := doJSON(t, r, http.MethodPost, "/cuts/weekly", body(map[string]any{"date": "2024-05-05"}))
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("date and range together are rejected", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		w := doJSON(t, r, http.MethodPost, "/cuts/weekly", body(map[string]any{"date": "2024-05-05", "start_date": "2024-05-02"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeValidation, decode(t, w, nil).Error.Code)
	})

	t.Run("negative expenses are field errors", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		w := doJSON(t, r, http.MethodPost, "/cuts/weekly", body(map[string]any{"gastos": "-1"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w, nil)
		require.Len(t, env.Error.Fields, 1)
		assert.Equal(t, "gastos", env.Error.Fields[0].Field)
	})

	t.Run("overlapping week reports the conflict", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(nil))
		svc.On("CreateWeeklyCut", mock.Anything, mock.Anything).Return(nil,
			shared.ErrOverlappingRange.WithDetail("start_date", "2024-05-02").WithDetail("end_date", "2024-05-08"))

		w := doJSON(t, r, http.MethodPost, "/cuts/weekly", body(map[string]any{"start_date": "2024-05-03", "end_date": "2024-05-09"}))
		assert.Equal(t, http.StatusConflict, w.Code)
		env := decode(t, w, nil)
		assert.Equal(t, shared.CodeOverlapping, env.Error.Code)
		assert.Equal(t, "2024-05-02", env.Error.Details["start_date"])
	})
}

func TestCutHandler_PreviewWeek(t *testing.T) {
	svc := new(MockCutService)
	r := newCutRouter(svc, nil, newTestEngine(nil))
	start := reconciliation.LocalDate{Year: 2024, Month: time.May, Day: 2}
	svc.On("PreviewWeek", "").Return(&appreconciliation.WeekPreview{
		StartDate: start,
		EndDate:   start.AddDays(6),
		Window: reconciliation.NewWindow(
			time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 9, 6, 0, 0, 0, time.UTC)),
	}, nil)
	svc.On("PreviewWeek", "bad").Return(nil, shared.NewInvalidDateError("invalid date %q, expected YYYY-MM-DD", "bad"))

	w := doJSON(t, r, http.MethodGet, "/cuts/weekly/window", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got WeekPreviewResponse
	decode(t, w, &got)
	assert.Equal(t, "2024-05-08", got.EndDate)
	assert.Equal(t, 0, got.Window.End.Hour())

	w = doJSON(t, r, http.MethodGet, "/cuts/weekly/window?date=bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCutHandler_Lists(t *testing.T) {
	collectorID := uuid.New()
	svc := new(MockCutService)
	r := newCutRouter(svc, nil, newTestEngine(nil))

	cuts := []reconciliation.Cut{
		*reconciliation.NewCut(collectorID, 2, mayFirst.AddDays(1), dayWindow, reconciliation.ZeroStats(), dayWindow.End),
		*reconciliation.NewCut(collectorID, 1, mayFirst, dayWindow, reconciliation.ZeroStats(), dayWindow.End),
	}
	svc.On("ListDailyCuts", mock.Anything, collectorID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == maxPageSize
	})).Return(shared.NewPaginated(cuts, 102, 2, maxPageSize), nil)
	svc.On("ListWeeklyCuts", mock.Anything, collectorID, mock.Anything).
		Return(shared.NewPaginated([]reconciliation.WeeklyCut{}, 0, 1, 20), nil)

	w := doJSON(t, r, http.MethodGet, "/cuts/daily/collector/"+collectorID.String()+"?page=2&page_size=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []CutResponse
	env := decode(t, w, &got)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].Folio)
	assert.Equal(t, int64(102), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	w = doJSON(t, r, http.MethodGet, "/cuts/weekly/collector/"+collectorID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("other collector is forbidden", func(t *testing.T) {
		r := newCutRouter(svc, nil, newTestEngine(collectorClaims(uuid.New())))
		w := doJSON(t, r, http.MethodGet, "/cuts/daily/collector/"+collectorID.String(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

type stubExporter struct {
	got []*reconciliation.Cut
}

func (s *stubExporter) DailyCuts(cuts []*reconciliation.Cut) ([]byte, error) {
	s.got = cuts
	return []byte("xlsx"), nil
}

func TestCutHandler_ExportDailyCuts(t *testing.T) {
	collectorID := uuid.New()

	t.Run("disabled", func(t *testing.T) {
		r := newCutRouter(new(MockCutService), nil, newTestEngine(nil))
		w := doJSON(t, r, http.MethodGet, "/cuts/daily/collector/"+collectorID.String()+"/export", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeUnavailable, decode(t, w, nil).Error.Code)
	})

	t.Run("collects every page", func(t *testing.T) {
		svc := new(MockCutService)
		exp := &stubExporter{}
		r := newCutRouter(svc, nil, newTestEngine(nil), WithExporter(exp))

		page := func(n int) []reconciliation.Cut {
			return []reconciliation.Cut{*reconciliation.NewCut(collectorID, int64(n), mayFirst, dayWindow, reconciliation.ZeroStats(), dayWindow.End)}
		}
		svc.On("ListDailyCuts", mock.Anything, collectorID, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 1 })).
			Return(shared.NewPaginated(page(1), exportPageSize+1, 1, exportPageSize), nil)
		svc.On("ListDailyCuts", mock.Anything, collectorID, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 2 })).
			Return(shared.NewPaginated(page(2), exportPageSize+1, 2, exportPageSize), nil)

		w := doJSON(t, r, http.MethodGet, "/cuts/daily/collector/"+collectorID.String()+"/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "xlsx", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Disposition"), "cortes-"+collectorID.String()+".xlsx")
		require.Len(t, exp.got, 2)
		assert.Equal(t, int64(2), exp.got[1].Folio)
	})
}

type stubPrinter struct {
	name string
	err  error
}

func (s *stubPrinter) WeeklyReceipt(_ context.Context, _ *reconciliation.WeeklyCut, name string) ([]byte, error) {
	s.name = name
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestCutHandler_WeeklyReceipt(t *testing.T) {
	collectorID := uuid.New()
	wc, err := reconciliation.NewWeeklyCut(collectorID, 42, mayFirst, mayFirst.AddDays(6), dayWindow, nil, reconciliation.Expenses{}, dayWindow.End)
	require.NoError(t, err)

	collector := &collection.Collector{Name: "Juan Pérez"}
	collector.ID = collectorID
	collectors := new(MockCollectorService)
	collectors.On("Get", mock.Anything, collectorID).Return(collector, nil)

	svc := new(MockCutService)
	svc.On("GetWeeklyCut", mock.Anything, wc.ID).Return(wc, nil)

	t.Run("disabled", func(t *testing.T) {
		r := newCutRouter(svc, collectors, newTestEngine(nil))
		w := doJSON(t, r, http.MethodGet, "/cuts/weekly/"+wc.ID.String()+"/receipt", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("renders pdf", func(t *testing.T) {
		printer := &stubPrinter{}
		r := newCutRouter(svc, collectors, newTestEngine(nil), WithReceiptPrinter(printer))
		req := httptest.NewRequest(http.MethodGet, "/cuts/weekly/"+wc.ID.String()+"/receipt", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "corte-semanal-42.pdf")
		assert.Equal(t, "Juan Pérez", printer.name)
	})

	t.Run("renderer failure is a 500", func(t *testing.T) {
		r := newCutRouter(svc, collectors, newTestEngine(nil), WithReceiptPrinter(&stubPrinter{err: errors.New("chrome crashed")}))
		w := doJSON(t, r, http.MethodGet, "/cuts/weekly/"+wc.ID.String()+"/receipt", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCutHandler_DeleteCut(t *testing.T) {
	svc := new(MockCutService)
	r := newCutRouter(svc, nil, newTestEngine(nil))

	id, missing := uuid.New(), uuid.New()
	svc.On("DeleteCut", mock.Anything, id).Return(appreconciliation.RecordWeeklyCut, nil)
	svc.On("DeleteCut", mock.Anything, missing).Return("", shared.NewNotFoundError("cut", missing))

	w := doJSON(t, r, http.MethodDelete, "/cuts/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got DeleteCutResponse
	decode(t, w, &got)
	assert.Equal(t, "weekly_cut", got.Kind)

	w = doJSON(t, r, http.MethodDelete, "/cuts/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	t.Run("collector tokens cannot delete", func(t *testing.T) {
		svc := new(MockCutService)
		r := newCutRouter(svc, nil, newTestEngine(collectorClaims(uuid.New())))

		w := doJSON(t, r, http.MethodDelete, "/cuts/"+id.String(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, decode(t, w, nil).Error.Code)
		svc.AssertNotCalled(t, "DeleteCut", mock.Anything, mock.Anything)
	})
}
