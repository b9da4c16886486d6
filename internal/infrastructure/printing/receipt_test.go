package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/message"
)

type captureRenderer struct {
	req *RenderRequest
	err error
}

func (c *captureRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	c.req = req
	if c.err != nil {
		return nil, c.err
	}
	return &RenderResult{PDFData: []byte("%PDF-1.4")}, nil
}

func (c *captureRenderer) Close() error { return nil }

func weeklyFixture(t *testing.T) *reconciliation.WeeklyCut {
	t.Helper()
	day := reconciliation.LocalDate{Year: 2024, Month: time.May, Day: 3}
	stats := reconciliation.ZeroStats()
	stats.Collected = decimal.NewFromInt(12500)
	stats.PayingDebtors = 14
	daily := reconciliation.NewCut(uuid.New(), 1, day,
		reconciliation.NewWindow(time.Date(2024, 5, 3, 6, 0, 0, 0, time.UTC), time.Date(2024, 5, 4, 6, 0, 0, 0, time.UTC)),
		stats, time.Now())

	start := reconciliation.LocalDate{Year: 2024, Month: time.May, Day: 2}
	wc, err := reconciliation.NewWeeklyCut(daily.CollectorID, 9, start, start.AddDays(6),
		reconciliation.NewWindow(time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC), time.Date(2024, 5, 9, 6, 0, 0, 0, time.UTC)),
		[]reconciliation.Cut{*daily},
		reconciliation.Expenses{ComisionCobro: decimal.NewFromInt(1000), Gastos: decimal.RequireFromString("250.75")},
		time.Now())
	require.NoError(t, err)
	return wc
}

func TestReceiptPrinter_WeeklyReceiptHTML(t *testing.T) {
	p := NewReceiptPrinter(&captureRenderer{}, time.UTC)
	p.now = func() time.Time { return time.Date(2024, 5, 9, 10, 30, 0, 0, time.UTC) }

	html, err := p.WeeklyReceiptHTML(weeklyFixture(t), "Juan <Pérez>")
	require.NoError(t, err)

	assert.Contains(t, html, "Corte semanal #9")
	assert.Contains(t, html, "2024-05-02 al 2024-05-08")
	assert.Contains(t, html, "Juan &lt;Pérez&gt;", "names are escaped")
	pr := message.NewPrinter(p.lang)
	assert.Contains(t, html, pr.Sprintf("$%.2f", 12500.0))
	assert.Contains(t, html, pr.Sprintf("$%.2f", 11249.25))
	assert.Contains(t, html, "Impreso 2024-05-09 10:30")
}

func TestReceiptPrinter_WeeklyReceipt(t *testing.T) {
	t.Run("renders on receipt paper", func(t *testing.T) {
		r := &captureRenderer{}
		pdf, err := NewReceiptPrinter(r, nil).WeeklyReceipt(context.Background(), weeklyFixture(t), "Ana")
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(pdf))
		require.NotNil(t, r.req)
		assert.Equal(t, ReceiptWidthMM, r.req.WidthMM)
		assert.Zero(t, r.req.HeightMM)
	})

	t.Run("propagates renderer errors", func(t *testing.T) {
		r := &captureRenderer{err: NewRenderError(ErrCodeRenderFailed, "chrome gone", nil)}
		_, err := NewReceiptPrinter(r, nil).WeeklyReceipt(context.Background(), weeklyFixture(t), "Ana")
		var re *RenderError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, ErrCodeRenderFailed, re.Code)
	})
}

func TestBuildPrintParams(t *testing.T) {
	t.Run("continuous receipt paper", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{WidthMM: ReceiptWidthMM, MarginMM: 4})
		assert.InDelta(t, mmToInches(80), p.paperWidth, 0.001)
		assert.InDelta(t, mmToInches(1000), p.paperHeight, 0.001)
		assert.InDelta(t, mmToInches(4), p.margin, 0.001)
	})

	t.Run("defaults to letter", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{})
		assert.InDelta(t, 8.5, p.paperWidth, 0.01)
		assert.InDelta(t, 11, p.paperHeight, 0.01)
	})
}

func TestBuildDocument(t *testing.T) {
	doc := buildDocument(&RenderRequest{HTML: "<p>x</p>", Title: "a<b"})
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<title>a&lt;b</title>")

	full := "<!DOCTYPE html><html><body>y</body></html>"
	assert.Equal(t, full, buildDocument(&RenderRequest{HTML: full}))
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r := NewChromedpRenderer(ChromedpConfig{RemoteURL: "ws://127.0.0.1:1"})
	defer r.Close()

	_, err := r.Render(context.Background(), &RenderRequest{HTML: "  "})
	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ErrCodeInvalidHTML, re.Code)
}
