package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PDFContentType is the MIME type of rendered receipts
const PDFContentType = "application/pdf"

var weeklyReceiptTemplate = template.Must(template.New("weekly").Parse(`
<style>
  body { font-family: monospace; font-size: 11px; width: 72mm; }
  h1 { font-size: 14px; text-align: center; margin: 0 0 4px; }
  .muted { text-align: center; margin: 0 0 8px; }
  table { width: 100%; border-collapse: collapse; }
  td.v { text-align: right; }
  tr.total td { border-top: 1px dashed #000; font-weight: bold; }
</style>
<h1>Corte semanal #{{.Folio}}</h1>
<p class="muted">{{.Collector}}<br>{{.From}} al {{.To}}</p>
<table>
{{range .Lines}}<tr{{if .Total}} class="total"{{end}}><td>{{.Label}}</td><td class="v">{{.Value}}</td></tr>
{{end}}</table>
<p class="muted">Impreso {{.PrintedAt}}</p>
`))

type receiptLine struct {
	Label string
	Value string
	Total bool
}

type weeklyReceiptData struct {
	Folio     int64
	Collector string
	From      string
	To        string
	PrintedAt string
	Lines     []receiptLine
}

// ReceiptPrinter renders cut receipts for 80mm thermal printers
type ReceiptPrinter struct {
	renderer PDFRenderer
	loc      *time.Location
	lang     language.Tag
	now      func() time.Time
}

// NewReceiptPrinter creates a printer rendering through renderer
func NewReceiptPrinter(renderer PDFRenderer, loc *time.Location) *ReceiptPrinter {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptPrinter{
		renderer: renderer,
		loc:      loc,
		lang:     language.MustParse("es-MX"),
		now:      time.Now,
	}
}

// WeeklyReceiptHTML builds the receipt markup
func (p *ReceiptPrinter) WeeklyReceiptHTML(wc *reconciliation.WeeklyCut, collectorName string) (string, error) {
	pr := message.NewPrinter(p.lang)
	amount := func(d decimal.Decimal) string {
		return pr.Sprintf("$%.2f", d.Round(2).InexactFloat64())
	}
	count := func(n int) string {
		return pr.Sprintf("%d", n)
	}

	s := wc.Stats
	data := weeklyReceiptData{
		Folio:     wc.Folio,
		Collector: collectorName,
		From:      wc.StartDate.String(),
		To:        wc.EndDate.String(),
		PrintedAt: p.now().In(p.loc).Format("2006-01-02 15:04"),
		Lines: []receiptLine{
			{Label: "Cobranza", Value: amount(s.Collected)},
			{Label: "Deudores cobrados", Value: count(s.PayingDebtors)},
			{Label: "Liquidaciones", Value: amount(s.LiquidationsTotal)},
			{Label: "Deudores liquidados", Value: count(s.LiquidatedDebtors)},
			{Label: "No pagos", Value: count(s.NonPaying)},
			{Label: "Créditos", Value: count(s.CreditsCount)},
			{Label: "Créditos monto", Value: amount(s.CreditsAmount)},
			{Label: "Primeros pagos", Value: amount(s.FirstPaymentsAmount)},
			{Label: "Total ingreso", Value: amount(wc.TotalIngreso), Total: true},
			{Label: "Comisión cobro", Value: amount(wc.Expenses.ComisionCobro)},
			{Label: "Comisión ventas", Value: amount(wc.Expenses.ComisionVentas)},
			{Label: "Gastos", Value: amount(wc.Expenses.Gastos)},
			{Label: "Total gasto", Value: amount(wc.TotalGasto), Total: true},
			{Label: "Saldo final", Value: amount(wc.SaldoFinal), Total: true},
		},
	}

	var buf bytes.Buffer
	if err := weeklyReceiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render receipt template: %w", err)
	}
	return buf.String(), nil
}

// WeeklyReceipt renders the receipt of a weekly cut as PDF
func (p *ReceiptPrinter) WeeklyReceipt(ctx context.Context, wc *reconciliation.WeeklyCut, collectorName string) ([]byte, error) {
	html, err := p.WeeklyReceiptHTML(wc, collectorName)
	if err != nil {
		return nil, err
	}
	res, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:     html,
		Title:    fmt.Sprintf("Corte semanal %d", wc.Folio),
		WidthMM:  ReceiptWidthMM,
		MarginMM: ReceiptMarginMM,
	})
	if err != nil {
		return nil, err
	}
	return res.PDFData, nil
}
