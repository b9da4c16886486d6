// Package export renders cuts as Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// XLSXContentType is the MIME type of the rendered workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	dailySheet  = "Cortes"
	weeklySheet = "Corte semanal"
	moneyFormat = "#,##0.00"
)

var statColumns = []string{
	"cobranza total",
	"deudores cobrados",
	"liquidaciones total",
	"deudores liquidados",
	"no pagos",
	"créditos",
	"créditos monto",
	"primeros pagos",
	"primeros pagos montos",
	"nuevos deudores",
	"deudores totales",
}

// statValues returns the statistics in statColumns order
func statValues(s reconciliation.Stats) []any {
	return []any{
		money(s.Collected),
		s.PayingDebtors,
		money(s.LiquidationsTotal),
		s.LiquidatedDebtors,
		s.NonPaying,
		s.CreditsCount,
		money(s.CreditsAmount),
		s.FirstPaymentsCount,
		money(s.FirstPaymentsAmount),
		s.NewDebtors,
		s.ActiveDebtors,
	}
}

// money columns within statColumns, 1-based relative to the first stat column
var statMoneyColumns = []int{1, 3, 7, 9}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// WorkbookRenderer builds cut workbooks with instants shown in the operating
// timezone. A cases.Caser is stateful, so one is made per render.
type WorkbookRenderer struct {
	loc  *time.Location
	lang language.Tag
}

// NewWorkbookRenderer creates a renderer
func NewWorkbookRenderer(loc *time.Location) *WorkbookRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkbookRenderer{
		loc:  loc,
		lang: language.LatinAmericanSpanish,
	}
}

// DailyCuts renders one row per cut
func (r *WorkbookRenderer) DailyCuts(cuts []*reconciliation.Cut) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dailySheet); err != nil {
		return nil, err
	}

	headers := append([]string{"folio", "fecha", "desde", "hasta"}, statColumns...)
	if err := r.writeHeader(f, dailySheet, headers); err != nil {
		return nil, err
	}

	for i, c := range cuts {
		row := []any{
			c.Folio,
			c.Date.String(),
			r.localTime(c.Window.Start),
			r.localTime(c.Window.End),
		}
		row = append(row, statValues(c.Stats)...)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(dailySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := r.formatMoneyColumns(f, dailySheet, 4, len(cuts)); err != nil {
		return nil, err
	}
	return write(f)
}

// DailyCut renders a single cut
func (r *WorkbookRenderer) DailyCut(c *reconciliation.Cut) ([]byte, error) {
	return r.DailyCuts([]*reconciliation.Cut{c})
}

// WeeklyCut renders a weekly cut as a label/value sheet followed by the settlement
func (r *WorkbookRenderer) WeeklyCut(wc *reconciliation.WeeklyCut) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", weeklySheet); err != nil {
		return nil, err
	}
	title := cases.Title(r.lang)

	type line struct {
		label   string
		value   any
		isMoney bool
	}
	lines := []line{
		{label: "folio", value: wc.Folio},
		{label: "desde", value: wc.StartDate.String()},
		{label: "hasta", value: wc.EndDate.String()},
	}
	moneyStats := map[int]bool{}
	for _, col := range statMoneyColumns {
		moneyStats[col-1] = true
	}
	for i, v := range statValues(wc.Stats) {
		lines = append(lines, line{label: statColumns[i], value: v, isMoney: moneyStats[i]})
	}
	lines = append(lines,
		line{"comisión cobro", money(wc.Expenses.ComisionCobro), true},
		line{"comisión ventas", money(wc.Expenses.ComisionVentas), true},
		line{"gastos", money(wc.Expenses.Gastos), true},
		line{"total ingreso", money(wc.TotalIngreso), true},
		line{"total gasto", money(wc.TotalGasto), true},
		line{"saldo final", money(wc.SaldoFinal), true},
	)

	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		row := []any{title.String(l.label), l.value}
		if err := f.SetSheetRow(weeklySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
		if l.isMoney {
			cell := fmt.Sprintf("B%d", i+1)
			if err := f.SetCellStyle(weeklySheet, cell, cell, style); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(weeklySheet, "A", "A", 24); err != nil {
		return nil, err
	}
	return write(f)
}

func (r *WorkbookRenderer) writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	title := cases.Title(r.lang)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title.String(h)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// formatMoneyColumns applies the money format to the monetary stat columns,
// which start after offset leading columns
func (r *WorkbookRenderer) formatMoneyColumns(f *excelize.File, sheet string, offset, rows int) error {
	if rows == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		return err
	}
	for _, col := range statMoneyColumns {
		from, err := excelize.CoordinatesToCellName(offset+col, 2)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(offset+col, rows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, from, to, style); err != nil {
			return err
		}
	}
	return nil
}

func (r *WorkbookRenderer) localTime(t time.Time) string {
	return t.In(r.loc).Format("2006-01-02 15:04")
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func strPtr(s string) *string { return &s }
