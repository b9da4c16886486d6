package reconciliation

import (
	"sort"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateInput is the raw data a daily aggregate is computed from
type AggregateInput struct {
	Window Window
	// Payments of the collector; entries outside Window are ignored
	Payments []collection.Payment
	// NewDebtors are the collector's debtors created inside Window
	NewDebtors []collection.Debtor
	// ActiveDebtors is the collector's headcount with balance > 0 right now
	ActiveDebtors int64
}

// Aggregate computes the statistics of a window. It never mutates its input
// and returns an all-zero aggregate when nothing happened.
func Aggregate(in AggregateInput) Stats {
	stats := ZeroStats()
	payers := make(map[uuid.UUID]struct{})
	liquidated := make(map[uuid.UUID]struct{})

	for _, p := range in.Payments {
		if !in.Window.Contains(p.PaymentDate) {
			continue
		}
		stats.Collected = stats.Collected.Add(p.Amount)
		payers[p.DebtorID] = struct{}{}
		if p.IsLiquidation() {
			stats.LiquidationsTotal = stats.LiquidationsTotal.Add(p.Amount)
			liquidated[p.DebtorID] = struct{}{}
		}
	}
	stats.PayingDebtors = len(payers)
	stats.LiquidatedDebtors = len(liquidated)

	paid := make(map[uuid.UUID]struct{}, len(payers))
	for id := range payers {
		paid[id] = struct{}{}
	}
	for _, d := range in.NewDebtors {
		if !in.Window.Contains(d.CreatedAt) {
			continue
		}
		stats.NewDebtors++
		stats.CreditsCount++
		stats.CreditsAmount = stats.CreditsAmount.Add(d.Amount)
		if d.HasFirstPayment() {
			stats.FirstPaymentsCount++
			stats.FirstPaymentsAmount = stats.FirstPaymentsAmount.Add(d.FirstPayment)
			paid[d.ID] = struct{}{}
		}
	}

	stats.ActiveDebtors = int(in.ActiveDebtors)
	stats.NonPaying = max(0, stats.ActiveDebtors-len(paid))
	return stats
}

// SumDailyCuts adds up, field by field, the daily cuts lying entirely inside
// window. It also returns the IDs of the cuts it used, ordered by date.
func SumDailyCuts(window Window, cuts []Cut) (Stats, []uuid.UUID) {
	contained := make([]Cut, 0, len(cuts))
	for _, c := range cuts {
		if window.ContainsWindow(c.Window) {
			contained = append(contained, c)
		}
	}
	sort.SliceStable(contained, func(i, j int) bool {
		return contained[i].Window.Start.Before(contained[j].Window.Start)
	})

	stats := ZeroStats()
	ids := make([]uuid.UUID, 0, len(contained))
	for _, c := range contained {
		stats = stats.Add(c.Stats)
		ids = append(ids, c.ID)
	}
	return stats, ids
}

// SettleWeek derives the weekly income, outgo and final balance
func SettleWeek(stats Stats, expenses Expenses) (income, outgo, balance decimal.Decimal) {
	income = stats.Collected.Add(stats.FirstPaymentsAmount).Add(stats.CreditsAmount)
	outgo = expenses.Total()
	return income, outgo, income.Sub(outgo)
}
