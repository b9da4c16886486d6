package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrPaymentType = attribute.Key("payment_type")
	AttrCutKind     = attribute.Key("cut_kind")
	AttrOutcome     = attribute.Key("outcome")
)

// CollectionMetrics records business counters for payments and cuts.
// It subscribes to domain events on the bus; cut timings are recorded directly
// by the reconciliation service.
type CollectionMetrics struct {
	paymentsRegistered metric.Int64Counter
	paymentsAmount     metric.Float64Counter
	paymentsAmended    metric.Int64Counter
	paymentsCancelled  metric.Int64Counter
	liquidations       metric.Int64Counter
	renewals           metric.Int64Counter
	cutsFinalized      metric.Int64Counter
	cutsRejected       metric.Int64Counter
	cutDuration        metric.Float64Histogram
}

// NewCollectionMetrics creates the instruments on meter.
func NewCollectionMetrics(meter metric.Meter) (*CollectionMetrics, error) {
	m := &CollectionMetrics{}
	var err error

	if m.paymentsRegistered, err = meter.Int64Counter("cobranza_payments_registered_total",
		metric.WithDescription("Payments applied to debtor balances")); err != nil {
		return nil, fmt.Errorf("payments_registered counter: %w", err)
	}
	if m.paymentsAmount, err = meter.Float64Counter("cobranza_payments_amount_total",
		metric.WithDescription("Money collected through registered payments"),
		metric.WithUnit("MXN")); err != nil {
		return nil, fmt.Errorf("payments_amount counter: %w", err)
	}
	if m.paymentsAmended, err = meter.Int64Counter("cobranza_payments_amended_total"); err != nil {
		return nil, fmt.Errorf("payments_amended counter: %w", err)
	}
	if m.paymentsCancelled, err = meter.Int64Counter("cobranza_payments_cancelled_total"); err != nil {
		return nil, fmt.Errorf("payments_cancelled counter: %w", err)
	}
	if m.liquidations, err = meter.Int64Counter("cobranza_liquidations_total",
		metric.WithDescription("Debtors whose balance reached zero")); err != nil {
		return nil, fmt.Errorf("liquidations counter: %w", err)
	}
	if m.renewals, err = meter.Int64Counter("cobranza_contract_renewals_total"); err != nil {
		return nil, fmt.Errorf("renewals counter: %w", err)
	}
	if m.cutsFinalized, err = meter.Int64Counter("cobranza_cuts_finalized_total",
		metric.WithDescription("Daily and weekly cuts persisted")); err != nil {
		return nil, fmt.Errorf("cuts_finalized counter: %w", err)
	}
	if m.cutsRejected, err = meter.Int64Counter("cobranza_cuts_rejected_total",
		metric.WithDescription("Cut attempts rejected as duplicate or overlapping")); err != nil {
		return nil, fmt.Errorf("cuts_rejected counter: %w", err)
	}
	if m.cutDuration, err = meter.Float64Histogram("cobranza_cut_duration_seconds",
		metric.WithDescription("Time spent computing and persisting a cut"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("cut_duration histogram: %w", err)
	}
	return m, nil
}

// EventTypes lists the domain events this handler consumes.
func (m *CollectionMetrics) EventTypes() []string {
	return []string{
		collection.EventTypePaymentRegistered,
		collection.EventTypePaymentAmended,
		collection.EventTypePaymentCancelled,
		collection.EventTypeDebtorLiquidated,
		collection.EventTypeContractRenewed,
		reconciliation.EventTypeCutFinalized,
		reconciliation.EventTypeWeeklyCutCreated,
	}
}

// Handle updates counters from a domain event.
func (m *CollectionMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *collection.PaymentRegisteredEvent:
		attrs := metric.WithAttributes(AttrPaymentType.String(e.PaymentType.String()))
		m.paymentsRegistered.Add(ctx, 1, attrs)
		m.paymentsAmount.Add(ctx, e.Amount.InexactFloat64(), attrs)
	case *collection.PaymentAmendedEvent:
		m.paymentsAmended.Add(ctx, 1)
		m.paymentsAmount.Add(ctx, e.NewAmount.Sub(e.OldAmount).InexactFloat64(),
			metric.WithAttributes(AttrPaymentType.String("amendment")))
	case *collection.PaymentCancelledEvent:
		m.paymentsCancelled.Add(ctx, 1)
		m.paymentsAmount.Add(ctx, e.Amount.Neg().InexactFloat64(),
			metric.WithAttributes(AttrPaymentType.String("cancellation")))
	case *collection.DebtorLiquidatedEvent:
		m.liquidations.Add(ctx, 1)
	case *collection.ContractRenewedEvent:
		m.renewals.Add(ctx, 1)
	case *reconciliation.CutFinalizedEvent:
		m.cutsFinalized.Add(ctx, 1, metric.WithAttributes(AttrCutKind.String(string(reconciliation.KindDaily))))
	case *reconciliation.WeeklyCutCreatedEvent:
		m.cutsFinalized.Add(ctx, 1, metric.WithAttributes(AttrCutKind.String(string(reconciliation.KindWeekly))))
	}
	return nil
}

// RecordCutRejected counts a refused cut attempt
func (m *CollectionMetrics) RecordCutRejected(ctx context.Context, kind reconciliation.Kind) {
	if m == nil {
		return
	}
	m.cutsRejected.Add(ctx, 1, metric.WithAttributes(AttrCutKind.String(string(kind))))
}

// RecordCutDuration observes how long a cut took; outcome is "ok" or "error".
func (m *CollectionMetrics) RecordCutDuration(ctx context.Context, kind reconciliation.Kind, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.cutDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		AttrCutKind.String(string(kind)),
		AttrOutcome.String(outcome),
	))
}
