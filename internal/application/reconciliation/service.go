// Package reconciliation produces pre-cuts, daily cuts and weekly cuts.
package reconciliation

import (
	"context"
	"errors"
	"time"

	"github.com/cobranza/backend/internal/application/ledger"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serviceName = "reconciliation"

// Dependencies groups the collaborators of Service. Locker, Publisher,
// Metrics and Logger are optional.
type Dependencies struct {
	Resolver   *reconciliation.Resolver
	TxScope    TransactionScope
	Collectors collection.CollectorRepository
	Debtors    collection.DebtorRepository
	Payments   collection.PaymentRepository
	Cuts       reconciliation.CutRepository
	WeeklyCuts reconciliation.WeeklyCutRepository
	PreCuts    reconciliation.PreCutRepository
	Folios     FolioGenerator
	Locker     shared.KeyedLocker
	Publisher  shared.EventPublisher
	Metrics    CutMetrics
	Logger     *zap.Logger
}

// Service is the reconciliation engine.
type Service struct {
	resolver   *reconciliation.Resolver
	txScope    TransactionScope
	collectors collection.CollectorRepository
	debtors    collection.DebtorRepository
	payments   collection.PaymentRepository
	cuts       reconciliation.CutRepository
	weeklyCuts reconciliation.WeeklyCutRepository
	preCuts    reconciliation.PreCutRepository
	folios     FolioGenerator
	locker     shared.KeyedLocker
	publisher  shared.EventPublisher
	metrics    CutMetrics
	logger     *zap.Logger
}

// NewService creates a reconciliation Service
func NewService(deps Dependencies) *Service {
	s := &Service{
		resolver:   deps.Resolver,
		txScope:    deps.TxScope,
		collectors: deps.Collectors,
		debtors:    deps.Debtors,
		payments:   deps.Payments,
		cuts:       deps.Cuts,
		weeklyCuts: deps.WeeklyCuts,
		preCuts:    deps.PreCuts,
		folios:     deps.Folios,
		locker:     deps.Locker,
		publisher:  deps.Publisher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
	if s.locker == nil {
		s.locker = shared.NoopLocker{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Resolver exposes the window resolver, used to render dates in the operating timezone
func (s *Service) Resolver() *reconciliation.Resolver {
	return s.resolver
}

// CreatePreCutInput is the input of CreatePreCut
type CreatePreCutInput struct {
	CollectorID  uuid.UUID
	VentanillaID string
	Agente       string
}

// CreatePreCut records a provisional snapshot of the collector's open day,
// from the end of the last final cut up to now. It never checks uniqueness;
// once the day is finalized the snapshot has a zero-length window and no
// collections.
func (s *Service) CreatePreCut(ctx context.Context, in CreatePreCutInput) (*reconciliation.PreCut, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "create_pre_cut")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrCollectorID, in.CollectorID.String())

	if _, err := s.collectors.FindByID(ctx, in.CollectorID); err != nil {
		return nil, err
	}

	last, err := lastDailyWindow(ctx, s.cuts, in.CollectorID)
	if err != nil {
		return nil, err
	}
	window := s.resolver.ResolveNextWindow(last, reconciliation.KindDaily, reconciliation.ModeOpen)
	if window.IsEmpty() {
		// the day is already finalized; the draft covers nothing
		window.End = window.Start
	}

	stats, err := aggregateWindow(ctx, s.debtors, s.payments, in.CollectorID, window)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	preCut := reconciliation.NewPreCut(in.CollectorID, s.resolver.Today(), window, stats,
		in.VentanillaID, in.Agente, s.resolver.Now())
	if err := s.preCuts.Save(ctx, preCut); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrWindowStart, window.Start.Format(time.RFC3339),
		telemetry.SpanAttrWindowEnd, window.End.Format(time.RFC3339),
	)
	s.logger.Debug("Pre-cut created",
		zap.String("collector_id", in.CollectorID.String()),
		zap.String("cobranza_total", stats.Collected.StringFixed(2)),
	)
	return preCut, nil
}

// FinalizeDailyCut closes the collector's current day. The window starts
// where the last final daily cut ended and runs to the local end of today.
func (s *Service) FinalizeDailyCut(ctx context.Context, collectorID uuid.UUID) (*reconciliation.Cut, error) {
	return s.finalize(ctx, collectorID, "finalize_daily_cut", func(ctx context.Context, repos TransactionalRepositories) (reconciliation.Window, reconciliation.LocalDate, error) {
		last, err := lastDailyWindow(ctx, repos.CutRepo(), collectorID)
		if err != nil {
			return reconciliation.Window{}, reconciliation.LocalDate{}, err
		}
		window := s.resolver.ResolveNextWindow(last, reconciliation.KindDaily, reconciliation.ModeFinal)
		if window.IsEmpty() {
			return window, reconciliation.LocalDate{}, shared.ErrDuplicateCut.WithDetail("window_start", window.Start)
		}
		return window, s.resolver.Today(), nil
	})
}

// FinalizeManualDailyCut closes a specific past or current local day.
func (s *Service) FinalizeManualDailyCut(ctx context.Context, collectorID uuid.UUID, date string) (*reconciliation.Cut, error) {
	d, err := reconciliation.ParseLocalDate(date)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.ValidateNotFuture(d); err != nil {
		return nil, err
	}
	return s.finalize(ctx, collectorID, "finalize_manual_daily_cut", func(context.Context, TransactionalRepositories) (reconciliation.Window, reconciliation.LocalDate, error) {
		return s.resolver.ResolveCalendarDay(d), d, nil
	})
}

type windowFunc func(ctx context.Context, repos TransactionalRepositories) (reconciliation.Window, reconciliation.LocalDate, error)

// finalize persists a daily cut for the window chosen by resolve. Under the
// collector lock and inside one transaction it rejects intersecting cuts,
// aggregates raw payments and debtors, stores the cut and removes the
// pre-cuts it supersedes.
func (s *Service) finalize(ctx context.Context, collectorID uuid.UUID, operation string, resolve windowFunc) (*reconciliation.Cut, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, operation)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCollectorID, collectorID.String(),
		telemetry.SpanAttrCutKind, string(reconciliation.KindDaily),
	)

	started := time.Now()
	var cut *reconciliation.Cut
	var opErr error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(operation, map[string]string{
		telemetry.ProfilingLabelCutKind: string(reconciliation.KindDaily),
	}), func(ctx context.Context) {
		cut, opErr = s.finalizeLocked(ctx, collectorID, resolve)
	})
	if s.metrics != nil {
		s.metrics.RecordCutDuration(ctx, reconciliation.KindDaily, time.Since(started), opErr)
	}
	if opErr != nil {
		if errors.Is(opErr, shared.ErrDuplicateCut) && s.metrics != nil {
			s.metrics.RecordCutRejected(ctx, reconciliation.KindDaily)
		}
		telemetry.RecordError(span, opErr)
		return nil, opErr
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCutID, cut.ID.String(),
		telemetry.SpanAttrDate, cut.Date.String(),
		telemetry.SpanAttrWindowStart, cut.Window.Start.Format(time.RFC3339),
		telemetry.SpanAttrWindowEnd, cut.Window.End.Format(time.RFC3339),
	)
	s.publish(ctx, reconciliation.NewCutFinalizedEvent(cut))
	s.logger.Info("Daily cut finalized",
		zap.String("cut_id", cut.ID.String()),
		zap.String("collector_id", collectorID.String()),
		zap.String("date", cut.Date.String()),
		zap.Int64("folio", cut.Folio),
		zap.String("cobranza_total", cut.Stats.Collected.StringFixed(2)),
	)
	return cut, nil
}

func (s *Service) finalizeLocked(ctx context.Context, collectorID uuid.UUID, resolve windowFunc) (*reconciliation.Cut, error) {
	if _, err := s.collectors.FindByID(ctx, collectorID); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, ledger.CollectorLockKey(collectorID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var cut *reconciliation.Cut
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		window, date, err := resolve(ctx, repos)
		if err != nil {
			return err
		}

		existing, err := repos.CutRepo().FindOverlapping(ctx, collectorID, window)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return shared.ErrDuplicateCut.
				WithDetail("existing_cut_id", existing[0].ID.String()).
				WithDetail("date", existing[0].Date.String())
		}

		stats, err := aggregateWindow(ctx, repos.DebtorRepo(), repos.PaymentRepo(), collectorID, window)
		if err != nil {
			return err
		}

		cut = reconciliation.NewCut(collectorID, s.folios.NextFolio(), date, window, stats, s.resolver.Now())
		if err := repos.CutRepo().Save(ctx, cut); err != nil {
			return err
		}
		removed, err := repos.PreCutRepo().DeleteWithin(ctx, collectorID, window)
		if err != nil {
			return err
		}
		s.logger.Debug("Superseded pre-cuts removed", zap.Int64("count", removed))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cut, nil
}

// CreateWeeklyCutInput is the input of CreateWeeklyCut. Both dates empty
// selects the latest week that has already ended or ends today.
type CreateWeeklyCutInput struct {
	CollectorID uuid.UUID
	StartDate   string
	EndDate     string
	Expenses    reconciliation.Expenses
}

// CreateWeeklyCut sums the daily cuts inside the inclusive local date range
// and settles them against the entered expenses.
func (s *Service) CreateWeeklyCut(ctx context.Context, in CreateWeeklyCutInput) (*reconciliation.WeeklyCut, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "create_weekly_cut")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCollectorID, in.CollectorID.String(),
		telemetry.SpanAttrCutKind, string(reconciliation.KindWeekly),
	)

	started := time.Now()
	wc, err := s.createWeeklyCut(ctx, in)
	if s.metrics != nil {
		s.metrics.RecordCutDuration(ctx, reconciliation.KindWeekly, time.Since(started), err)
		if errors.Is(err, shared.ErrOverlappingRange) {
			s.metrics.RecordCutRejected(ctx, reconciliation.KindWeekly)
		}
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrCutID, wc.ID.String())
	s.publish(ctx, reconciliation.NewWeeklyCutCreatedEvent(wc))
	s.logger.Info("Weekly cut created",
		zap.String("cut_id", wc.ID.String()),
		zap.String("collector_id", wc.CollectorID.String()),
		zap.String("start_date", wc.StartDate.String()),
		zap.String("end_date", wc.EndDate.String()),
		zap.Int("daily_cuts", len(wc.DailyCutIDs)),
		zap.String("saldo_final", wc.SaldoFinal.StringFixed(2)),
	)
	return wc, nil
}

func (s *Service) createWeeklyCut(ctx context.Context, in CreateWeeklyCutInput) (*reconciliation.WeeklyCut, error) {
	if _, err := s.collectors.FindByID(ctx, in.CollectorID); err != nil {
		return nil, err
	}
	if err := in.Expenses.Validate(); err != nil {
		return nil, err
	}

	start, end, err := s.weekRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.ValidateNotFuture(end); err != nil {
		return nil, err
	}
	window, err := s.resolver.ResolveDateRange(start, end)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, ledger.CollectorLockKey(in.CollectorID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var wc *reconciliation.WeeklyCut
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		overlapping, err := repos.WeeklyCutRepo().FindOverlapping(ctx, in.CollectorID, window)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return shared.ErrOverlappingRange.
				WithDetail("existing_cut_id", overlapping[0].ID.String()).
				WithDetail("start_date", overlapping[0].StartDate.String()).
				WithDetail("end_date", overlapping[0].EndDate.String())
		}

		daily, err := repos.CutRepo().FindContainedIn(ctx, in.CollectorID, window)
		if err != nil {
			return err
		}
		wc, err = reconciliation.NewWeeklyCut(in.CollectorID, s.folios.NextFolio(), start, end, window,
			daily, in.Expenses, s.resolver.Now())
		if err != nil {
			return err
		}
		return repos.WeeklyCutRepo().Save(ctx, wc)
	})
	if err != nil {
		return nil, err
	}
	return wc, nil
}

// weekRange parses an explicit range or falls back to the latest week that
// does not end after today.
func (s *Service) weekRange(startDate, endDate string) (reconciliation.LocalDate, reconciliation.LocalDate, error) {
	var zero reconciliation.LocalDate
	switch {
	case startDate == "" && endDate == "":
		today := s.resolver.Today()
		first, last := s.resolver.WeekBounds(today, s.resolver.WeekStart())
		if last.After(today) {
			first, last = s.resolver.WeekBounds(first.AddDays(-1), s.resolver.WeekStart())
		}
		return first, last, nil
	case startDate == "" || endDate == "":
		return zero, zero, shared.NewValidationError("start_date and end_date must be given together")
	}
	start, err := reconciliation.ParseLocalDate(startDate)
	if err != nil {
		return zero, zero, err
	}
	end, err := reconciliation.ParseLocalDate(endDate)
	if err != nil {
		return zero, zero, err
	}
	if end.Before(start) {
		return zero, zero, shared.NewInvalidDateError("end date %s is before start date %s", end, start)
	}
	return start, end, nil
}

// WeekPreview describes the week a date belongs to
type WeekPreview struct {
	StartDate reconciliation.LocalDate
	EndDate   reconciliation.LocalDate
	Window    reconciliation.Window
}

// PreviewWeek resolves the configured week containing date (today when empty).
func (s *Service) PreviewWeek(date string) (*WeekPreview, error) {
	d := s.resolver.Today()
	if date != "" {
		parsed, err := reconciliation.ParseLocalDate(date)
		if err != nil {
			return nil, err
		}
		d = parsed
	}
	first, last := s.resolver.WeekBounds(d, s.resolver.WeekStart())
	return &WeekPreview{
		StartDate: first,
		EndDate:   last,
		Window:    s.resolver.ResolveWeek(d, s.resolver.WeekStart()),
	}, nil
}

// FinalizeSummary reports a batch finalization
type FinalizeSummary struct {
	Finalized int
	Skipped   int
	Failed    int
}

// FinalizeAllDailyCuts closes the current day for every collector. Collectors
// already cut for today are skipped; other failures are logged and counted.
func (s *Service) FinalizeAllDailyCuts(ctx context.Context) (FinalizeSummary, error) {
	var summary FinalizeSummary
	ids, err := s.collectors.FindAllIDs(ctx)
	if err != nil {
		return summary, err
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		_, err := s.FinalizeDailyCut(ctx, id)
		switch {
		case err == nil:
			summary.Finalized++
		case errors.Is(err, shared.ErrDuplicateCut):
			summary.Skipped++
		default:
			summary.Failed++
			s.logger.Error("Automatic daily cut failed", zap.String("collector_id", id.String()), zap.Error(err))
		}
	}
	return summary, nil
}

// ListDailyCuts lists a collector's daily cuts, newest first
func (s *Service) ListDailyCuts(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) (shared.Paginated[reconciliation.Cut], error) {
	if _, err := s.collectors.FindByID(ctx, collectorID); err != nil {
		return shared.Paginated[reconciliation.Cut]{}, err
	}
	items, total, err := s.cuts.FindByCollector(ctx, collectorID, filter)
	if err != nil {
		return shared.Paginated[reconciliation.Cut]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ListWeeklyCuts lists a collector's weekly cuts, newest first
func (s *Service) ListWeeklyCuts(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) (shared.Paginated[reconciliation.WeeklyCut], error) {
	if _, err := s.collectors.FindByID(ctx, collectorID); err != nil {
		return shared.Paginated[reconciliation.WeeklyCut]{}, err
	}
	items, total, err := s.weeklyCuts.FindByCollector(ctx, collectorID, filter)
	if err != nil {
		return shared.Paginated[reconciliation.WeeklyCut]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// LatestPreCut returns the collector's most recent pre-cut
func (s *Service) LatestPreCut(ctx context.Context, collectorID uuid.UUID) (*reconciliation.PreCut, error) {
	return s.preCuts.FindLatest(ctx, collectorID)
}

// GetCut returns a daily cut by ID
func (s *Service) GetCut(ctx context.Context, id uuid.UUID) (*reconciliation.Cut, error) {
	return s.cuts.FindByID(ctx, id)
}

// GetWeeklyCut returns a weekly cut by ID
func (s *Service) GetWeeklyCut(ctx context.Context, id uuid.UUID) (*reconciliation.WeeklyCut, error) {
	return s.weeklyCuts.FindByID(ctx, id)
}

// Record kinds returned by DeleteCut
const (
	RecordDailyCut  = "daily_cut"
	RecordWeeklyCut = "weekly_cut"
	RecordPreCut    = "pre_cut"
)

// DeleteCut removes a daily cut, weekly cut or pre-cut by ID and reports which
// one it was. Ledger state is untouched.
func (s *Service) DeleteCut(ctx context.Context, id uuid.UUID) (string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "delete_cut")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrCutID, id.String())

	kind, err := s.deleteCut(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}
	s.logger.Info("Cut deleted", zap.String("cut_id", id.String()), zap.String("kind", kind))
	return kind, nil
}

func (s *Service) deleteCut(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.cuts.FindByID(ctx, id); err == nil {
		return RecordDailyCut, s.cuts.Delete(ctx, id)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}
	if _, err := s.weeklyCuts.FindByID(ctx, id); err == nil {
		return RecordWeeklyCut, s.weeklyCuts.Delete(ctx, id)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}
	if _, err := s.preCuts.FindByID(ctx, id); err == nil {
		return RecordPreCut, s.preCuts.Delete(ctx, id)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}
	return "", shared.NewNotFoundError("cut", id)
}

func (s *Service) duplicateCut(ctx context.Context, kind reconciliation.Kind, reason string) error {
	if s.metrics != nil {
		s.metrics.RecordCutRejected(ctx, kind)
	}
	return shared.ErrDuplicateCut.WithDetail("reason", reason)
}

func (s *Service) publish(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish reconciliation event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

// lastDailyWindow returns the window of the latest final daily cut, or nil
func lastDailyWindow(ctx context.Context, cuts reconciliation.CutRepository, collectorID uuid.UUID) (*reconciliation.Window, error) {
	last, err := cuts.FindLatest(ctx, collectorID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &last.Window, nil
}

// aggregateWindow loads the raw ledger data of a window and aggregates it
func aggregateWindow(
	ctx context.Context,
	debtors collection.DebtorRepository,
	payments collection.PaymentRepository,
	collectorID uuid.UUID,
	window reconciliation.Window,
) (reconciliation.Stats, error) {
	ps, err := payments.FindByCollectorBetween(ctx, collectorID, window.Start, window.End)
	if err != nil {
		return reconciliation.Stats{}, err
	}
	created, err := debtors.FindCreatedBetween(ctx, collectorID, window.Start, window.End)
	if err != nil {
		return reconciliation.Stats{}, err
	}
	active, err := debtors.CountActive(ctx, collectorID)
	if err != nil {
		return reconciliation.Stats{}, err
	}
	return reconciliation.Aggregate(reconciliation.AggregateInput{
		Window:        window,
		Payments:      ps,
		NewDebtors:    created,
		ActiveDebtors: active,
	}), nil
}
