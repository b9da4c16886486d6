package reconciliation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// store is an in-memory stand-in for the database shared by all fakes.
type store struct {
	mu         sync.Mutex
	collectors map[uuid.UUID]collection.Collector
	debtors    map[uuid.UUID]collection.Debtor
	payments   map[uuid.UUID]collection.Payment
	cuts       map[uuid.UUID]reconciliation.Cut
	weekly     map[uuid.UUID]reconciliation.WeeklyCut
	preCuts    map[uuid.UUID]reconciliation.PreCut
}

func newStore() *store {
	return &store{
		collectors: map[uuid.UUID]collection.Collector{},
		debtors:    map[uuid.UUID]collection.Debtor{},
		payments:   map[uuid.UUID]collection.Payment{},
		cuts:       map[uuid.UUID]reconciliation.Cut{},
		weekly:     map[uuid.UUID]reconciliation.WeeklyCut{},
		preCuts:    map[uuid.UUID]reconciliation.PreCut{},
	}
}

// Execute snapshots nothing; tests that need rollback check the error path only.
func (s *store) Execute(_ context.Context, fn func(TransactionalRepositories) error) error {
	return fn(s)
}

func (s *store) DebtorRepo() collection.DebtorRepository           { return fakeDebtors{s} }
func (s *store) PaymentRepo() collection.PaymentRepository         { return fakePayments{s} }
func (s *store) CutRepo() reconciliation.CutRepository             { return fakeCuts{s} }
func (s *store) WeeklyCutRepo() reconciliation.WeeklyCutRepository { return fakeWeekly{s} }
func (s *store) PreCutRepo() reconciliation.PreCutRepository       { return fakePreCuts{s} }

type fakeCollectors struct{ *store }

func (r fakeCollectors) FindByID(_ context.Context, id uuid.UUID) (*collection.Collector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collectors[id]
	if !ok {
		return nil, shared.NewNotFoundError("collector", id)
	}
	return &c, nil
}

func (r fakeCollectors) FindAll(context.Context, shared.Filter) ([]collection.Collector, int64, error) {
	return nil, 0, nil
}

func (r fakeCollectors) FindAllIDs(context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(r.collectors))
	for id := range r.collectors {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r fakeCollectors) ExistsByPhone(context.Context, string) (bool, error) { return false, nil }

func (r fakeCollectors) Save(_ context.Context, c *collection.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[c.ID] = *c
	return nil
}

type fakeDebtors struct{ *store }

func (r fakeDebtors) FindByID(_ context.Context, id uuid.UUID) (*collection.Debtor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debtors[id]
	if !ok {
		return nil, shared.NewNotFoundError("debtor", id)
	}
	return &d, nil
}

func (r fakeDebtors) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	return r.FindByID(ctx, id)
}

func (r fakeDebtors) FindAll(context.Context, collection.DebtorFilter) ([]collection.Debtor, int64, error) {
	return nil, 0, nil
}

func (r fakeDebtors) FindCreatedBetween(_ context.Context, collectorID uuid.UUID, start, end time.Time) ([]collection.Debtor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []collection.Debtor
	for _, d := range r.debtors {
		if d.CollectorID == collectorID && !d.CreatedAt.Before(start) && d.CreatedAt.Before(end) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r fakeDebtors) CountActive(_ context.Context, collectorID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.debtors {
		if d.CollectorID == collectorID && d.Balance.IsPositive() {
			n++
		}
	}
	return n, nil
}

func (r fakeDebtors) ExistsByContractNumber(context.Context, string) (bool, error) { return false, nil }

func (r fakeDebtors) Save(_ context.Context, d *collection.Debtor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debtors[d.ID] = *d
	return nil
}

type fakePayments struct{ *store }

func (r fakePayments) FindByID(_ context.Context, id uuid.UUID) (*collection.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, shared.NewNotFoundError("payment", id)
	}
	return &p, nil
}

func (r fakePayments) FindByCollectorBetween(_ context.Context, collectorID uuid.UUID, start, end time.Time) ([]collection.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []collection.Payment
	for _, p := range r.payments {
		if p.CollectorID == collectorID && !p.PaymentDate.Before(start) && p.PaymentDate.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePayments) FindByDebtor(context.Context, uuid.UUID, shared.Filter) ([]collection.Payment, int64, error) {
	return nil, 0, nil
}

func (r fakePayments) Save(_ context.Context, p *collection.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID] = *p
	return nil
}

func (r fakePayments) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.payments, id)
	return nil
}

type fakeCuts struct{ *store }

func (r fakeCuts) FindByID(_ context.Context, id uuid.UUID) (*reconciliation.Cut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cuts[id]
	if !ok {
		return nil, shared.NewNotFoundError("cut", id)
	}
	return &c, nil
}

func (r fakeCuts) FindLatest(_ context.Context, collectorID uuid.UUID) (*reconciliation.Cut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *reconciliation.Cut
	for _, c := range r.cuts {
		if c.CollectorID != collectorID {
			continue
		}
		if latest == nil || c.Window.End.After(latest.Window.End) {
			cp := c
			latest = &cp
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest, nil
}

func (r fakeCuts) FindOverlapping(_ context.Context, collectorID uuid.UUID, w reconciliation.Window) ([]reconciliation.Cut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []reconciliation.Cut
	for _, c := range r.cuts {
		if c.CollectorID == collectorID && c.Window.Overlaps(w) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeCuts) FindContainedIn(_ context.Context, collectorID uuid.UUID, w reconciliation.Window) ([]reconciliation.Cut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []reconciliation.Cut
	for _, c := range r.cuts {
		if c.CollectorID == collectorID && w.ContainsWindow(c.Window) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeCuts) FindByCollector(_ context.Context, collectorID uuid.UUID, _ shared.Filter) ([]reconciliation.Cut, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []reconciliation.Cut
	for _, c := range r.cuts {
		if c.CollectorID == collectorID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Window.Start.After(out[j].Window.Start) })
	return out, int64(len(out)), nil
}

func (r fakeCuts) Save(_ context.Context, c *reconciliation.Cut) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cuts[c.ID] = *c
	return nil
}

func (r fakeCuts) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cuts, id)
	return nil
}

type fakeWeekly struct{ *store }

func (r fakeWeekly) FindByID(_ context.Context, id uuid.UUID) (*reconciliation.WeeklyCut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.weekly[id]
	if !ok {
		return nil, shared.NewNotFoundError("weekly cut", id)
	}
	return &c, nil
}

func (r fakeWeekly) FindOverlapping(_ context.Context, collectorID uuid.UUID, w reconciliation.Window) ([]reconciliation.WeeklyCut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []reconciliation.WeeklyCut
	for _, c := range r.weekly {
		if c.CollectorID == collectorID && c.Window.Overlaps(w) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeWeekly) FindByCollector(_ context.Context, collectorID uuid.UUID, _ shared.Filter) ([]reconciliation.WeeklyCut, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []reconciliation.WeeklyCut
	for _, c := range r.weekly {
		if c.CollectorID == collectorID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r fakeWeekly) Save(_ context.Context, c *reconciliation.WeeklyCut) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weekly[c.ID] = *c
	return nil
}

func (r fakeWeekly) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.weekly, id)
	return nil
}

type fakePreCuts struct{ *store }

func (r fakePreCuts) FindByID(_ context.Context, id uuid.UUID) (*reconciliation.PreCut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.preCuts[id]
	if !ok {
		return nil, shared.NewNotFoundError("pre-cut", id)
	}
	return &c, nil
}

func (r fakePreCuts) FindLatest(_ context.Context, collectorID uuid.UUID) (*reconciliation.PreCut, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *reconciliation.PreCut
	for _, c := range r.preCuts {
		if c.CollectorID == collectorID && (latest == nil || c.CreatedAt.After(latest.CreatedAt)) {
			cp := c
			latest = &cp
		}
	}
	if latest == nil {
		return nil, shared.NewNotFoundError("pre-cut", collectorID)
	}
	return latest, nil
}

func (r fakePreCuts) FindByCollector(context.Context, uuid.UUID, shared.Filter) ([]reconciliation.PreCut, int64, error) {
	return nil, 0, nil
}

func (r fakePreCuts) DeleteWithin(_ context.Context, collectorID uuid.UUID, w reconciliation.Window) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.preCuts {
		if c.CollectorID == collectorID && w.ContainsWindow(c.Window) {
			delete(r.preCuts, id)
			n++
		}
	}
	return n, nil
}

func (r fakePreCuts) Save(_ context.Context, c *reconciliation.PreCut) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preCuts[c.ID] = *c
	return nil
}

func (r fakePreCuts) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.preCuts, id)
	return nil
}

type seqFolios struct {
	mu   sync.Mutex
	next int64
}

func (f *seqFolios) NextFolio() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

// keyedMutex serializes per key in tests
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) Lock(_ context.Context, key string) (func(), error) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*sync.Mutex{}
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock, nil
}
