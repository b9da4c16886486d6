package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CutRenderer turns cuts into archive documents
type CutRenderer interface {
	DailyCut(c *reconciliation.Cut) ([]byte, error)
	WeeklyCut(wc *reconciliation.WeeklyCut) ([]byte, error)
}

// CutArchiver uploads a rendering of every finalized daily cut and every
// weekly cut to object storage. Keys are deterministic, so a redelivered
// event overwrites the same object.
type CutArchiver struct {
	store       ObjectStorage
	renderer    CutRenderer
	prefix      string
	contentType string
	extension   string
	logger      *zap.Logger
}

// NewCutArchiver creates an archiver writing under prefix
func NewCutArchiver(store ObjectStorage, renderer CutRenderer, prefix, contentType, extension string, logger *zap.Logger) *CutArchiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CutArchiver{
		store:       store,
		renderer:    renderer,
		prefix:      prefix,
		contentType: contentType,
		extension:   extension,
		logger:      logger,
	}
}

// EventTypes implements shared.EventHandler
func (a *CutArchiver) EventTypes() []string {
	return []string{
		reconciliation.EventTypeCutFinalized,
		reconciliation.EventTypeWeeklyCutCreated,
	}
}

// Handle implements shared.EventHandler
func (a *CutArchiver) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		key  string
		data []byte
		err  error
	)
	switch e := event.(type) {
	case *reconciliation.CutFinalizedEvent:
		key = a.DailyKey(&e.Cut)
		data, err = a.renderer.DailyCut(&e.Cut)
	case *reconciliation.WeeklyCutCreatedEvent:
		key = a.WeeklyKey(&e.WeeklyCut)
		data, err = a.renderer.WeeklyCut(&e.WeeklyCut)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", key, err)
	}

	if err := a.store.Upload(ctx, key, data, a.contentType); err != nil {
		return fmt.Errorf("archive %s: %w", key, err)
	}
	a.logger.Info("Cut archived",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// DailyKey is the object key of a daily cut
func (a *CutArchiver) DailyKey(c *reconciliation.Cut) string {
	name := fmt.Sprintf("%s-%d%s", c.Date.String(), c.Folio, a.extension)
	return path.Join(a.prefix, "daily", c.CollectorID.String(), name)
}

// WeeklyKey is the object key of a weekly cut
func (a *CutArchiver) WeeklyKey(wc *reconciliation.WeeklyCut) string {
	name := fmt.Sprintf("%s_%s-%d%s", wc.StartDate.String(), wc.EndDate.String(), wc.Folio, a.extension)
	return path.Join(a.prefix, "weekly", wc.CollectorID.String(), name)
}

var _ shared.EventHandler = (*CutArchiver)(nil)
