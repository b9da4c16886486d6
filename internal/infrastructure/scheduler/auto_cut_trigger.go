// Package scheduler runs the automatic end-of-day cut.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	appreconciliation "github.com/cobranza/backend/internal/application/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DailyCutRunner finalizes the current day for every collector
type DailyCutRunner interface {
	FinalizeAllDailyCuts(ctx context.Context) (appreconciliation.FinalizeSummary, error)
}

// AutoCutConfig holds configuration for the automatic daily cut
type AutoCutConfig struct {
	// Hour and Minute are the local wall-clock time of the run
	Hour   int
	Minute int

	Location *time.Location

	// CheckInterval is how often the clock is polled
	CheckInterval time.Duration

	// JobTimeout bounds a single run across all collectors
	JobTimeout time.Duration
}

// ParseAutoCutConfig builds a config from an "HH:MM" string
func ParseAutoCutConfig(at string, loc *time.Location, jobTimeout time.Duration) (AutoCutConfig, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return AutoCutConfig{}, fmt.Errorf("%w: daily cut time %q: %v", ErrInvalidConfig, at, err)
	}
	if loc == nil {
		return AutoCutConfig{}, fmt.Errorf("%w: location is required", ErrInvalidConfig)
	}
	return AutoCutConfig{
		Hour:          t.Hour(),
		Minute:        t.Minute(),
		Location:      loc,
		CheckInterval: 30 * time.Second,
		JobTimeout:    jobTimeout,
	}, nil
}

// AutoCutTrigger finalizes every collector's day once per local date at the
// configured time. When several instances share a Redis-backed store only
// the first one to claim the date runs it.
type AutoCutTrigger struct {
	config AutoCutConfig
	runner DailyCutRunner
	claims shared.IdempotencyStore
	now    func() time.Time
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewAutoCutTrigger creates a trigger. claims may be nil.
func NewAutoCutTrigger(config AutoCutConfig, runner DailyCutRunner, claims shared.IdempotencyStore, logger *zap.Logger) *AutoCutTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoCutTrigger{
		config: config,
		runner: runner,
		claims: claims,
		now:    time.Now,
		logger: logger,
	}
}

// Start starts the polling loop
func (c *AutoCutTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Automatic daily cut scheduled",
		zap.String("at", fmt.Sprintf("%02d:%02d", c.config.Hour, c.config.Minute)),
		zap.String("timezone", c.config.Location.String()),
	)
	return nil
}

// Stop stops the loop and waits for a run in progress, bounded by ctx
func (c *AutoCutTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Automatic daily cut stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AutoCutTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the cut when the local clock is at or past the
// configured time and today has not been run yet
func (c *AutoCutTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now().In(c.config.Location)
	today := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastRunDate == today {
		c.mu.Unlock()
		return false
	}
	due := now.Hour() > c.config.Hour || (now.Hour() == c.config.Hour && now.Minute() >= c.config.Minute)
	if !due {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = today
	c.mu.Unlock()

	if c.claims != nil {
		claimed, err := c.claims.MarkProcessed(ctx, "autocut:"+today, 36*time.Hour)
		if err != nil {
			c.logger.Warn("Could not claim automatic cut, running anyway", zap.Error(err))
		} else if !claimed {
			c.logger.Info("Automatic daily cut already run by another instance", zap.String("date", today))
			return false
		}
	}

	c.run(ctx, today)
	return true
}

func (c *AutoCutTrigger) run(ctx context.Context, date string) {
	if c.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.JobTimeout)
		defer cancel()
	}

	started := time.Now()
	summary, err := c.runner.FinalizeAllDailyCuts(ctx)
	if err != nil {
		c.logger.Error("Automatic daily cut aborted",
			zap.String("date", date),
			zap.Int("finalized", summary.Finalized),
			zap.Error(err),
		)
		return
	}
	c.logger.Info("Automatic daily cut completed",
		zap.String("date", date),
		zap.Int("finalized", summary.Finalized),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", time.Since(started)),
	)
}
