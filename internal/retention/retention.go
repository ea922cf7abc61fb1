// Package retention purges click events past the configured retention
// window. Without it the append-only store grows forever; a bounded window
// (default one year) keeps scan-based aggregation affordable.
package retention

import (
	"context"
	"time"

	"clicktrack/internal/metrics"
	"clicktrack/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Purger struct {
	service  *usecase.AnalyticsService
	metrics  *metrics.Metrics
	logger   *zap.Logger
	days     int
	schedule string
	cron     *cron.Cron
	// invoked after a successful purge, used to drop stale cached aggregates
	onPurge func()
}

// NewPurger creates a purger that removes events older than `days` days on
// the given cron schedule. days <= 0 disables purging entirely. onPurge may
// be nil.
func NewPurger(service *usecase.AnalyticsService, m *metrics.Metrics, logger *zap.Logger, days int, schedule string, onPurge func()) *Purger {
	return &Purger{
		service:  service,
		metrics:  m,
		logger:   logger,
		days:     days,
		schedule: schedule,
		cron:     cron.New(),
		onPurge:  onPurge,
	}
}

// Start schedules the purge job. A disabled purger starts as a no-op.
func (p *Purger) Start() error {
	if p.days <= 0 {
		p.logger.Info("retention purge disabled")
		return nil
	}

	if _, err := p.cron.AddFunc(p.schedule, func() {
		if err := p.RunOnce(context.Background()); err != nil {
			p.logger.Error("retention purge failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	p.cron.Start()
	p.logger.Info("retention purge scheduled",
		zap.Int("retention_days", p.days),
		zap.String("schedule", p.schedule),
	)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (p *Purger) Stop() {
	<-p.cron.Stop().Done()
}

// RunOnce purges immediately, regardless of the schedule.
func (p *Purger) RunOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -p.days)

	deleted, err := p.service.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	p.metrics.EventsPurged.Add(float64(deleted))
	p.logger.Info("retention purge completed",
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)

	if deleted > 0 && p.onPurge != nil {
		p.onPurge()
	}
	return nil
}
