// Package jobs runs scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DaySummarizer aggregates orders for the local day containing t.
type DaySummarizer interface {
	DaySummary(ctx context.Context, t time.Time) (orders.DayStats, error)
}

// Scheduler logs a sales report for the previous local day on a cron
// schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	ledger   DaySummarizer
	loc      *time.Location
	now      func() time.Time
}

// NewScheduler parses spec as a standard five-field cron expression.
func NewScheduler(ledger DaySummarizer, spec string, loc *time.Location) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse daily report spec %q: %w", spec, err)
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger{}),
			cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
		),
		schedule: schedule,
		ledger:   ledger,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		_, err := s.ReportPreviousDay(ctx)
		if err != nil {
			zap.L().Error("daily report failed", zap.Error(err))
		}
	}))

	s.cron.Start()
	zap.L().Info("scheduler started", zap.String("location", s.loc.String()))

	<-ctx.Done()

	<-s.cron.Stop().Done()
	zap.L().Info("scheduler stopped")

	return nil
}

// ReportPreviousDay logs yesterday's totals and returns them.
func (s *Scheduler) ReportPreviousDay(ctx context.Context) (orders.DayStats, error) {
	day := s.now().In(s.loc).AddDate(0, 0, -1)

	stats, err := s.ledger.DaySummary(ctx, day)
	if err != nil {
		return orders.DayStats{}, fmt.Errorf("report %s: %w", day.Format(time.DateOnly), err)
	}

	zap.L().Info("daily sales report",
		zap.String("day", day.Format(time.DateOnly)),
		zap.Int64("sales", stats.Sales),
		zap.Int("orders", stats.Orders),
		zap.Int("pending", stats.Pending))

	return stats, nil
}
