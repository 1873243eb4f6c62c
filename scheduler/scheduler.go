package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"famplan/model"
)

// Start registers the daily reminder and weekly summary jobs and starts
// the cron runner. Jobs are stateless full scans with no watermark; a
// duplicate firing re-notifies, which is the accepted at-least-once
// contract.
func Start(cfg model.AppConfig, jobs *Jobs) (*cron.Cron, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler: load timezone %q: %w", cfg.Timezone, err)
	}

	runner := cron.New(cron.WithLocation(location))
	if _, err := runner.AddFunc(cfg.DailyCron, func() {
		jobs.DailyReminders(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("scheduler: register daily reminder: %w", err)
	}
	if _, err := runner.AddFunc(cfg.WeeklyCron, func() {
		jobs.WeeklySummaries(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("scheduler: register weekly summary: %w", err)
	}

	runner.Start()
	return runner, nil
}
