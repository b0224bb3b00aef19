package feed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a job on a cron schedule until stopped.
type Scheduler struct {
	cron  *cron.Cron
	entry cron.EntryID
}

// Schedule starts running job on spec, a five-field cron expression or a
// descriptor such as "@every 5m" or "@hourly". Overlapping runs are skipped.
func Schedule(spec string, job func(), logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid feed schedule %q: %w", spec, err)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	entry, err := c.AddFunc(spec, func() {
		logger.Info("scheduled feed run", "schedule", spec)
		job()
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling feed job: %w", err)
	}
	c.Start()
	return &Scheduler{cron: c, entry: entry}, nil
}

// Next returns when the job runs next. It is zero before the scheduler has
// computed its first run.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
