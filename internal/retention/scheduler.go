package retention

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/chiwenlan/tablepos/internal/logging"
)

// Scheduler runs the sweeper on a cron schedule inside the host process.
// Supports both cron specs ("0 4 * * *") and intervals ("@every 1h").
type Scheduler struct {
	cron    *cron.Cron
	sweeper *Sweeper
}

// NewScheduler registers the sweep job. spec defaults to @hourly when
// empty.
func NewScheduler(sweeper *Sweeper, spec string) (*Scheduler, error) {
	if spec == "" {
		spec = "@hourly"
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if err := sweeper.Sweep(); err != nil {
			logging.WithComponent("retention").WithError(err).Error("scheduled sweep failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to register sweep schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c, sweeper: sweeper}, nil
}

// Start begins running sweeps on schedule.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the schedule and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
