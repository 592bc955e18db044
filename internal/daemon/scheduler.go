package daemon

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
)

// startScheduler creates and starts the gocron scheduler driving the
// periodic sweep.
func (d *Daemon) startScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(d.cfg.Daemon.SweepInterval),
		gocron.NewTask(func() {
			if err := d.sweep(); err != nil {
				d.logger.Error("sweep pass failed", "error", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule sweep job: %w", err)
	}

	s.Start()
	return s, nil
}
