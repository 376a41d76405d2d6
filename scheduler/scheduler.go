package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// SetupCron registers the nightly stats rollup and starts the scheduler.
func SetupCron() *cron.Cron {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 30 0 * * *", func() {
		// At 00:30 every night, roll up the previous day's sessions
		if err := RollupPreviousDay(); err != nil {
			log.Printf("[Scheduler] nightly rollup failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[Scheduler] failed to register rollup job: %v", err)
	}

	cronService.Start()
	return cronService
}
