package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"snowrent-backend/internal/jobs"
	"snowrent-backend/internal/logger"
)

// Scheduler drives the autosave cadence. It is started once at process
// initialization and stopped once at shutdown; stopping interrupts the wait
// instead of sleeping out the interval, then performs one final synchronous
// save.
type Scheduler struct {
	cron      *cron.Cron
	autosaver *jobs.Autosaver
	interval  time.Duration
}

// NewScheduler creates a scheduler flushing all registries every interval.
func NewScheduler(autosaver *jobs.Autosaver, interval time.Duration) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{
		cron:      c,
		autosaver: autosaver,
		interval:  interval,
	}

	s.registerJobs()
	return s
}

// registerJobs registers the autosave job with the cron scheduler
func (s *Scheduler) registerJobs() {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.autosaver.RunOnce); err != nil {
		logger.Error("Failed to register autosave job", "spec", spec, "error", err)
		return
	}
	logger.Info("Autosave job registered", "interval", s.interval.String())
}

// Start begins the autosave cadence
func (s *Scheduler) Start() {
	logger.Info("Starting autosave scheduler...")
	s.cron.Start()
	logger.Info("Autosave scheduler started")
}

// Stop cancels the cadence, waits for an in-flight pass to drain, and runs
// one last save so shutdown never loses the latest in-memory state.
func (s *Scheduler) Stop() {
	logger.Info("Stopping autosave scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.autosaver.RunOnce()
	logger.Info("Autosave scheduler stopped, final save done")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
