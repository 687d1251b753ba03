package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// refreshTimeout bounds one timer-driven refresh run.
const refreshTimeout = 2 * time.Minute

// refreshScheduler owns the recurring refresh timer. Changing the interval
// cancels the running timer and starts a fresh one; a timer-driven run and a
// manual trigger may overlap, with last-write-wins on the cache.
type refreshScheduler struct {
	svc *Service

	mu    sync.Mutex
	sched *gocron.Scheduler
}

func newRefreshScheduler(svc *Service) *refreshScheduler {
	return &refreshScheduler{svc: svc}
}

// Schedule starts (or restarts) the recurring refresh at the given interval.
// A non-positive interval stops the timer.
func (s *Service) Schedule(interval time.Duration) error {
	return s.scheduler.restart(interval)
}

// StopSchedule cancels the recurring refresh. In-flight runs are not awaited.
func (s *Service) StopSchedule() {
	s.scheduler.restart(0) //nolint:errcheck // stopping cannot fail
}

func (r *refreshScheduler) restart(interval time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sched != nil {
		r.sched.Stop()
		r.sched = nil
		r.svc.metrics.SchedulerActive.Set(0)
	}
	if interval <= 0 {
		return nil
	}

	sched := gocron.NewScheduler(time.UTC)
	_, err := sched.Every(interval).Do(r.run)
	if err != nil {
		return err
	}
	sched.StartAsync()

	r.sched = sched
	r.svc.metrics.SchedulerActive.Set(1)
	r.svc.logger.Info("refresh scheduler started", "interval", interval)
	return nil
}

func (r *refreshScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := r.svc.Refresh(ctx, r.svc.defaults); err != nil {
		r.svc.logger.Warn("scheduled refresh failed", "error", err)
	}
}
