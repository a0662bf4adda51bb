package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Handle is a cancellable recurring task. Stop is idempotent and must
// be called when the owning component is torn down.
type Handle interface {
	Stop()
}

// Scheduler registers recurring work. Both the Pomodoro tick source and
// the quote rotation run through this abstraction so they share a
// single cancellation model without interfering with each other.
type Scheduler interface {
	Every(d time.Duration, fn func()) (Handle, error)
}

// CronScheduler is the production Scheduler backed by robfig/cron.
type CronScheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewCron builds and starts a cron-backed scheduler.
func NewCron(logger *zap.Logger) *CronScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CronScheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
	s.cron.Start()
	return s
}

// Every schedules fn at the given interval, rounded down to whole
// seconds (minimum one second).
func (s *CronScheduler) Every(d time.Duration, fn func()) (Handle, error) {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return nil, err
	}
	return &cronHandle{cron: s.cron, id: id}, nil
}

// Shutdown stops the scheduler and waits for running jobs, respecting
// the provided context.
func (s *CronScheduler) Shutdown(ctx context.Context) {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("scheduler stopped")
}

type cronHandle struct {
	cron *cron.Cron
	id   cron.EntryID
	once sync.Once
}

// Stop may be called from any goroutine; the entry is removed once.
func (h *cronHandle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.cron.Remove(h.id)
	})
}
