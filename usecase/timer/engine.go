package timer

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tasksure/client/internal/schedule"
)

// Pomodoro durations, in whole seconds.
const (
	FocusSeconds = 25 * 60
	RestSeconds  = 5 * 60
)

// Engine is the Pomodoro countdown state machine. It is either stopped
// or running; while running a single one-second tick source decrements
// the remaining time until it hits zero, at which point the engine
// parks itself at the rest duration and fires the completion callback
// exactly once.
type Engine struct {
	scheduler  schedule.Scheduler
	onComplete func()
	logger     *zap.Logger

	mu        sync.Mutex
	remaining int
	running   bool
	handle    schedule.Handle
}

// New builds an engine parked at the focus duration.
func New(scheduler schedule.Scheduler, onComplete func(), logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		scheduler:  scheduler,
		onComplete: onComplete,
		logger:     logger,
		remaining:  FocusSeconds,
	}
}

// Start begins the countdown. Calling Start while already running is a
// no-op; at most one tick source is ever active.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	handle, err := e.scheduler.Every(time.Second, e.tick)
	if err != nil {
		return err
	}
	e.handle = handle
	e.running = true
	e.logger.Debug("timer started", zap.Int("remaining_seconds", e.remaining))
	return nil
}

// Pause cancels the tick source, preserving the remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// Reset cancels any tick source and parks the engine back at the focus
// duration, discarding elapsed progress.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.remaining = FocusSeconds
}

// Remaining returns the seconds left on the countdown.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// Running reports whether a tick source is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Format renders the remaining time as zero-padded MM:SS.
func (e *Engine) Format() string {
	return FormatSeconds(e.Remaining())
}

// tick is invoked once per elapsed second while running.
func (e *Engine) tick() {
	e.mu.Lock()
	if !e.running {
		// A tick already queued when Pause/Reset cancelled the source.
		e.mu.Unlock()
		return
	}

	e.remaining--
	if e.remaining > 0 {
		e.mu.Unlock()
		return
	}

	e.stopLocked()
	e.remaining = RestSeconds
	done := e.onComplete
	e.mu.Unlock()

	e.logger.Info("focus session complete")
	if done != nil {
		done()
	}
}

func (e *Engine) stopLocked() {
	if e.handle != nil {
		e.handle.Stop()
		e.handle = nil
	}
	e.running = false
}

// FormatSeconds renders a second count as zero-padded MM:SS. Values up
// to 59:59 and beyond keep two-digit minute fields growing as needed.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
