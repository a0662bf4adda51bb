package quotes

import (
	"sync"
	"time"

	"github.com/tasksure/client/internal/schedule"
)

// DefaultInterval is how often the displayed quote rotates.
const DefaultInterval = 4 * time.Second

var defaultQuotes = []string{
	"Proof turns effort into achievement.",
	"Small tasks. Big discipline.",
	"Consistency beats motivation.",
	"One task at a time. One streak at a time.",
}

// Rotator cycles through motivational quotes on its own recurring
// schedule. It is purely cosmetic and independent of the Pomodoro tick
// source; stopping one never affects the other.
type Rotator struct {
	scheduler schedule.Scheduler

	mu     sync.Mutex
	quotes []string
	index  int
	handle schedule.Handle
}

// New builds a rotator over the given quotes (the default set when
// none are provided).
func New(scheduler schedule.Scheduler, quotes ...string) *Rotator {
	if len(quotes) == 0 {
		quotes = defaultQuotes
	}
	return &Rotator{
		scheduler: scheduler,
		quotes:    quotes,
	}
}

// Start begins rotation. Starting an already running rotator is a no-op.
func (r *Rotator) Start(interval time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle != nil {
		return nil
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	handle, err := r.scheduler.Every(interval, r.advance)
	if err != nil {
		return err
	}
	r.handle = handle
	return nil
}

// Stop cancels the rotation schedule. Required on component teardown.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle != nil {
		r.handle.Stop()
		r.handle = nil
	}
}

// Current returns the quote on display.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quotes[r.index]
}

func (r *Rotator) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index + 1) % len(r.quotes)
}
