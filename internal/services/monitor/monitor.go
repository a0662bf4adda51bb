package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger checks server reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the most recent reachability observation.
type Status struct {
	Online    bool      `json:"online"`
	LastError string    `json:"last_error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}

// Monitor periodically pings the server health endpoint and exposes the
// latest reachability status to any component that wants to degrade
// gracefully while offline.
type Monitor struct {
	api      Pinger
	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status
	stopCh chan struct{}
}

// New builds a monitor over the given pinger.
func New(api Pinger, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		api:      api,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the background check loop.
func (m *Monitor) Start() {
	go m.loop()
}

// Stop terminates the check loop.
func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsOnline reports the last observed reachability.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Online
}

// GetStatus returns the full last observation.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status := Status{
		Online:    true,
		LastCheck: time.Now(),
	}
	if err := m.api.Ping(ctx); err != nil {
		status.Online = false
		status.LastError = err.Error()
		m.logger.Debug("server unreachable", zap.Error(err))
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
