package api

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apetrov/notewise/internal/logging"
)

// SessionManager keeps the server-side identity session alive while the
// user is present. It tracks the last-interaction timestamp and runs a
// recurring refresh that asks the token source for a fresh token only
// when there was recent activity, so an idle client stops polling.
//
// Refresh results are discarded: this is fire-and-forget keepalive.
// Failures are logged and never propagated.
type SessionManager struct {
	interval time.Duration
	idle     time.Duration
	log      logging.Logger

	// lastActivity holds unix nanoseconds; atomic so TrackActivity
	// never blocks, not even against Start/Stop.
	lastActivity atomic.Int64

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSessionManager creates a manager with the given refresh interval
// and idle window. A refresh tick is skipped when the last recorded
// activity is older than idle.
func NewSessionManager(interval, idle time.Duration, log logging.Logger) *SessionManager {
	m := &SessionManager{
		interval: interval,
		idle:     idle,
		log:      log,
	}
	m.lastActivity.Store(time.Now().UnixNano())
	return m
}

// TrackActivity records the current time as the last user interaction.
// Purely advisory: it never blocks and has no failure mode.
func (m *SessionManager) TrackActivity() {
	m.lastActivity.Store(time.Now().UnixNano())
}

// Start arms the recurring refresh with the given token source. Starting
// while already armed first disarms the previous timer.
func (m *SessionManager) Start(ts TokenSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.startLocked(ts)
}

// EnsureStarted arms the refresh only if it is not already running.
// Called on every authenticated request, so arming must be cheap and
// must not reset a live timer.
func (m *SessionManager) EnsureStarted(ts TokenSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		return
	}
	m.startLocked(ts)
}

// Stop disarms the refresh timer. Safe to call when already stopped.
func (m *SessionManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *SessionManager) startLocked(ts TokenSource) {
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(ts, m.stop, m.done)
}

func (m *SessionManager) stopLocked() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	<-m.done
	m.stop = nil
	m.done = nil
}

func (m *SessionManager) run(ts TokenSource, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !m.recentlyActive() {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), m.interval)
			if _, err := ts(ctx); err != nil {
				m.log.Warn(ctx, "session keepalive refresh failed", "error", err)
			} else {
				m.log.Info(ctx, "session extended after recent activity")
			}
			cancel()
		case <-stop:
			return
		}
	}
}

func (m *SessionManager) recentlyActive() bool {
	last := time.Unix(0, m.lastActivity.Load())
	return time.Since(last) < m.idle
}
