// internal/connstatus/manager.go
package connstatus

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCheckPeriod is the flat cadence of the periodic check.
const DefaultCheckPeriod = 5 * time.Minute

// Checker performs the lightweight identity check (GET /).
type Checker interface {
	TestConnection(ctx context.Context) error
}

// Config is the minimal runtime config the manager needs.
type Config struct {
	CheckPeriod time.Duration
}

// Manager is the single source of truth for "can we reach the configured
// server with the configured credentials". Create one per process and pass
// it to whatever needs it.
type Manager struct {
	period time.Duration

	mu      sync.Mutex
	checker Checker
	state   State
	lastErr error
	subs    map[int]chan State
	nextSub int

	// periodic task: at most one alive
	periodicMu     sync.Mutex
	periodicCancel context.CancelFunc
	periodicDone   chan struct{}
	running        atomic.Int32
}

// New creates a manager in the Checking state.
// A nil checker makes every check report Offline.
func New(checker Checker, cfg Config) *Manager {
	period := cfg.CheckPeriod
	if period <= 0 {
		period = DefaultCheckPeriod
	}
	return &Manager{
		period:  period,
		checker: checker,
		state:   Checking,
		subs:    make(map[int]chan State),
	}
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the error behind the most recent Offline transition.
// It is cleared on Online.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Subscribe returns a channel that always holds the latest state.
// The current state is delivered immediately. Readers that fall behind
// only observe the newest value.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan State, 1)
	ch <- m.state

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// SetConnected overwrites the state with Online.
func (m *Manager) SetConnected() { m.set(Online, nil) }

// SetDisconnected overwrites the state with Offline.
func (m *Manager) SetDisconnected() { m.set(Offline, nil) }

// Set overwrites the state.
func (m *Manager) Set(s State) { m.set(s, nil) }

func (m *Manager) set(s State, cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch s {
	case Online:
		m.lastErr = nil
	case Offline:
		m.lastErr = cause
	}
	if m.state == s {
		return
	}
	m.state = s

	for _, ch := range m.subs {
		// latest wins
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// HandleError applies Classify to err. It reports whether the state changed.
func (m *Manager) HandleError(err error) bool {
	s, ok := Classify(err)
	if !ok {
		return false
	}
	before := m.State()
	m.set(s, err)
	return before != s
}

// PerformCheck runs one identity check and returns the resulting state.
// It does not touch the shared state.
func (m *Manager) PerformCheck(ctx context.Context) State {
	s, _ := m.performCheck(ctx)
	return s
}

func (m *Manager) performCheck(ctx context.Context) (State, error) {
	m.mu.Lock()
	c := m.checker
	m.mu.Unlock()

	if c == nil {
		return Offline, errNoChecker
	}
	if err := c.TestConnection(ctx); err != nil {
		return Offline, err
	}
	return Online, nil
}

var errNoChecker = errors.New("connstatus: no server configured")

// CheckNow sets Checking, then runs a check in the background and applies
// its result. The returned channel yields the applied state once; callers
// are free to ignore it.
//
// A check cut short by ctx fails like any other and leaves the state Offline,
// never Checking. Overlapping calls are not coalesced: the last check to
// finish wins.
func (m *Manager) CheckNow(ctx context.Context) <-chan State {
	m.Set(Checking)

	done := make(chan State, 1)
	go func() {
		defer close(done)
		s, err := m.performCheck(ctx)
		m.set(s, err)
		done <- s
	}()
	return done
}

// StartPeriodicCheck cancels a previously started periodic task, waits for
// it to exit, and starts a new one checking every period.
func (m *Manager) StartPeriodicCheck(ctx context.Context) {
	m.periodicMu.Lock()
	defer m.periodicMu.Unlock()

	m.stopPeriodicLocked()

	pctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.periodicCancel = cancel
	m.periodicDone = done

	m.running.Add(1)
	go func() {
		defer close(done)
		defer m.running.Add(-1)

		ticker := time.NewTicker(m.period)
		defer ticker.Stop()

		for {
			select {
			case <-pctx.Done():
				return
			case <-ticker.C:
				s, err := m.performCheck(pctx)
				if pctx.Err() != nil {
					return
				}
				if s == Offline {
					log.Printf("connstatus: periodic check offline: %v", err)
				}
				m.set(s, err)
			}
		}
	}()
}

// StopPeriodicCheck cancels the periodic task, if any, and waits for it to exit.
func (m *Manager) StopPeriodicCheck() {
	m.periodicMu.Lock()
	defer m.periodicMu.Unlock()
	m.stopPeriodicLocked()
}

func (m *Manager) stopPeriodicLocked() {
	cancel, done := m.periodicCancel, m.periodicDone
	m.periodicCancel, m.periodicDone = nil, nil

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// PeriodicRunning returns the number of live periodic tasks (0 or 1).
func (m *Manager) PeriodicRunning() int {
	return int(m.running.Load())
}
