// Package circuitbreaker stops probing a datasource that keeps refusing
// connections, so scheduled rounds do not burn their whole budget dialing a
// dead host. After a quiet period a single trial probe decides whether the
// target is back.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrCircuitOpen is returned while the target is considered down and
	// probes are skipped.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests is returned when the trial budget in half-open
	// state is already spent.
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// State of the breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Counts holds probe statistics for the current window.
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Settings configures a breaker. Zero values take probe-oriented defaults.
type Settings struct {
	// MaxRequests is the number of trial probes allowed while half-open.
	MaxRequests uint32

	// Interval is how often counts are cleared while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before allowing a trial.
	Timeout time.Duration

	// ReadyToTrip decides when to stop probing. The default trips after
	// three consecutive failures.
	ReadyToTrip func(counts Counts) bool

	// OnStateChange is notified on every transition.
	OnStateChange func(name string, from State, to State)
}

// CircuitBreaker guards one probe target.
type CircuitBreaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(counts Counts) bool
	onStateChange func(name string, from State, to State)

	mu     sync.Mutex
	state  State
	window uint64
	counts Counts
	expiry time.Time
}

// NewCircuitBreaker creates a breaker named after its target.
func NewCircuitBreaker(name string, settings Settings) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:          name,
		maxRequests:   settings.MaxRequests,
		interval:      settings.Interval,
		timeout:       settings.Timeout,
		readyToTrip:   settings.ReadyToTrip,
		onStateChange: settings.OnStateChange,
	}

	if cb.maxRequests == 0 {
		cb.maxRequests = 1
	}
	if cb.interval == 0 {
		cb.interval = 60 * time.Second
	}
	if cb.timeout == 0 {
		cb.timeout = 60 * time.Second
	}
	if cb.readyToTrip == nil {
		cb.readyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		}
	}

	cb.newWindow(time.Now())
	return cb
}

// Execute runs fn unless the breaker is open. The probe outcome feeds the
// breaker: a nil error counts as success.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	window, err := cb.admit()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			cb.settle(window, false)
			panic(r)
		}
	}()

	err = fn()
	cb.settle(window, err == nil)
	return err
}

func (cb *CircuitBreaker) admit() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, window := cb.currentState(now)

	switch {
	case state == StateOpen:
		return window, ErrCircuitOpen
	case state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests:
		return window, ErrTooManyRequests
	}

	cb.counts.Requests++
	return window, nil
}

// settle records the probe outcome, unless the window rolled over while the
// probe was in flight.
func (cb *CircuitBreaker) settle(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, window := cb.currentState(now)
	if window != before {
		return
	}

	if success {
		cb.counts.TotalSuccesses++
		cb.counts.ConsecutiveSuccesses++
		cb.counts.ConsecutiveFailures = 0

		if state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.maxRequests {
			cb.setState(StateClosed, now)
		}
		return
	}

	switch state {
	case StateClosed:
		cb.counts.TotalFailures++
		cb.counts.ConsecutiveFailures++
		cb.counts.ConsecutiveSuccesses = 0

		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}

	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.newWindow(now)
		}

	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}

	return cb.state, cb.window
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.newWindow(now)

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

func (cb *CircuitBreaker) newWindow(now time.Time) {
	cb.window++
	cb.counts = Counts{}

	switch cb.state {
	case StateClosed:
		cb.expiry = now.Add(cb.interval)

	case StateOpen:
		cb.expiry = now.Add(cb.timeout)

	default:
		cb.expiry = time.Time{}
	}
}

// GetState returns the current state, advancing open to half-open when the
// quiet period has passed.
func (cb *CircuitBreaker) GetState() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// GetCounts returns the counts of the current window.
func (cb *CircuitBreaker) GetCounts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}

// Reset closes the breaker and clears its counts.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.newWindow(time.Now())
}
