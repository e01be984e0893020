package probe

import (
	"context"
	"sync"
	"time"

	"github.com/shirouto/dsprobe"
	"github.com/shirouto/dsprobe/circuitbreaker"
	"github.com/shirouto/dsprobe/health"
)

// Scheduler re-probes every target on an interval. Each target sits behind
// a circuit breaker, so a persistently dead target is skipped until the
// breaker's open window passes instead of eating a full connect timeout on
// every tick.
type Scheduler struct {
	Runner        *Runner
	Interval      time.Duration
	DegradedAfter time.Duration

	mu       sync.Mutex
	targets  []Target
	breakers map[string]*circuitbreaker.CircuitBreaker

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler probing on the given interval.
func NewScheduler(runner *Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		Runner:   runner,
		Interval: interval,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
		stop:     make(chan struct{}),
	}
}

// Add registers a target for scheduled probing and health reporting.
func (s *Scheduler) Add(target Target) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.targets = append(s.targets, target)
	s.breakers[target.Name] = circuitbreaker.NewCircuitBreaker(target.Name, circuitbreaker.Settings{
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			dsprobe.LogW("Probe %s: circuit breaker %s -> %s", name, from, to)
		},
	})

	health.Register(NewChecker(s.Runner, target, s.DegradedAfter))
}

// Breaker returns the circuit breaker guarding a target.
func (s *Scheduler) Breaker(name string) (*circuitbreaker.CircuitBreaker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cb, ok := s.breakers[name]
	return cb, ok
}

// Targets returns the registered targets.
func (s *Scheduler) Targets() []Target {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]Target, len(s.targets))
	copy(targets, s.targets)
	return targets
}

// Start launches the probe loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	dsprobe.LogI("Scheduler started, probing every %v", s.Interval)
}

// Stop halts the probe loop and waits for the current round to finish.
// Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
	dsprobe.LogI("Scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// First round immediately, then on the interval.
	s.probeRound()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.probeRound()
		}
	}
}

func (s *Scheduler) probeRound() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()

	for _, target := range s.Targets() {
		cb, _ := s.Breaker(target.Name)

		err := cb.Execute(func() error {
			result := s.Runner.Probe(ctx, target)
			return result.Err()
		})
		if err == circuitbreaker.ErrCircuitOpen {
			dsprobe.LogWRL("probe-breaker-open-"+target.Name,
				"Probe %s: skipped, circuit breaker open", target.Name)
		}
	}
}
