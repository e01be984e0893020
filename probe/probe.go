// Package probe runs engine validity checks: build the dialect DSN with its
// connect timeout, open the connection, execute the trivial validation
// query, and report whether the engine answered as expected.
package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirouto/dsprobe"
	"github.com/shirouto/dsprobe/drivers"
	"github.com/shirouto/dsprobe/metrics"
	"github.com/shirouto/dsprobe/tracing"
	"github.com/shirouto/dsprobe/types"
)

// Target is one named datasource to check.
type Target struct {
	Name   string
	Config types.IEngineConfig
}

// Result reports the outcome of probing one target.
type Result struct {
	Target   string              `json:"target"`
	Dialect  types.Dialect       `json:"dialect"`
	Valid    bool                `json:"valid"`
	Error    string              `json:"error,omitempty"`
	Attempts int                 `json:"attempts"`
	Duration time.Duration       `json:"duration"`
	Span     *tracing.Span       `json:"span,omitempty"`
	err      error
}

// Err returns the underlying probe error.
func (r Result) Err() error {
	return r.err
}

// Runner probes targets and records per-target metrics.
type Runner struct {
	// Precheck enables the raw TCP reachability phase for targets that
	// expose host and port.
	Precheck bool

	// MaxRetries caps connection attempts. Zero means take the value from
	// the target's configuration, falling back to a single attempt.
	MaxRetries int

	// NewEngine builds the engine for a target; overridable in tests.
	NewEngine func(name string, cfg types.IEngineConfig) (types.IEngine, error)

	mu      sync.Mutex
	byName  map[string]*metrics.Metrics
}

// NewRunner creates a runner with the prechecks enabled.
func NewRunner() *Runner {
	return &Runner{
		Precheck:  true,
		NewEngine: drivers.NewEngine,
		byName:    make(map[string]*metrics.Metrics),
	}
}

// Metrics returns the metrics recorded for a target, creating them on first
// use.
func (r *Runner) Metrics(target string) *metrics.Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byName[target]
	if !ok {
		m = metrics.NewMetrics()
		r.byName[target] = m
	}
	return m
}

// Probe checks a single target: reachability, connect (with retries and
// exponential backoff), validation query, close.
func (r *Runner) Probe(ctx context.Context, target Target) Result {
	return r.probeWithRetries(ctx, target, r.maxRetries(target))
}

func (r *Runner) probeWithRetries(ctx context.Context, target Target, maxRetries int) Result {
	started := time.Now()
	dialect := target.Config.EngineDialect()
	span := tracing.StartSpan(target.Name, string(dialect))
	m := r.Metrics(target.Name)

	result := Result{
		Target:  target.Name,
		Dialect: dialect,
	}

	err := r.probe(ctx, target, span, m, &result, maxRetries)

	span.End(err)
	tracing.Record(span)

	result.Duration = time.Since(started)
	result.Span = span
	m.RecordLatency(result.Duration.Milliseconds())

	if err != nil {
		result.err = err
		result.Error = err.Error()
		m.RecordError(err)
		m.UpdateHealthStatus("unhealthy")
		dsprobe.LogW("Probe %s (%s): cannot connect to the database: %v", target.Name, dialect, err)
		return result
	}

	result.Valid = true
	m.UpdateHealthStatus("healthy")
	dsprobe.LogI("Probe %s (%s): engine valid in %v", target.Name, dialect, result.Duration)
	return result
}

func (r *Runner) probe(ctx context.Context, target Target, span *tracing.Span, m *metrics.Metrics, result *Result, maxRetries int) error {
	if r.Precheck {
		if addr, ok := target.Config.(types.Address); ok {
			done := span.StartPhase("reachability")
			err := CheckReachable(ctx, addr, time.Duration(target.Config.GetConnectTimeout())*time.Second)
			done(err)
			if err != nil {
				return err
			}
		}
	}

	engine, err := r.NewEngine(target.Name, target.Config)
	if err != nil {
		return err
	}

	if err := r.open(ctx, target, engine, span, m, result, maxRetries); err != nil {
		return err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			dsprobe.LogD("Probe %s: close: %v", target.Name, cerr)
		}
	}()

	m.IncrementValidationsTotal()
	done := span.StartPhase("validate")
	err = engine.Validate(ctx)
	done(err)
	if err != nil {
		m.IncrementValidationsFailed()
		return err
	}

	m.IncrementValidationsSuccess()
	return nil
}

// open dials with exponential backoff between attempts, capped at one
// minute, the retry logs rate limited per target.
func (r *Runner) open(ctx context.Context, target Target, engine types.IEngine, span *tracing.Span, m *metrics.Metrics, result *Result, maxRetries int) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		m.IncrementConnectionsTotal()
		result.Attempts = attempt + 1

		done := span.StartPhase("connect")
		err = engine.Open(ctx)
		done(err)
		if err == nil {
			return nil
		}
		m.IncrementConnectionsFailed()

		if attempt+1 >= maxRetries {
			break
		}

		backoff := time.Second * time.Duration(1<<uint(attempt))
		if backoff > 60*time.Second {
			backoff = 60 * time.Second
		}

		dsprobe.LogERL("probe-connect-retry-"+target.Name,
			"Probe %s: connection attempt %d failed: %v. Retrying in %v...",
			target.Name, attempt+1, err, backoff)

		select {
		case <-ctx.Done():
			return fmt.Errorf("probe %s: %w", target.Name, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return err
}

func (r *Runner) maxRetries(target Target) int {
	if r.MaxRetries > 0 {
		return r.MaxRetries
	}
	if cfg, ok := target.Config.(interface{ GetMaxRetries() int }); ok {
		if v := cfg.GetMaxRetries(); v > 0 {
			return v
		}
	}
	return 1
}

// ProbeAll probes every target sequentially and reports all results.
func (r *Runner) ProbeAll(ctx context.Context, targets []Target) []Result {
	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		results = append(results, r.Probe(ctx, target))
	}
	return results
}
