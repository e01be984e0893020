package monitoring

import (
	"time"

	"github.com/shirouto/dsprobe/circuitbreaker"
	"github.com/shirouto/dsprobe/metrics"
	"github.com/shirouto/dsprobe/probe"
	"github.com/shirouto/dsprobe/tracing"
)

// TargetMetrics represents the monitoring view of one probe target.
type TargetMetrics struct {
	Name           string                  `json:"name"`
	Dialect        string                  `json:"dialect"`
	Status         string                  `json:"status"`
	Metrics        metrics.MetricsSnapshot `json:"metrics"`
	CircuitBreaker *CircuitBreakerStats    `json:"circuit_breaker,omitempty"`
	RecentSpans    []*tracing.Span         `json:"recent_spans,omitempty"`
	Generated      time.Time               `json:"generated"`
}

// CircuitBreakerStats represents circuit breaker statistics
type CircuitBreakerStats struct {
	State                string  `json:"state"`
	Requests             uint32  `json:"requests"`
	TotalSuccesses       uint32  `json:"total_successes"`
	TotalFailures        uint32  `json:"total_failures"`
	ConsecutiveSuccesses uint32  `json:"consecutive_successes"`
	ConsecutiveFailures  uint32  `json:"consecutive_failures"`
	SuccessRate          float64 `json:"success_rate"` // percentage
}

// Dashboard aggregates prober state for the HTTP surface.
type Dashboard struct {
	runner    *probe.Runner
	scheduler *probe.Scheduler

	// spansPerTarget bounds how many recent spans each target reports.
	spansPerTarget int
}

// NewDashboard creates a dashboard over a runner and its scheduler.
func NewDashboard(runner *probe.Runner, scheduler *probe.Scheduler) *Dashboard {
	return &Dashboard{
		runner:         runner,
		scheduler:      scheduler,
		spansPerTarget: 10,
	}
}

// GetTargetMetrics returns the monitoring view for one target.
func (d *Dashboard) GetTargetMetrics(name string) (*TargetMetrics, bool) {
	for _, target := range d.scheduler.Targets() {
		if target.Name == name {
			return d.build(target), true
		}
	}
	return nil, false
}

// GetAllMetrics returns the monitoring view for every target.
func (d *Dashboard) GetAllMetrics() map[string]*TargetMetrics {
	result := make(map[string]*TargetMetrics)
	for _, target := range d.scheduler.Targets() {
		result[target.Name] = d.build(target)
	}
	return result
}

func (d *Dashboard) build(target probe.Target) *TargetMetrics {
	m := d.runner.Metrics(target.Name)

	tm := &TargetMetrics{
		Name:      target.Name,
		Dialect:   string(target.Config.EngineDialect()),
		Status:    m.GetHealthStatus(),
		Metrics:   m.GetSnapshot(),
		Generated: time.Now(),
	}

	if cb, ok := d.scheduler.Breaker(target.Name); ok {
		tm.CircuitBreaker = breakerStats(cb)
	}

	spans := tracing.SpansFor(target.Name)
	if len(spans) > d.spansPerTarget {
		spans = spans[len(spans)-d.spansPerTarget:]
	}
	tm.RecentSpans = spans

	return tm
}

func breakerStats(cb *circuitbreaker.CircuitBreaker) *CircuitBreakerStats {
	counts := cb.GetCounts()

	rate := float64(0)
	if counts.Requests > 0 {
		rate = float64(counts.TotalSuccesses) / float64(counts.Requests) * 100
	}

	return &CircuitBreakerStats{
		State:                cb.GetState().String(),
		Requests:             counts.Requests,
		TotalSuccesses:       counts.TotalSuccesses,
		TotalFailures:        counts.TotalFailures,
		ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
		ConsecutiveFailures:  counts.ConsecutiveFailures,
		SuccessRate:          rate,
	}
}
