package probe

import (
	"context"
	"time"

	"github.com/shirouto/dsprobe/health"
)

// Checker adapts a probe target to the health registry. A failed probe maps
// to unhealthy; a valid probe slower than DegradedAfter maps to degraded.
type Checker struct {
	Runner        *Runner
	Target        Target
	DegradedAfter time.Duration
}

// NewChecker wraps a target for health registration.
func NewChecker(runner *Runner, target Target, degradedAfter time.Duration) *Checker {
	return &Checker{
		Runner:        runner,
		Target:        target,
		DegradedAfter: degradedAfter,
	}
}

func (c *Checker) Name() string {
	return c.Target.Name
}

func (c *Checker) Check(ctx context.Context) health.CheckResult {
	result := c.Runner.Probe(ctx, c.Target)

	status := health.StatusHealthy
	switch {
	case !result.Valid:
		status = health.StatusUnhealthy
	case c.DegradedAfter > 0 && result.Duration > c.DegradedAfter:
		status = health.StatusDegraded
	}

	return health.CheckResult{
		Status:    status,
		Timestamp: time.Now(),
		Duration:  result.Duration,
		Error:     result.Error,
		Metadata: map[string]interface{}{
			"dialect":  string(result.Dialect),
			"attempts": result.Attempts,
		},
	}
}
