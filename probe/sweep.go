package probe

import (
	"context"
	"fmt"

	"github.com/shirouto/dsprobe"
	"github.com/shirouto/dsprobe/types"
)

// DefaultLadder is the timeout ladder (seconds) used when none is given.
var DefaultLadder = []int{1, 2, 5, 10, 30}

// SweepResult pairs one ladder rung with its probe outcome.
type SweepResult struct {
	TimeoutSeconds int    `json:"timeout_seconds"`
	Result         Result `json:"result"`
}

// Sweep probes one target once per rung of the timeout ladder, answering
// which connect-timeout values let the connection succeed. Each rung is a
// single attempt; retry backoff would distort the measurement.
func (r *Runner) Sweep(ctx context.Context, target Target, ladder []int) ([]SweepResult, error) {
	cloner, ok := target.Config.(types.TimeoutCloner)
	if !ok {
		return nil, fmt.Errorf("sweep: %s config does not support timeout overrides", target.Config.EngineDialect())
	}

	if len(ladder) == 0 {
		ladder = DefaultLadder
	}

	results := make([]SweepResult, 0, len(ladder))
	for _, seconds := range ladder {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		rung := Target{
			Name:   target.Name,
			Config: cloner.WithConnectTimeout(seconds),
		}

		dsprobe.LogI("Sweep %s: probing with connect timeout %ds", target.Name, seconds)
		results = append(results, SweepResult{
			TimeoutSeconds: seconds,
			Result:         r.probeWithRetries(ctx, rung, 1),
		})
	}
	return results, nil
}
