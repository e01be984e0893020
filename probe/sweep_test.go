package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/shirouto/dsprobe/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainConfig has no timeout override support.
type plainConfig struct{}

func (plainConfig) GetDsn() string               { return "plain" }
func (plainConfig) GetConnectTimeout() int       { return 1 }
func (plainConfig) EngineDialect() types.Dialect { return types.DialectSqLite }

func TestSweep(t *testing.T) {
	t.Run("LadderRungs", func(t *testing.T) {
		var engines []*stubEngine

		runner := NewRunner()
		runner.Precheck = false
		runner.NewEngine = func(name string, cfg types.IEngineConfig) (types.IEngine, error) {
			engine := &stubEngine{dialect: cfg.EngineDialect()}
			// Connections succeed only once the timeout is generous enough.
			if cfg.GetConnectTimeout() < 5 {
				engine.openErrs = []error{errors.New("i/o timeout")}
			}
			engines = append(engines, engine)
			return engine, nil
		}

		target := Target{Name: "slow-db", Config: &stubConfig{dialect: types.DialectRedshift, retries: 3}}
		results, err := runner.Sweep(context.Background(), target, []int{1, 2, 5})
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, 1, results[0].TimeoutSeconds)
		assert.False(t, results[0].Result.Valid)
		assert.Equal(t, 2, results[1].TimeoutSeconds)
		assert.False(t, results[1].Result.Valid)
		assert.Equal(t, 5, results[2].TimeoutSeconds)
		assert.True(t, results[2].Result.Valid)

		// Each rung is a single attempt regardless of configured retries.
		for _, engine := range engines {
			assert.Equal(t, 1, engine.opens)
		}
	})

	t.Run("DefaultLadder", func(t *testing.T) {
		runner := NewRunner()
		runner.Precheck = false
		runner.NewEngine = func(name string, cfg types.IEngineConfig) (types.IEngine, error) {
			return &stubEngine{}, nil
		}

		target := Target{Name: "db", Config: &stubConfig{dialect: types.DialectMySQL, retries: 1}}
		results, err := runner.Sweep(context.Background(), target, nil)
		require.NoError(t, err)
		require.Len(t, results, len(DefaultLadder))

		for i, rung := range results {
			assert.Equal(t, DefaultLadder[i], rung.TimeoutSeconds)
		}
	})

	t.Run("UnsupportedConfig", func(t *testing.T) {
		runner := NewRunner()
		runner.Precheck = false

		_, err := runner.Sweep(context.Background(), Target{Name: "db", Config: plainConfig{}}, nil)
		assert.Error(t, err)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		runner := NewRunner()
		runner.Precheck = false
		runner.NewEngine = func(name string, cfg types.IEngineConfig) (types.IEngine, error) {
			return &stubEngine{}, nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		target := Target{Name: "db", Config: &stubConfig{dialect: types.DialectMySQL, retries: 1}}
		results, err := runner.Sweep(ctx, target, []int{1, 2})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, results)
	})
}
