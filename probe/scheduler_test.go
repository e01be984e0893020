package probe

import (
	"errors"
	"testing"
	"time"

	"github.com/shirouto/dsprobe/circuitbreaker"
	"github.com/shirouto/dsprobe/health"
	"github.com/shirouto/dsprobe/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	t.Run("AddRegistersBreakerAndChecker", func(t *testing.T) {
		runner := NewRunner()
		runner.Precheck = false

		s := NewScheduler(runner, time.Minute)
		s.Add(Target{Name: "db-a", Config: &stubConfig{dialect: types.DialectMySQL, retries: 1}})
		t.Cleanup(func() { health.Unregister("db-a") })

		cb, ok := s.Breaker("db-a")
		require.True(t, ok)
		assert.Equal(t, circuitbreaker.StateClosed, cb.GetState())
		assert.Len(t, s.Targets(), 1)
	})

	t.Run("BreakerSkipsDeadTarget", func(t *testing.T) {
		engine := &stubEngine{openErrs: []error{
			errors.New("down"), errors.New("down"), errors.New("down"), errors.New("down"),
		}}
		runner := setupRunner(t, engine)
		runner.MaxRetries = 1

		s := NewScheduler(runner, time.Minute)
		s.Add(Target{Name: "db-b", Config: &stubConfig{dialect: types.DialectPostgres, retries: 1}})
		t.Cleanup(func() { health.Unregister("db-b") })

		// The breaker trips after three consecutive failures; the fourth
		// round must not reach the engine.
		for i := 0; i < 4; i++ {
			s.probeRound()
		}

		assert.Equal(t, 3, engine.opens)

		cb, _ := s.Breaker("db-b")
		assert.Equal(t, circuitbreaker.StateOpen, cb.GetState())
	})

	t.Run("StartStop", func(t *testing.T) {
		engine := &stubEngine{}
		runner := setupRunner(t, engine)

		s := NewScheduler(runner, 20*time.Millisecond)
		s.Add(Target{Name: "db-c", Config: &stubConfig{dialect: types.DialectMySQL, retries: 1}})
		t.Cleanup(func() { health.Unregister("db-c") })

		s.Start()
		time.Sleep(70 * time.Millisecond)
		s.Stop()

		opened := engine.opens
		assert.GreaterOrEqual(t, opened, 2)

		// No further rounds after Stop.
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, opened, engine.opens)
	})

	t.Run("StopTwice", func(t *testing.T) {
		engine := &stubEngine{}
		runner := setupRunner(t, engine)

		s := NewScheduler(runner, 20*time.Millisecond)
		s.Add(Target{Name: "db-d", Config: &stubConfig{dialect: types.DialectMySQL, retries: 1}})
		t.Cleanup(func() { health.Unregister("db-d") })

		s.Start()
		s.Stop()
		assert.NotPanics(t, func() { s.Stop() })
	})

	t.Run("DefaultInterval", func(t *testing.T) {
		s := NewScheduler(NewRunner(), 0)
		assert.Equal(t, time.Minute, s.Interval)
	})
}
