package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProbe = errors.New("probe failed")

func failN(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		cb.Execute(func() error { return errProbe })
	}
}

func TestCircuitBreaker(t *testing.T) {
	t.Run("StaysClosedOnSuccess", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{})

		for i := 0; i < 10; i++ {
			require.NoError(t, cb.Execute(func() error { return nil }))
		}

		assert.Equal(t, StateClosed, cb.GetState())
		counts := cb.GetCounts()
		assert.Equal(t, uint32(10), counts.Requests)
		assert.Equal(t, uint32(10), counts.TotalSuccesses)
	})

	t.Run("TripsAfterConsecutiveFailures", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{})

		failN(cb, 2)
		assert.Equal(t, StateClosed, cb.GetState())

		failN(cb, 1)
		assert.Equal(t, StateOpen, cb.GetState())

		err := cb.Execute(func() error { return nil })
		assert.ErrorIs(t, err, ErrCircuitOpen)
	})

	t.Run("SuccessResetsConsecutiveFailures", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{})

		failN(cb, 2)
		require.NoError(t, cb.Execute(func() error { return nil }))
		failN(cb, 2)

		assert.Equal(t, StateClosed, cb.GetState())
	})

	t.Run("HalfOpenRecovery", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{Timeout: 10 * time.Millisecond})

		failN(cb, 3)
		require.Equal(t, StateOpen, cb.GetState())

		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, StateHalfOpen, cb.GetState())

		require.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, StateClosed, cb.GetState())
	})

	t.Run("HalfOpenFailureReopens", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{Timeout: 10 * time.Millisecond})

		failN(cb, 3)
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, StateHalfOpen, cb.GetState())

		cb.Execute(func() error { return errProbe })
		assert.Equal(t, StateOpen, cb.GetState())
	})

	t.Run("HalfOpenTrialBudget", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{Timeout: 10 * time.Millisecond, MaxRequests: 1})

		failN(cb, 3)
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, StateHalfOpen, cb.GetState())

		started := make(chan struct{})
		release := make(chan struct{})
		go cb.Execute(func() error {
			close(started)
			<-release
			return nil
		})

		<-started
		err := cb.Execute(func() error { return nil })
		assert.ErrorIs(t, err, ErrTooManyRequests)
		close(release)
	})

	t.Run("OnStateChange", func(t *testing.T) {
		var transitions []string
		cb := NewCircuitBreaker("db", Settings{
			OnStateChange: func(name string, from, to State) {
				transitions = append(transitions, from.String()+">"+to.String())
			},
		})

		failN(cb, 3)
		assert.Equal(t, []string{"closed>open"}, transitions)
	})

	t.Run("CustomReadyToTrip", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{
			ReadyToTrip: func(counts Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
		})

		failN(cb, 1)
		assert.Equal(t, StateOpen, cb.GetState())
	})

	t.Run("Reset", func(t *testing.T) {
		cb := NewCircuitBreaker("db", Settings{})

		failN(cb, 3)
		require.Equal(t, StateOpen, cb.GetState())

		cb.Reset()
		assert.Equal(t, StateClosed, cb.GetState())
		assert.Equal(t, Counts{}, cb.GetCounts())
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}
