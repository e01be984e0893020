package metrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("Counters", func(t *testing.T) {
		m := NewMetrics()

		m.IncrementConnectionsTotal()
		m.IncrementConnectionsTotal()
		m.IncrementConnectionsFailed()
		m.IncrementValidationsTotal()
		m.IncrementValidationsSuccess()

		snapshot := m.GetSnapshot()
		assert.Equal(t, int64(2), snapshot.ConnectionsTotal)
		assert.Equal(t, int64(1), snapshot.ConnectionsFailed)
		assert.Equal(t, int64(1), snapshot.ValidationsTotal)
		assert.Equal(t, int64(1), snapshot.ValidationsSuccess)
		assert.Equal(t, int64(0), snapshot.ValidationsFailed)
	})

	t.Run("Latency", func(t *testing.T) {
		m := NewMetrics()

		m.RecordLatency(10)
		m.RecordLatency(30)

		snapshot := m.GetSnapshot()
		assert.Equal(t, int64(2), snapshot.ProbesTotal)
		assert.Equal(t, int64(10), snapshot.MinLatencyMs)
		assert.Equal(t, int64(30), snapshot.MaxLatencyMs)
		assert.Equal(t, int64(20), snapshot.AverageLatencyMs)
	})

	t.Run("AverageCountsConnectFailures", func(t *testing.T) {
		m := NewMetrics()

		// A failed connect never reaches validation but still takes time.
		m.IncrementConnectionsFailed()
		m.RecordLatency(90)

		m.IncrementValidationsTotal()
		m.IncrementValidationsSuccess()
		m.RecordLatency(10)

		assert.Equal(t, int64(50), m.GetAverageLatencyMs())
	})

	t.Run("AverageWithoutSamples", func(t *testing.T) {
		m := NewMetrics()
		assert.Equal(t, int64(0), m.GetAverageLatencyMs())
	})

	t.Run("Errors", func(t *testing.T) {
		m := NewMetrics()
		m.RecordError(errors.New("connection refused"))

		snapshot := m.GetSnapshot()
		assert.Equal(t, int64(1), snapshot.ErrorCount)
		assert.Equal(t, "connection refused", snapshot.LastError)
		assert.False(t, snapshot.LastErrorTime.IsZero())
	})

	t.Run("HealthStatus", func(t *testing.T) {
		m := NewMetrics()
		assert.Equal(t, "unknown", m.GetHealthStatus())

		m.UpdateHealthStatus("healthy")
		assert.Equal(t, "healthy", m.GetHealthStatus())
	})

	t.Run("Reset", func(t *testing.T) {
		m := NewMetrics()
		m.IncrementConnectionsTotal()
		m.RecordError(errors.New("boom"))
		m.UpdateHealthStatus("unhealthy")

		m.Reset()

		snapshot := m.GetSnapshot()
		assert.Equal(t, int64(0), snapshot.ConnectionsTotal)
		assert.Equal(t, int64(0), snapshot.ErrorCount)
		assert.Equal(t, "unknown", snapshot.HealthStatus)
		assert.Empty(t, snapshot.LastError)
	})

	t.Run("ConcurrentUpdates", func(t *testing.T) {
		m := NewMetrics()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				m.IncrementConnectionsTotal()
				m.RecordLatency(int64(n + 1))
			}(i)
		}
		wg.Wait()

		snapshot := m.GetSnapshot()
		assert.Equal(t, int64(50), snapshot.ConnectionsTotal)
		assert.Equal(t, int64(1), snapshot.MinLatencyMs)
		assert.Equal(t, int64(50), snapshot.MaxLatencyMs)
	})
}
