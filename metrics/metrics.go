package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects operational counters for one probe target.
type Metrics struct {
	// Connection metrics
	ConnectionsTotal  int64
	ConnectionsFailed int64

	// Validation metrics
	ValidationsTotal   int64
	ValidationsSuccess int64
	ValidationsFailed  int64

	// Performance metrics. One latency sample is recorded per probe, so
	// ProbesTotal is the divisor for the average.
	ProbesTotal    int64
	TotalLatencyMs int64
	MinLatencyMs   int64
	MaxLatencyMs   int64

	// Health status
	LastProbe     time.Time
	HealthStatus  string
	ErrorCount    int64
	LastError     string
	LastErrorTime time.Time

	mu sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		HealthStatus: "unknown",
		LastProbe:    time.Now(),
		MinLatencyMs: 999999,
	}
}

// IncrementConnectionsTotal increments the connection attempts counter
func (m *Metrics) IncrementConnectionsTotal() {
	atomic.AddInt64(&m.ConnectionsTotal, 1)
}

// IncrementConnectionsFailed increments the failed connections counter
func (m *Metrics) IncrementConnectionsFailed() {
	atomic.AddInt64(&m.ConnectionsFailed, 1)
}

// IncrementValidationsTotal increments the validity checks counter
func (m *Metrics) IncrementValidationsTotal() {
	atomic.AddInt64(&m.ValidationsTotal, 1)
}

// IncrementValidationsSuccess increments the successful checks counter
func (m *Metrics) IncrementValidationsSuccess() {
	atomic.AddInt64(&m.ValidationsSuccess, 1)
}

// IncrementValidationsFailed increments the failed checks counter
func (m *Metrics) IncrementValidationsFailed() {
	atomic.AddInt64(&m.ValidationsFailed, 1)
}

// RecordLatency records a probe latency sample
func (m *Metrics) RecordLatency(latencyMs int64) {
	atomic.AddInt64(&m.ProbesTotal, 1)
	atomic.AddInt64(&m.TotalLatencyMs, latencyMs)

	// Update min latency
	for {
		currentMin := atomic.LoadInt64(&m.MinLatencyMs)
		if latencyMs >= currentMin {
			break
		}
		if atomic.CompareAndSwapInt64(&m.MinLatencyMs, currentMin, latencyMs) {
			break
		}
	}

	// Update max latency
	for {
		currentMax := atomic.LoadInt64(&m.MaxLatencyMs)
		if latencyMs <= currentMax {
			break
		}
		if atomic.CompareAndSwapInt64(&m.MaxLatencyMs, currentMax, latencyMs) {
			break
		}
	}
}

// RecordError records an error
func (m *Metrics) RecordError(err error) {
	atomic.AddInt64(&m.ErrorCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastError = err.Error()
	m.LastErrorTime = time.Now()
}

// UpdateHealthStatus updates health status
func (m *Metrics) UpdateHealthStatus(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.HealthStatus = status
	m.LastProbe = time.Now()
}

// GetHealthStatus returns current health status
func (m *Metrics) GetHealthStatus() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.HealthStatus
}

// GetAverageLatencyMs returns average latency in milliseconds
func (m *Metrics) GetAverageLatencyMs() int64 {
	total := atomic.LoadInt64(&m.TotalLatencyMs)
	count := atomic.LoadInt64(&m.ProbesTotal)

	if count == 0 {
		return 0
	}

	return total / count
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		ConnectionsTotal:   atomic.LoadInt64(&m.ConnectionsTotal),
		ConnectionsFailed:  atomic.LoadInt64(&m.ConnectionsFailed),
		ValidationsTotal:   atomic.LoadInt64(&m.ValidationsTotal),
		ValidationsSuccess: atomic.LoadInt64(&m.ValidationsSuccess),
		ValidationsFailed:  atomic.LoadInt64(&m.ValidationsFailed),
		ProbesTotal:        atomic.LoadInt64(&m.ProbesTotal),
		AverageLatencyMs:   m.GetAverageLatencyMs(),
		MinLatencyMs:       atomic.LoadInt64(&m.MinLatencyMs),
		MaxLatencyMs:       atomic.LoadInt64(&m.MaxLatencyMs),
		HealthStatus:       m.HealthStatus,
		LastProbe:          m.LastProbe,
		ErrorCount:         atomic.LoadInt64(&m.ErrorCount),
		LastError:          m.LastError,
		LastErrorTime:      m.LastErrorTime,
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	ConnectionsTotal   int64     `json:"connections_total"`
	ConnectionsFailed  int64     `json:"connections_failed"`
	ValidationsTotal   int64     `json:"validations_total"`
	ValidationsSuccess int64     `json:"validations_success"`
	ValidationsFailed  int64     `json:"validations_failed"`
	ProbesTotal        int64     `json:"probes_total"`
	AverageLatencyMs   int64     `json:"average_latency_ms"`
	MinLatencyMs       int64     `json:"min_latency_ms"`
	MaxLatencyMs       int64     `json:"max_latency_ms"`
	HealthStatus       string    `json:"health_status"`
	LastProbe          time.Time `json:"last_probe"`
	ErrorCount         int64     `json:"error_count"`
	LastError          string    `json:"last_error"`
	LastErrorTime      time.Time `json:"last_error_time"`
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.ConnectionsTotal, 0)
	atomic.StoreInt64(&m.ConnectionsFailed, 0)
	atomic.StoreInt64(&m.ValidationsTotal, 0)
	atomic.StoreInt64(&m.ValidationsSuccess, 0)
	atomic.StoreInt64(&m.ValidationsFailed, 0)
	atomic.StoreInt64(&m.ProbesTotal, 0)
	atomic.StoreInt64(&m.TotalLatencyMs, 0)
	atomic.StoreInt64(&m.MinLatencyMs, 999999)
	atomic.StoreInt64(&m.MaxLatencyMs, 0)
	atomic.StoreInt64(&m.ErrorCount, 0)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.HealthStatus = "unknown"
	m.LastProbe = time.Now()
	m.LastError = ""
	m.LastErrorTime = time.Time{}
}
