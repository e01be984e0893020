// Package tracing records probe spans: one span per probe with an event per
// phase (reachability, connect, validate), kept in a bounded in-memory
// buffer for the monitoring surface.
package tracing

import (
	"sync"
	"time"
)

// SpanStatus represents span status
type SpanStatus string

const (
	// SpanStatusOK indicates success
	SpanStatusOK SpanStatus = "ok"

	// SpanStatusError indicates an error
	SpanStatusError SpanStatus = "error"
)

// Phase is one timed step inside a probe span.
type Phase struct {
	Name     string        `json:"name"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Span represents a single probe of one target.
type Span struct {
	Target   string        `json:"target"`
	Dialect  string        `json:"dialect"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Status   SpanStatus    `json:"status"`
	Error    string        `json:"error,omitempty"`
	Phases   []Phase       `json:"phases,omitempty"`
}

// StartPhase appends a running phase and returns a closer that stamps its
// duration and error.
func (s *Span) StartPhase(name string) func(err error) {
	idx := len(s.Phases)
	s.Phases = append(s.Phases, Phase{Name: name, Start: time.Now()})

	return func(err error) {
		p := &s.Phases[idx]
		p.Duration = time.Since(p.Start)
		if err != nil {
			p.Error = err.Error()
		}
	}
}

// End stamps the span's duration and overall status.
func (s *Span) End(err error) {
	s.Duration = time.Since(s.Start)
	if err != nil {
		s.Status = SpanStatusError
		s.Error = err.Error()
		return
	}
	s.Status = SpanStatusOK
}

// Recorder keeps the most recent spans.
type Recorder struct {
	mu    sync.RWMutex
	limit int
	spans []*Span
}

// NewRecorder creates a recorder retaining at most limit spans.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 128
	}
	return &Recorder{
		limit: limit,
		spans: make([]*Span, 0, limit),
	}
}

// StartSpan begins a span for one probe of the named target.
func (r *Recorder) StartSpan(target, dialect string) *Span {
	return &Span{
		Target:  target,
		Dialect: dialect,
		Start:   time.Now(),
	}
}

// Record stores a finished span, evicting the oldest past the limit.
func (r *Recorder) Record(span *Span) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, span)
	if len(r.spans) > r.limit {
		r.spans = r.spans[len(r.spans)-r.limit:]
	}
}

// Spans returns the retained spans, oldest first.
func (r *Recorder) Spans() []*Span {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Span, len(r.spans))
	copy(result, r.spans)
	return result
}

// SpansFor returns retained spans for one target, oldest first.
func (r *Recorder) SpansFor(target string) []*Span {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Span
	for _, s := range r.spans {
		if s.Target == target {
			result = append(result, s)
		}
	}
	return result
}

// Global recorder
var globalRecorder = NewRecorder(256)

// StartSpan begins a span in the global recorder.
func StartSpan(target, dialect string) *Span {
	return globalRecorder.StartSpan(target, dialect)
}

// Record stores a span in the global recorder.
func Record(span *Span) {
	globalRecorder.Record(span)
}

// Spans returns spans from the global recorder.
func Spans() []*Span {
	return globalRecorder.Spans()
}

// SpansFor returns per-target spans from the global recorder.
func SpansFor(target string) []*Span {
	return globalRecorder.SpansFor(target)
}
