package tracing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	t.Run("PhasesAndSuccess", func(t *testing.T) {
		r := NewRecorder(8)
		span := r.StartSpan("db1", "mysql")

		done := span.StartPhase("connect")
		done(nil)
		done = span.StartPhase("validate")
		done(nil)

		span.End(nil)

		assert.Equal(t, SpanStatusOK, span.Status)
		assert.Empty(t, span.Error)
		require.Len(t, span.Phases, 2)
		assert.Equal(t, "connect", span.Phases[0].Name)
		assert.Equal(t, "validate", span.Phases[1].Name)
	})

	t.Run("PhaseError", func(t *testing.T) {
		r := NewRecorder(8)
		span := r.StartSpan("db1", "postgres")

		done := span.StartPhase("connect")
		done(errors.New("refused"))
		span.End(errors.New("refused"))

		assert.Equal(t, SpanStatusError, span.Status)
		assert.Equal(t, "refused", span.Error)
		assert.Equal(t, "refused", span.Phases[0].Error)
	})
}

func TestRecorder(t *testing.T) {
	t.Run("EvictsOldest", func(t *testing.T) {
		r := NewRecorder(3)

		for i := 0; i < 5; i++ {
			span := r.StartSpan(fmt.Sprintf("db%d", i), "mysql")
			span.End(nil)
			r.Record(span)
		}

		spans := r.Spans()
		require.Len(t, spans, 3)
		assert.Equal(t, "db2", spans[0].Target)
		assert.Equal(t, "db4", spans[2].Target)
	})

	t.Run("SpansFor", func(t *testing.T) {
		r := NewRecorder(8)
		for _, target := range []string{"a", "b", "a"} {
			span := r.StartSpan(target, "mysql")
			span.End(nil)
			r.Record(span)
		}

		assert.Len(t, r.SpansFor("a"), 2)
		assert.Len(t, r.SpansFor("b"), 1)
		assert.Empty(t, r.SpansFor("c"))
	})

	t.Run("ZeroLimitGetsDefault", func(t *testing.T) {
		r := NewRecorder(0)
		assert.Equal(t, 128, r.limit)
	})
}
