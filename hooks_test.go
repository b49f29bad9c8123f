package loom

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// captureMetrics implements metrics.Metrics through embedding; only the
// methods the metrics hook calls are overridden.
type captureMetrics struct {
	metrics.Metrics

	mu     sync.Mutex
	counts map[string]int
}

func newCaptureMetrics() *captureMetrics {
	return &captureMetrics{counts: make(map[string]int)}
}

func (c *captureMetrics) record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[name]++
}

func (c *captureMetrics) Counter(name string, opts ...metrics.MetricOption) metrics.Counter {
	return &captureCounter{inc: func() { c.record(name) }}
}

func (c *captureMetrics) Timer(name string, opts ...metrics.MetricOption) metrics.Timer {
	return &captureTimer{onRecord: func(time.Duration) { c.record(name) }}
}

type captureCounter struct {
	metrics.Counter

	inc func()
}

func (c *captureCounter) Inc() {
	c.inc()
}

type captureTimer struct {
	metrics.Timer

	onRecord func(time.Duration)
}

func (t *captureTimer) Record(d time.Duration) {
	t.onRecord(d)
}

func TestHooks_Order(t *testing.T) {
	var events []string

	hook := func(name string) Hook {
		return &FuncHook{
			BeforeResolveFunc: func(key string) error {
				events = append(events, name+":before")

				return nil
			},
			AfterResolveFunc: func(key string, value any, err error, elapsed time.Duration) error {
				events = append(events, name+":after")

				return nil
			},
		}
	}

	m := NewModule(func(b *Builder) error {
		Value(b, "value")

		return nil
	}, WithHooks(hook("first"), hook("second")))

	_, err := Instance[string](m)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"first:before",
		"second:before",
		"first:after",
		"second:after",
	}, events)
}

func TestHooks_KeyFormat(t *testing.T) {
	var keys []string

	m := NewModule(func(b *Builder) error {
		ValueNamed(b, Named("primary"), "value")

		return nil
	}, WithHooks(&FuncHook{
		BeforeResolveFunc: func(key string) error {
			keys = append(keys, key)

			return nil
		},
	}))

	_, err := InstanceNamed[string](m, Named("primary"))
	require.NoError(t, err)

	assert.Equal(t, []string{"string[qualifier=primary]"}, keys)
}

func TestHooks_BeforeAborts(t *testing.T) {
	hookErr := errors.New("denied")
	produced := false

	m := NewModule(func(b *Builder) error {
		Factory(b, func(r Resolver, args Args) (string, error) {
			produced = true

			return "value", nil
		})

		return nil
	}, WithHooks(&FuncHook{
		BeforeResolveFunc: func(key string) error {
			return hookErr
		},
	}))

	_, err := Instance[string](m)
	assert.ErrorIs(t, err, hookErr)
	assert.False(t, produced)
}

func TestHooks_AfterReplacesResult(t *testing.T) {
	hookErr := errors.New("rejected by policy")

	m := NewModule(func(b *Builder) error {
		Value(b, "ok")

		return nil
	}, WithHooks(&FuncHook{
		AfterResolveFunc: func(key string, value any, err error, elapsed time.Duration) error {
			return hookErr
		},
	}))

	_, err := Instance[string](m)
	assert.ErrorIs(t, err, hookErr)
}

func TestHooks_AfterSeesError(t *testing.T) {
	produceErr := errors.New("boom")

	var seen error

	m := NewModule(func(b *Builder) error {
		Factory(b, func(r Resolver, args Args) (string, error) {
			return "", produceErr
		})

		return nil
	}, WithHooks(&FuncHook{
		AfterResolveFunc: func(key string, value any, err error, elapsed time.Duration) error {
			seen = err

			return nil
		},
	}))

	_, err := Instance[string](m)
	assert.ErrorIs(t, err, produceErr)
	assert.ErrorIs(t, seen, produceErr)
}

func TestHooks_Elapsed(t *testing.T) {
	var elapsed time.Duration

	m := NewModule(func(b *Builder) error {
		Factory(b, func(r Resolver, args Args) (string, error) {
			time.Sleep(10 * time.Millisecond)

			return "slow", nil
		})

		return nil
	}, WithHooks(&FuncHook{
		AfterResolveFunc: func(key string, value any, err error, d time.Duration) error {
			elapsed = d

			return nil
		},
	}))

	_, err := Instance[string](m)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestHooks_DeclarationTimeResolve(t *testing.T) {
	var keys []string

	m := NewModule(func(b *Builder) error {
		Value(b, 8080)

		port, err := Instance[int](b)
		if err != nil {
			return err
		}

		Value(b, fmt.Sprintf("listener:%d", port))

		return nil
	}, WithHooks(&FuncHook{
		BeforeResolveFunc: func(key string) error {
			keys = append(keys, key)

			return nil
		},
	}))

	require.NoError(t, m.Build())

	// Resolution inside the declaration block went through the hook chain
	assert.Equal(t, []string{"int"}, keys)
}

func TestHooks_ProviderGet(t *testing.T) {
	resolveCount := 0

	m := NewModule(func(b *Builder) error {
		Factory(b, func(r Resolver, args Args) (string, error) {
			return "v", nil
		})

		return nil
	}, WithHooks(&FuncHook{
		BeforeResolveFunc: func(key string) error {
			resolveCount++

			return nil
		},
	}))

	p, err := ProviderOf[string](m)
	require.NoError(t, err)

	// Creation only checks the binding exists
	assert.Equal(t, 0, resolveCount)

	_, err = p.Get()
	require.NoError(t, err)

	_, err = p.Get()
	require.NoError(t, err)

	assert.Equal(t, 2, resolveCount)
}

func TestNewLoggingHook(t *testing.T) {
	m := NewModule(func(b *Builder) error {
		Value(b, "logged")

		return nil
	}, WithHooks(NewLoggingHook(logger.NewNoopLogger())))

	got, err := Instance[string](m)
	require.NoError(t, err)
	assert.Equal(t, "logged", got)

	// The failure path logs without changing the outcome
	_, err = Instance[int](m)
	assert.ErrorIs(t, err, ErrBindingNotFoundSentinel)
}

func TestNewMetricsHook(t *testing.T) {
	capture := newCaptureMetrics()

	m := NewModule(func(b *Builder) error {
		Value(b, "measured")

		return nil
	}, WithHooks(NewMetricsHook(capture)))

	_, err := Instance[string](m)
	require.NoError(t, err)

	_, err = Instance[int](m)
	assert.Error(t, err)

	assert.Equal(t, 2, capture.counts["loom_resolve_total"])
	assert.Equal(t, 2, capture.counts["loom_resolve_duration"])
	assert.Equal(t, 1, capture.counts["loom_resolve_errors_total"])
}
