package loom

import (
	"time"

	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Hook intercepts binding resolution. Hooks can be used for logging,
// metrics, access control, testing, etc. They are attached to a module with
// WithHooks and observe every resolution through that module: public
// Instance calls, declaration-time resolution during the build, and
// deferred Provider/Lazy gets.
type Hook interface {
	// BeforeResolve is called before resolving a binding.
	// Return error to abort resolution; the binding's producer does not run.
	BeforeResolve(key string) error

	// AfterResolve is called after resolving a binding, even if resolution
	// failed (value and err may both be set). Return error to replace the
	// resolution result.
	AfterResolve(key string, value any, err error, elapsed time.Duration) error
}

// hookChain manages multiple hooks.
type hookChain struct {
	hooks []Hook
}

// newHookChain creates a hook chain. The chain is fixed at module
// construction and never mutated afterwards, so it is safe to share across
// goroutines without locking.
func newHookChain(hooks []Hook) *hookChain {
	return &hookChain{hooks: hooks}
}

// beforeResolve calls BeforeResolve on all hooks in order; the first error
// aborts.
func (c *hookChain) beforeResolve(key string) error {
	for _, h := range c.hooks {
		if err := h.BeforeResolve(key); err != nil {
			return err
		}
	}

	return nil
}

// afterResolve calls AfterResolve on all hooks in order; the first error
// replaces the resolution result.
func (c *hookChain) afterResolve(key string, value any, err error, elapsed time.Duration) error {
	for _, h := range c.hooks {
		if hookErr := h.AfterResolve(key, value, err, elapsed); hookErr != nil {
			return hookErr
		}
	}

	return nil
}

// FuncHook wraps functions as a Hook.
type FuncHook struct {
	BeforeResolveFunc func(key string) error
	AfterResolveFunc  func(key string, value any, err error, elapsed time.Duration) error
}

// BeforeResolve implements Hook.
func (f *FuncHook) BeforeResolve(key string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(key)
	}

	return nil
}

// AfterResolve implements Hook.
func (f *FuncHook) AfterResolve(key string, value any, err error, elapsed time.Duration) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(key, value, err, elapsed)
	}

	return nil
}

// NewLoggingHook creates a hook that logs every resolution: Debug on
// success, Error on failure, both with the binding key and elapsed time.
//
// Example:
//
//	m := loom.NewModule(decl, loom.WithHooks(loom.NewLoggingHook(log)))
func NewLoggingHook(l logger.Logger) Hook {
	return &FuncHook{
		AfterResolveFunc: func(key string, value any, err error, elapsed time.Duration) error {
			if err != nil {
				l.Error("binding resolution failed",
					logger.String("binding", key),
					logger.Duration("elapsed", elapsed),
					logger.Error(err),
				)

				return nil
			}

			l.Debug("binding resolved",
				logger.String("binding", key),
				logger.Duration("elapsed", elapsed),
			)

			return nil
		},
	}
}

// NewMetricsHook creates a hook that records a counter and a timer per
// resolution, tagged with the binding key, plus an error counter for failed
// resolutions.
func NewMetricsHook(m metrics.Metrics) Hook {
	return &FuncHook{
		AfterResolveFunc: func(key string, value any, err error, elapsed time.Duration) error {
			m.Counter("loom_resolve_total", "binding", key).Inc()
			m.Timer("loom_resolve_duration", "binding", key).Record(elapsed)

			if err != nil {
				m.Counter("loom_resolve_errors_total", "binding", key).Inc()
			}

			return nil
		},
	}
}
