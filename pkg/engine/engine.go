package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"strata-hq/strata/pkg/access"
	"strata-hq/strata/pkg/trait"
	"strata-hq/strata/pkg/typedesc"
)

// Config configures a satisfaction engine. The zero value of every field
// has a sensible default.
type Config struct {
	// Logger receives debug-level evaluation logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Registry resolves value adapters. Defaults to access.DefaultRegistry().
	Registry *access.Registry

	// Policy is the comparison policy applied when a check does not carry
	// its own. Defaults to typedesc.DefaultPolicy().
	Policy *typedesc.Policy

	// CacheSize bounds the verdict cache. Zero means DefaultCacheSize.
	CacheSize int

	// DisableCache turns verdict memoization off entirely.
	DisableCache bool

	// EnableMetrics turns on Prometheus metrics for checks and the cache.
	EnableMetrics bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Engine evaluates values against trait expressions. Engines are safe for
// concurrent use: the only mutable state is the verdict cache, which
// serializes cold-miss computation per key and serves hits as pure reads.
type Engine struct {
	logger   *slog.Logger
	registry *access.Registry
	policy   typedesc.Policy
	cache    *Cache
	metrics  *Metrics
	tracer   trace.Tracer
}

// New creates an engine. A nil config uses the defaults.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := cfg.Registry
	if registry == nil {
		registry = access.DefaultRegistry()
	}

	policy := typedesc.DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}

	e := &Engine{
		logger:   logger,
		registry: registry,
		policy:   policy,
		tracer:   otel.Tracer("strata-hq/strata/pkg/engine"),
	}

	if cfg.EnableMetrics {
		e.metrics = sharedEngineMetrics()
	}

	if !cfg.DisableCache {
		e.cache = NewCache(cfg.CacheSize)
		if e.metrics != nil {
			e.cache.onEvict = e.metrics.cacheEvictions.Inc
		}
	}

	return e
}

// Satisfies reports whether the value satisfies the trait under the
// engine's default policy. It never returns an error: values no adapter
// recognizes simply have no fields.
func (e *Engine) Satisfies(ctx context.Context, value any, n trait.Node) bool {
	return e.ExplainWith(ctx, value, n, e.policy).OK
}

// SatisfiesWith is Satisfies under an explicit policy.
func (e *Engine) SatisfiesWith(ctx context.Context, value any, n trait.Node, policy typedesc.Policy) bool {
	return e.ExplainWith(ctx, value, n, policy).OK
}

// Explain evaluates the value against the trait under the engine's default
// policy and returns the full structured verdict.
func (e *Engine) Explain(ctx context.Context, value any, n trait.Node) Verdict {
	return e.ExplainWith(ctx, value, n, e.policy)
}

// ExplainWith is Explain under an explicit policy.
func (e *Engine) ExplainWith(ctx context.Context, value any, n trait.Node, policy typedesc.Policy) Verdict {
	expr := trait.Lower(n)
	start := time.Now()

	_, span := e.tracer.Start(ctx, "engine.evaluate")
	defer span.End()

	verdict, cacheHit := e.evaluateCached(value, expr, policy)

	span.SetAttributes(
		attribute.Bool("strata.ok", verdict.OK),
		attribute.Bool("strata.cache_hit", cacheHit),
		attribute.Int("strata.violations", verdict.violations()),
	)

	e.metrics.observeCache(cacheHit)
	e.metrics.observeCheck(verdict.OK, time.Since(start).Seconds())

	if !verdict.OK {
		e.logger.Debug("trait not satisfied",
			"missing", verdict.Missing,
			"type_conflicts", len(verdict.TypeConflicts),
			"cache_hit", cacheHit,
		)
	}

	return verdict
}

// evaluateCached serves the verdict from the cache when possible. With a
// cheap per-type shape key the cached path skips field enumeration
// entirely; otherwise the shape is captured first and its content hash
// keys the verdict.
func (e *Engine) evaluateCached(value any, expr *trait.Expr, policy typedesc.Policy) (Verdict, bool) {
	if e.cache == nil {
		return evaluate(captureShape(e.registry, value), expr, policy), false
	}

	if key, ok := cheapShapeKey(e.registry, value); ok {
		return e.cache.getOrCompute(cacheKey{shape: key, policy: policy, expr: expr.Fingerprint()}, func() Verdict {
			return evaluate(captureShape(e.registry, value), expr, policy)
		})
	}

	shape := captureShape(e.registry, value)
	return e.cache.getOrCompute(cacheKey{shape: shape.Key, policy: policy, expr: expr.Fingerprint()}, func() Verdict {
		return evaluate(shape, expr, policy)
	})
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

// Default returns the process-wide engine with default configuration. It
// is initialized lazily, once.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New(nil)
	})
	return defaultEngine
}

// Satisfies checks a value against a trait with the default engine and
// policy.
func Satisfies(value any, n trait.Node) bool {
	return Default().Satisfies(context.Background(), value, n)
}

// SatisfiesWith is Satisfies under an explicit policy.
func SatisfiesWith(value any, n trait.Node, policy typedesc.Policy) bool {
	return Default().SatisfiesWith(context.Background(), value, n, policy)
}

// Explain explains a value against a trait with the default engine and
// policy.
func Explain(value any, n trait.Node) Verdict {
	return Default().Explain(context.Background(), value, n)
}

// ExplainWith is Explain under an explicit policy.
func ExplainWith(value any, n trait.Node, policy typedesc.Policy) Verdict {
	return Default().ExplainWith(context.Background(), value, n, policy)
}
