package engine

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"strata-hq/strata/pkg/access"
	"strata-hq/strata/pkg/trait"
	"strata-hq/strata/pkg/typedesc"
)

// Engine metrics register with the default registry once and are shared by
// every metrics-enabled engine, so these tests assert deltas.

func TestMetricsObserveChecks(t *testing.T) {
	eng := New(&Config{Registry: access.NewRegistry(), EnableMetrics: true})
	ctx := context.Background()
	person := personTrait()

	okBefore := testutil.ToFloat64(eng.metrics.checksTotal.WithLabelValues("ok"))
	violationBefore := testutil.ToFloat64(eng.metrics.checksTotal.WithLabelValues("violation"))
	missBefore := testutil.ToFloat64(eng.metrics.cacheMisses)
	hitBefore := testutil.ToFloat64(eng.metrics.cacheHits)

	good := map[string]any{"name": "Ada", "age": 36}
	if !eng.Satisfies(ctx, good, person) {
		t.Fatal("expected satisfaction")
	}
	if !eng.Satisfies(ctx, good, person) {
		t.Fatal("expected satisfaction on the cached path")
	}
	if eng.Satisfies(ctx, map[string]any{"name": "Ada"}, person) {
		t.Fatal("expected violation")
	}

	if got := testutil.ToFloat64(eng.metrics.checksTotal.WithLabelValues("ok")) - okBefore; got != 2 {
		t.Errorf("ok checks delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(eng.metrics.checksTotal.WithLabelValues("violation")) - violationBefore; got != 1 {
		t.Errorf("violation checks delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(eng.metrics.cacheMisses) - missBefore; got != 2 {
		t.Errorf("cache misses delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(eng.metrics.cacheHits) - hitBefore; got != 1 {
		t.Errorf("cache hits delta = %v, want 1", got)
	}
}

func TestMetricsObserveEvictions(t *testing.T) {
	eng := New(&Config{
		Registry:      access.NewRegistry(),
		EnableMetrics: true,
		CacheSize:     1,
	})
	ctx := context.Background()
	person := personTrait()

	before := testutil.ToFloat64(eng.metrics.cacheEvictions)

	eng.Satisfies(ctx, map[string]any{"name": "Ada", "age": 1}, person)
	eng.Satisfies(ctx, map[string]any{"name": "Ada", "age": 1, "email": "a@b"}, person)
	eng.Satisfies(ctx, map[string]any{"name": "Ada", "age": 1, "email": "a@b", "extra": true}, person)

	if got := testutil.ToFloat64(eng.metrics.cacheEvictions) - before; got < 2 {
		t.Errorf("eviction delta = %v, want at least 2", got)
	}
}

func TestMetricsDisabledAreNilSafe(t *testing.T) {
	var m *Metrics
	m.observeCheck(true, 0.001)
	m.observeCache(false)

	eng := New(&Config{Registry: access.NewRegistry()})
	if eng.metrics != nil {
		t.Error("metrics should stay nil unless enabled")
	}
	if !eng.Satisfies(context.Background(), map[string]any{"name": "Ada", "age": 1}, personTrait()) {
		t.Error("checks must work without metrics")
	}
}

func TestMetricsSharedAcrossEngines(t *testing.T) {
	a := New(&Config{Registry: access.NewRegistry(), EnableMetrics: true})
	b := New(&Config{Registry: access.NewRegistry(), EnableMetrics: true})
	if a.metrics != b.metrics {
		t.Error("metrics-enabled engines must share one collector set")
	}
}

func TestEngineSkipsPolicyMismatchedEntries(t *testing.T) {
	eng := New(&Config{Registry: access.NewRegistry()})
	ctx := context.Background()
	spec := trait.MustNew("Scored", trait.NewField("score", typedesc.Float()))
	value := map[string]any{"score": 1}

	if !eng.Satisfies(ctx, value, spec) {
		t.Error("int satisfies float under the default widening policy")
	}
	if eng.SatisfiesWith(ctx, value, spec, typedesc.Policy{}) {
		t.Error("strict policy must not reuse the widened verdict")
	}
}
