package engine

import (
	"context"
	"testing"

	"strata-hq/strata/pkg/access"
	"strata-hq/strata/pkg/trait"
	"strata-hq/strata/pkg/typedesc"
)

func personTrait() trait.TraitSpec {
	return trait.MustNew("Person",
		trait.NewField("name", typedesc.String()),
		trait.NewField("age", typedesc.Int()),
	)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(&Config{Registry: access.NewRegistry()})
}

func TestSatisfiesLeaf(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()
	person := personTrait()

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "map with all fields", value: map[string]any{"name": "Ada", "age": 36}, want: true},
		{name: "map missing required field", value: map[string]any{"name": "Ada"}, want: false},
		{name: "map with wrong type", value: map[string]any{"name": "Ada", "age": "old"}, want: false},
		{name: "extra fields are ignored", value: map[string]any{"name": "Ada", "age": 36, "email": "a@b"}, want: true},
		{name: "struct value", value: struct {
			Name string
			Age  int
		}{"Ada", 36}, want: true},
		{name: "opaque value fails required fields", value: 42, want: false},
		{name: "nil value fails required fields", value: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eng.Satisfies(ctx, tt.value, person); got != tt.want {
				t.Errorf("Satisfies = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExplainMissingFieldReport(t *testing.T) {
	eng := newTestEngine(t)

	verdict := eng.Explain(context.Background(), map[string]any{"name": "Charlie"}, personTrait())

	if verdict.OK {
		t.Fatal("expected failure")
	}
	if len(verdict.Missing) != 1 || verdict.Missing[0] != "age" {
		t.Errorf("Missing = %v, want [age]", verdict.Missing)
	}
	if len(verdict.TypeConflicts) != 0 {
		t.Errorf("TypeConflicts = %v, want empty", verdict.TypeConflicts)
	}
	if len(verdict.Reasons) != 1 || verdict.Reasons[0] != "missing required field 'age'" {
		t.Errorf("Reasons = %v", verdict.Reasons)
	}
}

func TestNumericWidening(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	spec := trait.MustNew("X", trait.NewField("value", typedesc.Float()))
	value := map[string]any{"value": 42}

	if !eng.Satisfies(ctx, value, spec) {
		t.Error("int should satisfy float under the default policy")
	}

	strict := typedesc.Policy{AllowOptionalWidening: true}
	if eng.SatisfiesWith(ctx, value, spec, strict) {
		t.Error("int must not satisfy float with numeric widening disabled")
	}
}

func TestOptionalFields(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	spec := trait.MustNew("Profile",
		trait.NewField("name", typedesc.String()),
		trait.NewField("email", typedesc.String()).Optional(),
	)

	t.Run("absent optional is skipped silently", func(t *testing.T) {
		verdict := eng.Explain(ctx, map[string]any{"name": "Ada"}, spec)
		if !verdict.OK || len(verdict.Reasons) != 0 {
			t.Errorf("verdict = %+v", verdict)
		}
	})

	t.Run("present optional is still type checked", func(t *testing.T) {
		verdict := eng.Explain(ctx, map[string]any{"name": "Ada", "email": 5}, spec)
		if verdict.OK || len(verdict.TypeConflicts) != 1 {
			t.Errorf("verdict = %+v", verdict)
		}
	})
}

func TestPresenceOnlyField(t *testing.T) {
	eng := newTestEngine(t)
	spec := trait.MustNew("Tagged",
		trait.NewField("payload", typedesc.String()).PresenceOnly(),
	)

	if !eng.Satisfies(context.Background(), map[string]any{"payload": 123}, spec) {
		t.Error("presence-only field must bypass the comparator")
	}
}

func TestAliasResolution(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	spec := trait.MustNew("Limits",
		trait.NewField("maxTokens", typedesc.Int()).WithAliases("token_limit"),
	)

	tests := []struct {
		name  string
		value map[string]any
		want  bool
	}{
		{name: "primary name", value: map[string]any{"maxTokens": 10}, want: true},
		{name: "explicit alias", value: map[string]any{"token_limit": 10}, want: true},
		{name: "derived snake variant", value: map[string]any{"max_tokens": 10}, want: true},
		{name: "no candidate present", value: map[string]any{"tokens": 10}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eng.Satisfies(ctx, tt.value, spec); got != tt.want {
				t.Errorf("Satisfies = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAndConcatenatesEvidence(t *testing.T) {
	eng := newTestEngine(t)

	a := trait.MustNew("A", trait.NewField("x", typedesc.Int()))
	b := trait.MustNew("B",
		trait.NewField("x", typedesc.Int()),
		trait.NewField("y", typedesc.String()),
	)

	verdict := eng.Explain(context.Background(), map[string]any{}, trait.Intersect(a, b))

	if verdict.OK {
		t.Fatal("expected failure")
	}
	// x is required by both children, so it surfaces from both sides.
	if len(verdict.Missing) != 3 {
		t.Errorf("Missing = %v, want x, x, y", verdict.Missing)
	}
}

func TestOrDiagnosticTieBreak(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	oneField := trait.MustNew("Small", trait.NewField("only", typedesc.Int()))
	twoFields := trait.MustNew("Big",
		trait.NewField("first", typedesc.Int()),
		trait.NewField("second", typedesc.Int()),
	)

	t.Run("fewer violations win", func(t *testing.T) {
		verdict := eng.Explain(ctx, map[string]any{}, trait.Union(twoFields, oneField))
		if len(verdict.Missing) != 1 || verdict.Missing[0] != "only" {
			t.Errorf("Missing = %v, want [only]", verdict.Missing)
		}
	})

	t.Run("ties resolve to the left operand", func(t *testing.T) {
		left := trait.MustNew("L", trait.NewField("fromLeft", typedesc.Int()))
		right := trait.MustNew("R", trait.NewField("fromRight", typedesc.Int()))
		verdict := eng.Explain(ctx, map[string]any{}, trait.Union(left, right))
		if len(verdict.Missing) != 1 || verdict.Missing[0] != "fromLeft" {
			t.Errorf("Missing = %v, want [fromLeft]", verdict.Missing)
		}
	})

	t.Run("either side satisfies the union", func(t *testing.T) {
		if !eng.Satisfies(ctx, map[string]any{"only": 1}, trait.Union(twoFields, oneField)) {
			t.Error("right operand should satisfy")
		}
	})
}

func TestWithoutEvaluation(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()
	person := personTrait()

	anon := trait.Minus(person, "name")

	if !eng.Satisfies(ctx, map[string]any{"age": 30}, anon) {
		t.Error("removed field must not be required anymore")
	}
	if eng.Satisfies(ctx, map[string]any{"name": "Ada"}, anon) {
		t.Error("remaining fields still apply")
	}

	t.Run("applies below compositions", func(t *testing.T) {
		expr := trait.Minus(trait.Intersect(person, person), "age")
		if !eng.Satisfies(ctx, map[string]any{"name": "Ada"}, expr) {
			t.Error("exclusion should reach nested leaves")
		}
	})
}

func TestCachedVerdictsTrackContainerContents(t *testing.T) {
	type issue struct{ Code int }
	type report struct{ Tags []issue }

	eng := newTestEngine(t)
	ctx := context.Background()
	spec := trait.MustNew("Tagged",
		trait.NewField("tags", typedesc.SequenceOf(typedesc.String())),
	)

	// An empty slice carries no element evidence, so it passes; struct
	// elements do not satisfy sequence<string>. Same Go type, different
	// verdicts: the cache must keep them apart.
	if !eng.Satisfies(ctx, report{}, spec) {
		t.Error("empty slice should pass with no element evidence")
	}
	if eng.Satisfies(ctx, report{Tags: []issue{{1}}}, spec) {
		t.Error("struct elements must not satisfy sequence<string>")
	}
	if !eng.Satisfies(ctx, report{}, spec) {
		t.Error("empty slice verdict changed after checking a populated one")
	}
}

func TestFieldNameCaseSensitivity(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()
	spec := trait.MustNew("Named", trait.NewField("name", typedesc.String()))

	t.Run("map keys match exactly", func(t *testing.T) {
		if eng.Satisfies(ctx, map[string]any{"NAME": "Ada"}, spec) {
			t.Error("map key casing must be respected")
		}
		if !eng.Satisfies(ctx, map[string]any{"name": "Ada"}, spec) {
			t.Error("exact map key should satisfy")
		}
	})

	t.Run("struct fields fold case", func(t *testing.T) {
		if !eng.Satisfies(ctx, struct{ Name string }{"Ada"}, spec) {
			t.Error("exported struct field should satisfy a lower-case name")
		}
	})

	t.Run("record keys match exactly", func(t *testing.T) {
		rec := access.NewRecord().Set("NAME", "Ada", typedesc.String())
		if eng.Satisfies(ctx, rec, spec) {
			t.Error("record key casing must be respected")
		}
	})
}

func TestRecordValues(t *testing.T) {
	eng := newTestEngine(t)

	spec := trait.MustNew("Doc",
		trait.NewField("body", typedesc.String()),
		trait.NewField("tags", typedesc.SequenceOf(typedesc.String())),
	)

	rec := access.NewRecord().
		Set("body", "hello", typedesc.String()).
		Set("tags", []any{}, typedesc.SequenceOf(typedesc.String()))

	if !eng.Satisfies(context.Background(), rec, spec) {
		t.Error("declared descriptors should take priority over value derivation")
	}
}

func TestDefaultEngineHelpers(t *testing.T) {
	person := personTrait()

	if !Satisfies(map[string]any{"name": "Ada", "age": 1}, person) {
		t.Error("package-level Satisfies")
	}

	verdict := Explain(map[string]any{"name": "Ada"}, person)
	if verdict.OK || len(verdict.Missing) != 1 {
		t.Errorf("package-level Explain verdict = %+v", verdict)
	}

	strict := typedesc.Policy{}
	if SatisfiesWith(map[string]any{"name": "Ada", "age": 1.5}, person, strict) {
		t.Error("float must not satisfy int")
	}
}
