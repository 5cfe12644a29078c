package trait

import (
	"errors"
	"testing"

	"strata-hq/strata/pkg/typedesc"
)

func TestNew(t *testing.T) {
	t.Run("keeps declaration order", func(t *testing.T) {
		spec, err := New("Person",
			NewField("name", typedesc.String()),
			NewField("age", typedesc.Int()),
			NewField("email", typedesc.String()).Optional(),
		)
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		fields := spec.Fields()
		if len(fields) != 3 {
			t.Fatalf("expected 3 fields, got %d", len(fields))
		}
		for i, want := range []string{"name", "age", "email"} {
			if fields[i].Name != want {
				t.Errorf("field %d = %q, want %q", i, fields[i].Name, want)
			}
		}
	})

	t.Run("duplicate field name fails", func(t *testing.T) {
		_, err := New("Broken",
			NewField("id", typedesc.Int()),
			NewField("id", typedesc.String()),
		)
		if err == nil {
			t.Fatal("expected duplicate field error")
		}
		var dup *DuplicateFieldError
		if !errors.As(err, &dup) {
			t.Fatalf("expected *DuplicateFieldError, got %T", err)
		}
		if dup.Field != "id" || dup.Trait != "Broken" {
			t.Errorf("unexpected error detail: %+v", dup)
		}
	})

	t.Run("must new panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustNew should panic on duplicate fields")
			}
		}()
		MustNew("Broken", NewField("x", typedesc.Int()), NewField("x", typedesc.Int()))
	})
}

func TestFieldSpecModifiers(t *testing.T) {
	base := NewField("maxTokens", typedesc.Int())

	if !base.Required || !base.CheckTypes || base.AcceptAlias {
		t.Errorf("unexpected defaults: %+v", base)
	}

	opt := base.Optional()
	if opt.Required {
		t.Error("Optional should clear Required")
	}
	if !base.Required {
		t.Error("Optional must not mutate the receiver")
	}

	presence := base.PresenceOnly()
	if presence.CheckTypes {
		t.Error("PresenceOnly should clear CheckTypes")
	}

	aliased := base.WithAliases("token_limit")
	if !aliased.AcceptAlias {
		t.Error("WithAliases should set AcceptAlias")
	}
}

func TestFieldCandidates(t *testing.T) {
	tests := []struct {
		name  string
		field FieldSpec
		want  []string
	}{
		{
			name:  "no aliases",
			field: NewField("name", typedesc.String()),
			want:  []string{"name"},
		},
		{
			name:  "explicit aliases in order",
			field: NewField("id", typedesc.Int()).WithAliases("identifier", "key"),
			want:  []string{"id", "identifier", "key"},
		},
		{
			name:  "camel name derives snake variant",
			field: NewField("maxTokens", typedesc.Int()).WithAliases(),
			want:  []string{"maxTokens", "max_tokens"},
		},
		{
			name:  "snake name derives camel variant",
			field: NewField("max_tokens", typedesc.Int()).WithAliases(),
			want:  []string{"max_tokens", "maxTokens"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.field.Candidates()
			if len(got) != len(tt.want) {
				t.Fatalf("Candidates() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Candidates() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
