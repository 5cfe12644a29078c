package trait

import "fmt"

// DuplicateFieldError reports a duplicate field name passed to New. It is
// the only fatal construction error in the package: everything downstream
// of construction reports outcomes as data, never as errors.
type DuplicateFieldError struct {
	Trait string
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("trait %q: duplicate field name %q", e.Trait, e.Field)
}

// TraitSpec is a named flat collection of field requirements. The name is
// diagnostic only and never participates in identity; two TraitSpecs with
// the same field requirements compare Equal regardless of their names.
//
// Field names are unique within a TraitSpec and keep declaration order.
// TraitSpecs are immutable after construction.
type TraitSpec struct {
	name   string
	fields []FieldSpec
}

// New constructs a TraitSpec from fields in declaration order. It fails
// with a *DuplicateFieldError when two fields share a name.
func New(name string, fields ...FieldSpec) (TraitSpec, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return TraitSpec{}, &DuplicateFieldError{Trait: name, Field: f.Name}
		}
		seen[f.Name] = true
	}
	return TraitSpec{
		name:   name,
		fields: append([]FieldSpec(nil), fields...),
	}, nil
}

// MustNew is New for statically known traits. It panics on duplicate
// field names.
func MustNew(name string, fields ...FieldSpec) TraitSpec {
	spec, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return spec
}

// Name returns the diagnostic trait name.
func (s TraitSpec) Name() string { return s.name }

// Fields returns the field requirements in declaration order. The returned
// slice is shared; callers must not modify it.
func (s TraitSpec) Fields() []FieldSpec { return s.fields }

// Len returns the number of field requirements.
func (s TraitSpec) Len() int { return len(s.fields) }

// Field returns the requirement with the given primary name.
func (s TraitSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// without returns a copy of the spec with the excluded field names removed.
// Removing a name that is not declared is a no-op.
func (s TraitSpec) without(excluded map[string]bool) TraitSpec {
	kept := make([]FieldSpec, 0, len(s.fields))
	for _, f := range s.fields {
		if !excluded[f.Name] {
			kept = append(kept, f)
		}
	}
	return TraitSpec{name: s.name, fields: kept}
}

// lower implements Node, wrapping the spec in a leaf expression.
func (s TraitSpec) lower() *Expr { return Leaf(s) }
