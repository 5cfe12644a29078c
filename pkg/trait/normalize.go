package trait

import (
	"sort"
	"strings"
)

// Conjunct is one disjunct of an expression's disjunctive normal form: the
// merged field requirements of an And-combination of leaves. A value
// satisfies the conjunct when it satisfies every constraint of every field.
type Conjunct struct {
	// constraints maps a field name to the requirements imposed on it,
	// deduplicated by field signature.
	constraints map[string][]FieldSpec
}

// DNF normalizes an expression tree to disjunctive normal form: a
// disjunction of conjuncts, each a flat merged field-requirement set.
// Without nodes contribute through their pruned form, so exclusions are
// already applied. The result is deduplicated and ordered canonically.
func DNF(n Node) []Conjunct {
	conjuncts := dnf(Lower(n))

	seen := make(map[string]bool, len(conjuncts))
	out := make([]Conjunct, 0, len(conjuncts))
	for _, c := range conjuncts {
		sig := c.signature()
		if !seen[sig] {
			seen[sig] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].signature() < out[j].signature() })
	return out
}

func dnf(e *Expr) []Conjunct {
	switch e.kind {
	case ExprLeaf:
		c := Conjunct{constraints: make(map[string][]FieldSpec, e.spec.Len())}
		for _, f := range e.spec.Fields() {
			c.constraints[f.Name] = []FieldSpec{f}
		}
		return []Conjunct{c}

	case ExprAnd:
		left := dnf(e.left)
		right := dnf(e.right)
		out := make([]Conjunct, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, mergeConjuncts(l, r))
			}
		}
		return out

	case ExprOr:
		return append(dnf(e.left), dnf(e.right)...)

	case ExprWithout:
		return dnf(e.pruned)

	default:
		return nil
	}
}

// mergeConjuncts combines the field requirements of two conjuncts.
// Requirements on the same field accumulate; duplicates collapse.
func mergeConjuncts(a, b Conjunct) Conjunct {
	merged := make(map[string][]FieldSpec, len(a.constraints)+len(b.constraints))
	for name, specs := range a.constraints {
		merged[name] = append([]FieldSpec(nil), specs...)
	}
	for name, specs := range b.constraints {
		for _, spec := range specs {
			if !containsSpec(merged[name], spec) {
				merged[name] = append(merged[name], spec)
			}
		}
	}
	return Conjunct{constraints: merged}
}

func containsSpec(specs []FieldSpec, candidate FieldSpec) bool {
	sig := candidate.signature()
	for _, s := range specs {
		if s.signature() == sig {
			return true
		}
	}
	return false
}

// FieldNames returns the constrained field names in sorted order.
func (c Conjunct) FieldNames() []string {
	names := make([]string, 0, len(c.constraints))
	for name := range c.constraints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constraints returns the requirements imposed on a field, or nil when the
// conjunct does not constrain it.
func (c Conjunct) Constraints(name string) []FieldSpec {
	return c.constraints[name]
}

// Required reports whether any requirement marks the field as mandatory.
func (c Conjunct) Required(name string) bool {
	for _, spec := range c.constraints[name] {
		if spec.Required {
			return true
		}
	}
	return false
}

// signature returns the canonical identity of the conjunct: fields sorted
// by name, each with its constraint signatures sorted.
func (c Conjunct) signature() string {
	names := c.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		sigs := make([]string, 0, len(c.constraints[name]))
		for _, spec := range c.constraints[name] {
			sigs = append(sigs, spec.signature())
		}
		sort.Strings(sigs)
		parts = append(parts, name+"{"+strings.Join(sigs, ";")+"}")
	}
	return strings.Join(parts, ",")
}

// canonicalSignature renders an expression's identity from its normal
// form: the sorted, deduplicated signatures of its conjuncts.
func canonicalSignature(e *Expr) string {
	conjuncts := DNF(e)
	parts := make([]string, 0, len(conjuncts))
	for _, c := range conjuncts {
		parts = append(parts, "("+c.signature()+")")
	}
	return strings.Join(parts, "|")
}
