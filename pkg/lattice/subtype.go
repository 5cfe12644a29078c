package lattice

import (
	"strata-hq/strata/pkg/trait"
	"strata-hq/strata/pkg/typedesc"
)

// IsSubtype reports whether a <= b under the default policy: every value
// satisfying a also satisfies b.
func IsSubtype(a, b trait.Node) bool {
	return IsSubtypeWith(a, b, typedesc.DefaultPolicy())
}

// IsSubtypeWith reports whether a <= b under the given policy.
//
// Both expressions are normalized to disjunctive normal form, which
// collapses And, Or and Without into a flat disjunction of field
// requirement sets. a <= b then holds exactly when every disjunct of a
// implies some disjunct of b: any value admitted through one of a's
// branches must find a branch of b that admits it too.
func IsSubtypeWith(a, b trait.Node, policy typedesc.Policy) bool {
	lower := trait.DNF(a)
	upper := trait.DNF(b)

	for _, la := range lower {
		implied := false
		for _, ub := range upper {
			if conjImplies(la, ub, policy) {
				implied = true
				break
			}
		}
		if !implied {
			return false
		}
	}
	return true
}

// Equal reports whether a and b denote the same shape, independent of the
// human-readable names of the traits involved.
func Equal(a, b trait.Node) bool {
	return trait.Equal(a, b)
}

// Less reports a <= b and a != b.
func Less(a, b trait.Node) bool {
	return IsSubtype(a, b) && !Equal(a, b)
}

// GreaterEqual reports b <= a.
func GreaterEqual(a, b trait.Node) bool {
	return IsSubtype(b, a)
}

// Greater reports b <= a and a != b.
func Greater(a, b trait.Node) bool {
	return Less(b, a)
}

// conjImplies reports whether satisfying conjunct a guarantees satisfying
// conjunct b.
//
// Width: every field b requires must be constrained by a; fields known
// only to b but optional there impose nothing on values a admits, since
// an absent optional field passes silently. Depth: each type-checked
// constraint of b on a shared field must be entailed by some constraint
// of a, where "entailed" means a's declared type passes b's comparator
// check. Presence-only constraints of b need presence alone.
func conjImplies(a, b trait.Conjunct, policy typedesc.Policy) bool {
	for _, name := range b.FieldNames() {
		aSpecs := a.Constraints(name)

		if len(aSpecs) == 0 {
			if b.Required(name) {
				return false
			}
			continue
		}

		for _, bSpec := range b.Constraints(name) {
			if !bSpec.CheckTypes {
				continue
			}
			if !entailed(aSpecs, bSpec, policy) {
				return false
			}
		}
	}
	return true
}

// entailed reports whether some constraint in aSpecs guarantees bSpec's
// type requirement. A presence-only constraint guarantees nothing about
// the type, so it never entails a type-checked one.
func entailed(aSpecs []trait.FieldSpec, bSpec trait.FieldSpec, policy typedesc.Policy) bool {
	for _, aSpec := range aSpecs {
		if !aSpec.CheckTypes {
			continue
		}
		if typedesc.Compatible(bSpec.Type, aSpec.Type, policy) {
			return true
		}
	}
	return false
}
