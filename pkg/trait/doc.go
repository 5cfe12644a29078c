// Package trait defines the structural trait model: single field
// requirements (FieldSpec), flat named shape requirements (TraitSpec), and
// the algebraic expression tree (Expr) every derived trait lowers to.
//
// TraitSpecs and Exprs are immutable after construction and freely
// shareable across goroutines. Derived traits are built with Union,
// Intersect and Minus, which operate purely on expression trees and never
// touch live values:
//
//	person := trait.MustNew("Person",
//	    trait.NewField("name", typedesc.String()),
//	    trait.NewField("age", typedesc.Int()),
//	)
//	contact := trait.Union(person, org)          // satisfied by either
//	employee := trait.Intersect(person, payroll) // must satisfy both
//	anon := trait.Minus(person, "name")          // Person without "name"
//
// Identity is structural: Equal compares canonical signatures derived from
// the field requirements, so the diagnostic Name of a TraitSpec never
// participates in equality, and algebraically equivalent trees (for
// example union(a, a) and a) compare equal.
package trait
