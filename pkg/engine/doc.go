// Package engine evaluates values against trait expressions and explains
// the outcome.
//
// The engine is a synchronous, CPU-bound library: every check is bounded
// by the number of fields in the expression tree and returns
// deterministically. Evaluation outcomes are data, never errors: a
// missing required field or a type conflict lands in the Verdict so that
// Explain always runs to completion and reports every violation at once.
// Values no adapter recognizes are treated as having no fields at all,
// which keeps Satisfies total over the universe of all values.
//
// Repeated checks against same-shaped values are served from a bounded
// compute-once cache keyed by the value's shape (field names plus coarse
// type tags), the comparison policy, and the expression fingerprint.
//
// Basic usage:
//
//	person := trait.MustNew("Person",
//	    trait.NewField("name", typedesc.String()),
//	    trait.NewField("age", typedesc.Int()),
//	)
//
//	if engine.Satisfies(value, person) {
//	    ...
//	}
//	verdict := engine.Explain(value, person)
//	for _, reason := range verdict.Reasons {
//	    fmt.Println(reason)
//	}
package engine
