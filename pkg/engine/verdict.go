package engine

import (
	"fmt"

	"strata-hq/strata/pkg/typedesc"
)

// TypeConflict records a field whose observed type failed the comparator.
type TypeConflict struct {
	// Field is the primary declared field name.
	Field string

	// Expected is the declared type descriptor.
	Expected typedesc.Descriptor

	// Observed is the descriptor derived from the value.
	Observed typedesc.Descriptor
}

// String renders the conflict for diagnostics.
func (c TypeConflict) String() string {
	return fmt.Sprintf("field %q: expected %s, observed %s", c.Field, c.Expected, c.Observed)
}

// Verdict is the structured outcome of evaluating a value against a trait
// expression. Field order in Missing and TypeConflicts follows the
// declaration order of the relevant leaf.
//
// Verdicts returned from the engine may be shared through the cache;
// callers must treat the slices as read-only.
type Verdict struct {
	// OK reports overall satisfaction.
	OK bool

	// Missing lists required fields that were absent.
	Missing []string

	// TypeConflicts lists present fields whose types were incompatible.
	TypeConflicts []TypeConflict

	// Reasons is the human-readable account of every violation.
	Reasons []string
}

// violations is the total violation count, used for the Or diagnostic
// tie-break.
func (v Verdict) violations() int {
	return len(v.Missing) + len(v.TypeConflicts)
}

// merge concatenates the evidence of two verdicts (the And rule):
// duplicates from shared field names surface from both sides so callers
// see every violated child constraint.
func (v Verdict) merge(other Verdict) Verdict {
	return Verdict{
		OK:            v.OK && other.OK,
		Missing:       appendCopy(v.Missing, other.Missing),
		TypeConflicts: appendCopy(v.TypeConflicts, other.TypeConflicts),
		Reasons:       appendCopy(v.Reasons, other.Reasons),
	}
}

func appendCopy[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
