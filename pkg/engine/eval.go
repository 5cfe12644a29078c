package engine

import (
	"fmt"

	"strata-hq/strata/pkg/trait"
	"strata-hq/strata/pkg/typedesc"
)

// evaluate walks an expression tree against a normalized shape. It is a
// pure function: the verdict depends only on the shape, the expression,
// and the policy, which is what makes verdicts cacheable.
func evaluate(shape Shape, expr *trait.Expr, policy typedesc.Policy) Verdict {
	switch expr.Kind() {
	case trait.ExprLeaf:
		return evaluateLeaf(shape, expr.Spec(), policy)

	case trait.ExprAnd:
		// Both children evaluate against the same shape; their evidence
		// concatenates, duplicates included.
		left := evaluate(shape, expr.Left(), policy)
		right := evaluate(shape, expr.Right(), policy)
		return left.merge(right)

	case trait.ExprOr:
		left := evaluate(shape, expr.Left(), policy)
		if left.OK {
			return Verdict{OK: true}
		}
		right := evaluate(shape, expr.Right(), policy)
		if right.OK {
			return Verdict{OK: true}
		}
		// Neither side holds: report the more actionable diagnostic, the
		// child with fewer violations, ties resolved to the left operand.
		if right.violations() < left.violations() {
			return right
		}
		return left

	case trait.ExprWithout:
		return evaluate(shape, expr.Pruned(), policy)

	default:
		return Verdict{OK: true}
	}
}

// evaluateLeaf checks every field requirement of a TraitSpec, in
// declaration order, accumulating violations as data.
func evaluateLeaf(shape Shape, spec trait.TraitSpec, policy typedesc.Policy) Verdict {
	verdict := Verdict{}

	for _, field := range spec.Fields() {
		observed, present := shape.Lookup(field.Candidates())

		if !present {
			if field.Required {
				verdict.Missing = append(verdict.Missing, field.Name)
				verdict.Reasons = append(verdict.Reasons,
					fmt.Sprintf("missing required field '%s'", field.Name))
			}
			continue
		}

		if !field.CheckTypes {
			continue
		}

		if !typedesc.Compatible(field.Type, observed, policy) {
			conflict := TypeConflict{
				Field:    field.Name,
				Expected: field.Type,
				Observed: observed,
			}
			verdict.TypeConflicts = append(verdict.TypeConflicts, conflict)
			verdict.Reasons = append(verdict.Reasons, conflict.String())
		}
	}

	verdict.OK = len(verdict.Missing) == 0 && len(verdict.TypeConflicts) == 0
	return verdict
}
