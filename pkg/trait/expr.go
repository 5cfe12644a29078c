package trait

import (
	"github.com/cespare/xxhash/v2"
)

// ExprKind identifies the variant of an expression node.
type ExprKind string

const (
	// ExprLeaf wraps a single TraitSpec.
	ExprLeaf ExprKind = "leaf"

	// ExprAnd requires both children to be satisfied.
	ExprAnd ExprKind = "and"

	// ExprOr requires at least one child to be satisfied.
	ExprOr ExprKind = "or"

	// ExprWithout evaluates its child with a set of field names removed
	// from every leaf.
	ExprWithout ExprKind = "without"
)

// Node is anything that lowers to an expression tree: a TraitSpec or an
// *Expr. All composition and checking entry points accept either.
type Node interface {
	lower() *Expr
}

// Lower returns the expression tree form of a node. TraitSpecs lower to a
// leaf; expressions lower to themselves. A nil node lowers to an empty
// leaf, which every value satisfies.
func Lower(n Node) *Expr {
	if n == nil {
		return Leaf(TraitSpec{})
	}
	return n.lower()
}

// Expr is the canonical algebraic form of a trait: a tagged tree of leaf
// TraitSpecs combined with And, Or and Without. Expressions are immutable
// after construction and carry a precomputed canonical signature, so
// equality checks and cache keying are O(1).
type Expr struct {
	kind ExprKind

	spec TraitSpec // leaf

	left  *Expr // and, or
	right *Expr // and, or

	child    *Expr    // without
	excluded []string // without
	pruned   *Expr    // without: de-sugared copy with exclusions applied

	signature   string
	fingerprint uint64
}

// Leaf wraps a TraitSpec in an expression tree.
func Leaf(spec TraitSpec) *Expr {
	e := &Expr{kind: ExprLeaf, spec: spec}
	e.seal()
	return e
}

// Union returns the join of two traits: a value satisfying either operand
// satisfies the union.
func Union(a, b Node) *Expr {
	e := &Expr{kind: ExprOr, left: Lower(a), right: Lower(b)}
	e.seal()
	return e
}

// Intersect returns the meet of two traits: a value must satisfy both
// operands to satisfy the intersection.
func Intersect(a, b Node) *Expr {
	e := &Expr{kind: ExprAnd, left: Lower(a), right: Lower(b)}
	e.seal()
	return e
}

// Minus removes the named fields from every leaf of the trait. Removing a
// name the trait never declares is a no-op, consistent with set-difference
// semantics.
func Minus(a Node, fieldNames ...string) *Expr {
	child := Lower(a)
	excluded := append([]string(nil), fieldNames...)

	set := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		set[name] = true
	}

	e := &Expr{
		kind:     ExprWithout,
		child:    child,
		excluded: excluded,
		pruned:   prune(child, set),
	}
	e.seal()
	return e
}

// Kind returns the expression variant.
func (e *Expr) Kind() ExprKind { return e.kind }

// Spec returns the wrapped TraitSpec of a leaf node.
func (e *Expr) Spec() TraitSpec { return e.spec }

// Left returns the left child of an and/or node.
func (e *Expr) Left() *Expr { return e.left }

// Right returns the right child of an and/or node.
func (e *Expr) Right() *Expr { return e.right }

// Child returns the wrapped child of a without node.
func (e *Expr) Child() *Expr { return e.child }

// Excluded returns the field names removed by a without node. The returned
// slice is shared; callers must not modify it.
func (e *Expr) Excluded() []string { return e.excluded }

// Pruned returns the de-sugared form of a without node: the child tree
// with the exclusions already applied to every leaf. It is computed once
// at construction. For other kinds it returns the expression itself.
func (e *Expr) Pruned() *Expr {
	if e.kind == ExprWithout {
		return e.pruned
	}
	return e
}

// Signature returns the canonical structural identity of the expression.
// Algebraically equivalent trees share a signature; the diagnostic names
// of the underlying TraitSpecs do not participate.
func (e *Expr) Signature() string { return e.signature }

// Fingerprint returns a 64-bit hash of the signature, suitable for cache
// keying.
func (e *Expr) Fingerprint() uint64 { return e.fingerprint }

// lower implements Node.
func (e *Expr) lower() *Expr { return e }

// seal computes the canonical signature and fingerprint. Called exactly
// once, at the end of construction.
func (e *Expr) seal() {
	e.signature = canonicalSignature(e)
	e.fingerprint = xxhash.Sum64String(e.signature)
}

// prune rewrites a tree with the excluded field names removed from every
// leaf. Nested without nodes contribute their own exclusions through their
// already-pruned form.
func prune(e *Expr, excluded map[string]bool) *Expr {
	if len(excluded) == 0 {
		return e
	}
	switch e.kind {
	case ExprLeaf:
		return Leaf(e.spec.without(excluded))
	case ExprAnd:
		p := &Expr{kind: ExprAnd, left: prune(e.left, excluded), right: prune(e.right, excluded)}
		p.seal()
		return p
	case ExprOr:
		p := &Expr{kind: ExprOr, left: prune(e.left, excluded), right: prune(e.right, excluded)}
		p.seal()
		return p
	case ExprWithout:
		return prune(e.pruned, excluded)
	default:
		return e
	}
}

// Equal reports whether two traits are structurally identical, independent
// of their diagnostic names and of how the trees were composed.
func Equal(a, b Node) bool {
	return Lower(a).signature == Lower(b).signature
}
