// Package lattice implements the subtype relation over trait expressions
// and its derived comparison operators.
//
// The relation a <= b reads "every value satisfying a also satisfies b";
// a is the more specific shape. It is computed structurally over the
// disjunctive normal forms of both expressions rather than by enumerating
// values: a shape with more fields is below one with fewer (width), and a
// shape whose field types are narrower is below one whose types are more
// general (depth). Union is the join of the lattice and Intersect the
// meet, so intersect(a,b) <= a <= union(a,b) always holds.
//
// Comparisons take the same Policy that drives satisfaction checks, so
// "int is below float" exactly when numeric widening would let an int
// value pass a float requirement.
package lattice
