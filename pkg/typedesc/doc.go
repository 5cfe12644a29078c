// Package typedesc defines type descriptors and the compatibility rules
// between them.
//
// A Descriptor names the observable type of a value: a primitive (string,
// int, float, bool), a parameterized container (sequence<T>, mapping<K,V>),
// an optional wrapper (optional<T>), or one of the sentinel kinds (any,
// none, unknown). Descriptors are plain immutable values.
//
// Compatibility between an expected and an observed descriptor is decided
// by Compatible under a Policy. The Policy controls the two widening rules:
//
//   - numeric widening: an observed int satisfies an expected float
//   - optional widening: an expected optional<T> reduces to comparing the
//     observed descriptor against T
//
// Container compatibility is recursive (depth subtyping): sequence<string>
// is compatible with an expected sequence<any>, but not the reverse.
//
// Describe derives a coarse descriptor from a live Go value; Parse reads
// the textual descriptor syntax used in trait definition files.
package typedesc
