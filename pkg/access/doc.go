// Package access normalizes field access over heterogeneous value
// representations.
//
// The engine never inspects values directly; it goes through the Accessor
// capability contract, which answers presence and retrieval questions with
// absence as a first-class result, never as an error. Three adapters ship
// by default:
//
//   - structs: exported fields, with an optional `trait:"name"` tag
//     override and a case-insensitive fallback
//   - maps: any map with string-convertible keys
//   - Record: a declarative ordered container that carries its own field
//     set
//
// A Registry resolves the first adapter that can handle a value; the set
// is open for extension. When no adapter recognizes a value, the engine
// treats every field as absent, which keeps checking total over the
// universe of all values.
package access
