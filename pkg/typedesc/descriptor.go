package typedesc

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a type descriptor.
type Kind string

const (
	// KindAny is the top type: every descriptor is compatible with it.
	KindAny Kind = "any"

	// KindNone describes a present but nil value.
	KindNone Kind = "none"

	// KindUnknown marks an observed descriptor that carried no evidence,
	// such as the element type of an empty untyped sequence. It is only
	// produced by Describe, never by Parse or the constructors.
	KindUnknown Kind = "unknown"

	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"

	// KindSequence is an ordered collection parameterized by an element type.
	KindSequence Kind = "sequence"

	// KindMapping is a keyed collection parameterized by key and value types.
	KindMapping Kind = "mapping"

	// KindOptional wraps an inner type that may legitimately be absent or nil.
	KindOptional Kind = "optional"
)

// Descriptor describes the observable type of a value. Descriptors are
// immutable; the pointer fields are never mutated after construction.
type Descriptor struct {
	// Kind is the descriptor category.
	Kind Kind

	// Elem is the element type for sequences and the inner type for
	// optionals. Nil for other kinds.
	Elem *Descriptor

	// Key and Value are the key/value types for mappings. Nil for other kinds.
	Key   *Descriptor
	Value *Descriptor
}

// Any returns the top descriptor.
func Any() Descriptor { return Descriptor{Kind: KindAny} }

// None returns the descriptor of a present but nil value.
func None() Descriptor { return Descriptor{Kind: KindNone} }

// Unknown returns the no-evidence descriptor.
func Unknown() Descriptor { return Descriptor{Kind: KindUnknown} }

// String returns the string primitive descriptor.
func String() Descriptor { return Descriptor{Kind: KindString} }

// Int returns the integral numeric descriptor.
func Int() Descriptor { return Descriptor{Kind: KindInt} }

// Float returns the floating-point numeric descriptor.
func Float() Descriptor { return Descriptor{Kind: KindFloat} }

// Bool returns the boolean primitive descriptor.
func Bool() Descriptor { return Descriptor{Kind: KindBool} }

// SequenceOf returns a sequence descriptor with the given element type.
func SequenceOf(elem Descriptor) Descriptor {
	return Descriptor{Kind: KindSequence, Elem: &elem}
}

// Sequence returns the generic sequence descriptor (sequence<any>).
func Sequence() Descriptor { return SequenceOf(Any()) }

// MappingOf returns a mapping descriptor with the given key and value types.
func MappingOf(key, value Descriptor) Descriptor {
	return Descriptor{Kind: KindMapping, Key: &key, Value: &value}
}

// Mapping returns the generic mapping descriptor (mapping<any,any>).
func Mapping() Descriptor { return MappingOf(Any(), Any()) }

// OptionalOf returns an optional wrapper around the given inner type.
func OptionalOf(inner Descriptor) Descriptor {
	return Descriptor{Kind: KindOptional, Elem: &inner}
}

// Equal reports whether two descriptors are structurally identical.
// The zero Descriptor is treated as any.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.kind() != other.kind() {
		return false
	}
	if !ptrEqual(d.Elem, other.Elem) {
		return false
	}
	if !ptrEqual(d.Key, other.Key) {
		return false
	}
	return ptrEqual(d.Value, other.Value)
}

// kind returns the effective kind, mapping the zero value to any.
func (d Descriptor) kind() Kind {
	if d.Kind == "" {
		return KindAny
	}
	return d.Kind
}

func ptrEqual(a, b *Descriptor) bool {
	if a == nil && b == nil {
		return true
	}
	// A nil parameter slot is equivalent to an explicit any.
	return orAny(a).Equal(orAny(b))
}

// String renders the descriptor in the textual syntax accepted by Parse.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindSequence:
		if d.Elem == nil || d.Elem.Kind == KindAny {
			return "sequence"
		}
		return fmt.Sprintf("sequence<%s>", d.Elem)
	case KindMapping:
		if (d.Key == nil || d.Key.Kind == KindAny) && (d.Value == nil || d.Value.Kind == KindAny) {
			return "mapping"
		}
		return fmt.Sprintf("mapping<%s,%s>", orAny(d.Key), orAny(d.Value))
	case KindOptional:
		return fmt.Sprintf("optional<%s>", orAny(d.Elem))
	case "":
		return "any"
	default:
		return string(d.Kind)
	}
}

func orAny(d *Descriptor) Descriptor {
	if d == nil {
		return Any()
	}
	return *d
}

// Signature returns a canonical string identity for the descriptor.
// Unlike String it never elides generic parameters, so two descriptors
// share a signature exactly when Equal reports true.
func (d Descriptor) Signature() string {
	var sb strings.Builder
	d.writeSignature(&sb)
	return sb.String()
}

func (d Descriptor) writeSignature(sb *strings.Builder) {
	kind := d.Kind
	if kind == "" {
		kind = KindAny
	}
	sb.WriteString(string(kind))
	switch kind {
	case KindSequence, KindOptional:
		sb.WriteByte('<')
		orAny(d.Elem).writeSignature(sb)
		sb.WriteByte('>')
	case KindMapping:
		sb.WriteByte('<')
		orAny(d.Key).writeSignature(sb)
		sb.WriteByte(',')
		orAny(d.Value).writeSignature(sb)
		sb.WriteByte('>')
	}
}
