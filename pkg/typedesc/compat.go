package typedesc

// Compatible reports whether an observed descriptor satisfies an expected
// descriptor under the given policy.
//
// The rules apply in order:
//
//  1. Identical descriptors are compatible.
//  2. An expected any accepts every observed descriptor; an observed
//     unknown (no evidence, e.g. the element type of an empty untyped
//     sequence) is accepted by every expected descriptor.
//  3. An expected optional<T> accepts an observed none.
//  4. Numeric widening (policy-gated): an observed int satisfies an
//     expected float. Never the reverse.
//  5. Containers of the same kind (sequences, mappings, optionals) are
//     compatible when their parameter descriptors are compatible,
//     recursively under the same policy.
//  6. Optional widening (policy-gated): an expected optional<T> accepts a
//     bare observed value compatible with T.
func Compatible(expected, observed Descriptor, policy Policy) bool {
	if expected.Equal(observed) {
		return true
	}
	if expected.kind() == KindAny || observed.kind() == KindUnknown {
		return true
	}
	if expected.kind() == KindOptional && observed.kind() == KindNone {
		return true
	}
	if policy.AllowNumericWidening && expected.kind() == KindFloat && observed.kind() == KindInt {
		return true
	}
	if expected.kind() == observed.kind() {
		switch expected.kind() {
		case KindSequence, KindOptional:
			return Compatible(orAny(expected.Elem), orAny(observed.Elem), policy)
		case KindMapping:
			return Compatible(orAny(expected.Key), orAny(observed.Key), policy) &&
				Compatible(orAny(expected.Value), orAny(observed.Value), policy)
		}
		return false
	}
	if policy.AllowOptionalWidening && expected.kind() == KindOptional {
		return Compatible(orAny(expected.Elem), observed, policy)
	}
	return false
}
