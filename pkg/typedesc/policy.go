package typedesc

// Policy controls how lenient type compatibility checks are. Policies are
// immutable values compared by value, which makes them usable directly as
// cache key components.
type Policy struct {
	// AllowNumericWidening accepts an observed int where a float was
	// expected. The reverse direction is never accepted.
	AllowNumericWidening bool

	// AllowOptionalWidening reduces an expected optional<T> to a comparison
	// of the observed descriptor against T. Absence of a value is handled
	// by the field's required flag, not here.
	AllowOptionalWidening bool
}

// DefaultPolicy returns the default comparison policy with both widening
// rules enabled, matching common host-language numeric promotion.
func DefaultPolicy() Policy {
	return Policy{
		AllowNumericWidening:  true,
		AllowOptionalWidening: true,
	}
}
