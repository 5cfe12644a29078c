package access

// Accessor is the capability contract a value representation must satisfy
// to participate in trait checking. Absence is a first-class result: no
// method returns an error, and Get reports absence through its second
// return value.
type Accessor interface {
	// CanAccess reports whether this accessor understands the value.
	CanAccess(value any) bool

	// Has reports whether the named field is present on the value.
	Has(value any, name string) bool

	// Get returns the named field's value, or absence.
	Get(value any, name string) (any, bool)

	// FieldNames returns the observable field names of the value, in the
	// representation's natural order. It feeds shape keys; adapters that
	// cannot enumerate return nil.
	FieldNames(value any) []string
}

// ShapeKeyer is an optional capability: adapters whose field layout is
// fixed per Go type can provide a cheap stable key so repeated checks of
// same-typed values skip field enumeration entirely.
type ShapeKeyer interface {
	// ShapeKey returns a stable key for the value's shape, or false when
	// the shape can only be determined by enumerating fields.
	ShapeKey(value any) (string, bool)
}

// NameFolder is an optional capability: adapters whose field names resolve
// case-insensitively declare it, so a field exported as "Name" can satisfy
// a declared "name". Representations with exact key semantics (maps,
// records) must not implement it.
type NameFolder interface {
	// FoldNames reports whether field names match case-insensitively.
	FoldNames() bool
}

// MultiGetter is an optional capability for representations with a native
// multi-name lookup. Adapters without it get Lookup's generic fallback.
type MultiGetter interface {
	// GetAny tries the candidate names in order and returns the first
	// present match along with the name that matched.
	GetAny(value any, names []string) (matched string, v any, ok bool)
}

// Lookup resolves a field through its candidate names in order, using the
// adapter's native GetAny when available.
func Lookup(acc Accessor, value any, names []string) (matched string, v any, ok bool) {
	if mg, isMulti := acc.(MultiGetter); isMulti {
		return mg.GetAny(value, names)
	}
	for _, name := range names {
		if v, ok := acc.Get(value, name); ok {
			return name, v, true
		}
	}
	return "", nil, false
}
