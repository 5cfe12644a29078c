package access

import (
	"reflect"
	"strings"
)

// StructAccessor adapts plain attribute-bearing Go values: structs and
// pointers to structs. A field is resolved by, in order: a `trait:"name"`
// tag, the exported field name, and a case-insensitive match. Unexported
// fields are invisible.
type StructAccessor struct{}

// NewStructAccessor returns the struct adapter.
func NewStructAccessor() *StructAccessor { return &StructAccessor{} }

// FoldNames reports that struct fields resolve case-insensitively, matching
// Get's FieldByNameFunc behavior.
func (a *StructAccessor) FoldNames() bool { return true }

// CanAccess reports whether the value is a struct or non-nil struct pointer.
func (a *StructAccessor) CanAccess(value any) bool {
	return structValue(value).IsValid()
}

// Has reports whether the named field is present.
func (a *StructAccessor) Has(value any, name string) bool {
	_, ok := a.Get(value, name)
	return ok
}

// Get returns the named field's value, or absence.
func (a *StructAccessor) Get(value any, name string) (any, bool) {
	v := structValue(value)
	if !v.IsValid() {
		return nil, false
	}

	t := v.Type()
	// Tag matches take priority over field names.
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tagName(f) == name {
			return v.Field(i).Interface(), true
		}
	}

	f := v.FieldByNameFunc(func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	})
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}

// FieldNames returns the exported field names (tag overrides applied) in
// declaration order.
func (a *StructAccessor) FieldNames(value any) []string {
	v := structValue(value)
	if !v.IsValid() {
		return nil
	}
	t := v.Type()
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag := tagName(f); tag != "" {
			names = append(names, tag)
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// ShapeKey returns the Go type identity when the struct's field layout
// fully determines its shape. Fields whose observed descriptor depends on
// the instance (interfaces, pointers, containers whose parameters are
// derived by inspecting elements) get no cheap key and fall back to
// content-derived shape hashing.
func (a *StructAccessor) ShapeKey(value any) (string, bool) {
	v := structValue(value)
	if !v.IsValid() {
		return "", false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && dynamicType(f.Type) {
			return "", false
		}
	}
	return "struct:" + t.PkgPath() + "." + t.String(), true
}

// dynamicType reports whether a field of this type can observe different
// descriptors across instances of the same struct type. Container
// parameters are only static when the element type itself describes
// statically; otherwise they are unified from the elements present, so an
// empty and a populated container diverge.
func dynamicType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer:
		return true
	case reflect.Slice, reflect.Array, reflect.Map:
		return !staticDescriptor(t)
	default:
		return false
	}
}

// staticDescriptor reports whether every value of the type yields the same
// descriptor without element inspection.
func staticDescriptor(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice, reflect.Array:
		return staticDescriptor(t.Elem())
	case reflect.Map:
		return staticDescriptor(t.Key()) && staticDescriptor(t.Elem())
	default:
		return false
	}
}

// tagName returns the `trait` tag name of a struct field, or "".
func tagName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("trait")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// structValue dereferences to a struct value, or returns the invalid value.
func structValue(value any) reflect.Value {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return v
}
