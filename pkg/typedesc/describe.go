package typedesc

import "reflect"

// Describe derives a coarse descriptor from a live Go value. It is the
// source of the "observed" side of every compatibility check and of the
// type tags that enter shape keys.
//
// Strings, booleans, integral and floating types map to their primitive
// kinds. Slices and arrays map to sequences, maps to mappings; their
// parameter descriptors come from the static element type when it is
// concrete, or from unifying the elements when it is an interface type.
// Nil values (and nil pointers) map to none. Values outside this model,
// such as structs or channels, map to any.
func Describe(v any) Descriptor {
	if v == nil {
		return None()
	}
	return describeValue(reflect.ValueOf(v))
}

func describeValue(v reflect.Value) Descriptor {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return None()
		}
		return describeValue(v.Elem())

	case reflect.String:
		return String()

	case reflect.Bool:
		return Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int()

	case reflect.Float32, reflect.Float64:
		return Float()

	case reflect.Slice, reflect.Array:
		return SequenceOf(describeElem(v))

	case reflect.Map:
		return MappingOf(describeType(v.Type().Key()), describeMapValue(v))

	default:
		return Any()
	}
}

// describeElem resolves the element descriptor of a sequence value.
func describeElem(v reflect.Value) Descriptor {
	if d, ok := describeConcreteType(v.Type().Elem()); ok {
		return d
	}
	// Interface-typed elements: unify what the value actually holds.
	if v.Len() == 0 {
		return Unknown()
	}
	unified := describeValue(v.Index(0))
	for i := 1; i < v.Len(); i++ {
		if !describeValue(v.Index(i)).Equal(unified) {
			return Any()
		}
	}
	return unified
}

// describeMapValue resolves the value descriptor of a mapping value.
func describeMapValue(v reflect.Value) Descriptor {
	if d, ok := describeConcreteType(v.Type().Elem()); ok {
		return d
	}
	if v.Len() == 0 {
		return Unknown()
	}
	var unified Descriptor
	first := true
	iter := v.MapRange()
	for iter.Next() {
		d := describeValue(iter.Value())
		if first {
			unified = d
			first = false
			continue
		}
		if !d.Equal(unified) {
			return Any()
		}
	}
	return unified
}

// describeType maps a static Go type to a descriptor, falling back to any
// for interface and struct types.
func describeType(t reflect.Type) Descriptor {
	if d, ok := describeConcreteType(t); ok {
		return d
	}
	return Any()
}

func describeConcreteType(t reflect.Type) (Descriptor, bool) {
	switch t.Kind() {
	case reflect.String:
		return String(), true
	case reflect.Bool:
		return Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(), true
	case reflect.Float32, reflect.Float64:
		return Float(), true
	case reflect.Slice, reflect.Array:
		if elem, ok := describeConcreteType(t.Elem()); ok {
			return SequenceOf(elem), true
		}
		return Descriptor{}, false
	case reflect.Map:
		key, kok := describeConcreteType(t.Key())
		value, vok := describeConcreteType(t.Elem())
		if kok && vok {
			return MappingOf(key, value), true
		}
		return Descriptor{}, false
	default:
		return Descriptor{}, false
	}
}
