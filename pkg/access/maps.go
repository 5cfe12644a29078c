package access

import (
	"fmt"
	"reflect"
)

// MapAccessor adapts keyed mapping containers: any Go map whose keys
// render as strings. map[string]T is handled without conversion; other key
// types go through their string form.
type MapAccessor struct{}

// NewMapAccessor returns the map adapter.
func NewMapAccessor() *MapAccessor { return &MapAccessor{} }

// CanAccess reports whether the value is a non-nil map.
func (a *MapAccessor) CanAccess(value any) bool {
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Map && !v.IsNil()
}

// Has reports whether the named key is present.
func (a *MapAccessor) Has(value any, name string) bool {
	_, ok := a.Get(value, name)
	return ok
}

// Get returns the value under the named key, or absence.
func (a *MapAccessor) Get(value any, name string) (any, bool) {
	switch m := value.(type) {
	case map[string]any:
		v, ok := m[name]
		return v, ok
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.IsNil() {
		return nil, false
	}

	if v.Type().Key().Kind() == reflect.String {
		entry := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !entry.IsValid() {
			return nil, false
		}
		return entry.Interface(), true
	}

	iter := v.MapRange()
	for iter.Next() {
		if fmt.Sprint(iter.Key().Interface()) == name {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}

// FieldNames returns the map's keys in their string form. Go maps are
// unordered; callers needing determinism sort the result.
func (a *MapAccessor) FieldNames(value any) []string {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.IsNil() {
		return nil
	}
	names := make([]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		if v.Type().Key().Kind() == reflect.String {
			names = append(names, iter.Key().String())
			continue
		}
		names = append(names, fmt.Sprint(iter.Key().Interface()))
	}
	return names
}
