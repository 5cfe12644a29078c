package access

import (
	"fmt"

	"strata-hq/strata/pkg/typedesc"
)

// Record is a tagged declarative container: an ordered field set that
// carries its own declared type descriptors. It suits values deserialized
// from self-describing formats, where the schema travels with the data.
//
// Records are built once and read many times; they are not safe for
// concurrent mutation.
type Record struct {
	names  []string
	values map[string]any
	types  map[string]typedesc.Descriptor
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{
		values: make(map[string]any),
		types:  make(map[string]typedesc.Descriptor),
	}
}

// Set stores a field with an explicitly declared descriptor, replacing any
// previous declaration under the same name.
func (r *Record) Set(name string, value any, typ typedesc.Descriptor) *Record {
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = value
	r.types[name] = typ
	return r
}

// SetInferred stores a field with a descriptor derived from the value.
func (r *Record) SetInferred(name string, value any) *Record {
	return r.Set(name, value, typedesc.Describe(value))
}

// Type returns the declared descriptor of a field.
func (r *Record) Type(name string) (typedesc.Descriptor, bool) {
	d, ok := r.types[name]
	return d, ok
}

// Names returns the field names in insertion order. The returned slice is
// shared; callers must not modify it.
func (r *Record) Names() []string { return r.names }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.names) }

// String renders the record for diagnostics.
func (r *Record) String() string {
	return fmt.Sprintf("record(%d fields)", len(r.names))
}

// RecordAccessor adapts Record containers. Records declare their own
// descriptors, so this adapter also implements internal descriptor lookup
// used when deriving shapes.
type RecordAccessor struct{}

// NewRecordAccessor returns the record adapter.
func NewRecordAccessor() *RecordAccessor { return &RecordAccessor{} }

// CanAccess reports whether the value is a *Record.
func (a *RecordAccessor) CanAccess(value any) bool {
	_, ok := value.(*Record)
	return ok
}

// Has reports whether the record declares the named field.
func (a *RecordAccessor) Has(value any, name string) bool {
	_, ok := a.Get(value, name)
	return ok
}

// Get returns the named field, or absence.
func (a *RecordAccessor) Get(value any, name string) (any, bool) {
	r, ok := value.(*Record)
	if !ok {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// GetAny tries the candidate names in order.
func (a *RecordAccessor) GetAny(value any, names []string) (string, any, bool) {
	r, ok := value.(*Record)
	if !ok {
		return "", nil, false
	}
	for _, name := range names {
		if v, present := r.values[name]; present {
			return name, v, true
		}
	}
	return "", nil, false
}

// FieldNames returns the record's field names in insertion order.
func (a *RecordAccessor) FieldNames(value any) []string {
	r, ok := value.(*Record)
	if !ok {
		return nil
	}
	return r.Names()
}
