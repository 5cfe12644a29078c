package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"strata-hq/strata/pkg/access"
	"strata-hq/strata/pkg/typedesc"
)

// Shape is the normalized, adapter-independent view of a value: its
// observable field names with coarse type tags. A shape stands in for
// "runtime type" across heterogeneous representations, so two values with
// the same shape produce the same verdict for any expression and policy.
type Shape struct {
	// Key identifies the shape for cache lookups.
	Key string

	// Fields maps field names to their observed descriptors. Nil for
	// opaque values, for which every field is absent.
	Fields map[string]typedesc.Descriptor

	// folded indexes Fields by lower-cased name. Populated only when the
	// capturing adapter resolves names case-insensitively.
	folded map[string]typedesc.Descriptor
}

// Lookup resolves a field through its candidate names in order. Exact
// matches win; for shapes captured from case-insensitive representations a
// folded pass follows, so struct fields exported as "Name" satisfy a
// declared "name".
func (s Shape) Lookup(names []string) (typedesc.Descriptor, bool) {
	for _, name := range names {
		if d, ok := s.Fields[name]; ok {
			return d, true
		}
	}
	if s.folded != nil {
		for _, name := range names {
			if d, ok := s.folded[strings.ToLower(name)]; ok {
				return d, true
			}
		}
	}
	return typedesc.Descriptor{}, false
}

// captureShape normalizes a value through its adapter. Opaque values get
// an empty shape keyed by their Go type, so they still cache.
func captureShape(reg *access.Registry, value any) Shape {
	acc := reg.For(value)
	if acc == nil {
		return Shape{Key: fmt.Sprintf("opaque:%T", value)}
	}

	names := acc.FieldNames(value)
	fields := make(map[string]typedesc.Descriptor, len(names))
	for _, name := range names {
		v, ok := acc.Get(value, name)
		if !ok {
			continue
		}
		if d := declaredDescriptor(value, name); d != nil {
			fields[name] = *d
			continue
		}
		fields[name] = typedesc.Describe(v)
	}

	shape := Shape{Key: hashFields(fields), Fields: fields}
	if nf, ok := acc.(access.NameFolder); ok && nf.FoldNames() {
		shape.folded = foldFields(fields)
	}
	return shape
}

// foldFields builds the lower-cased index. On a fold collision the first
// name in sorted order wins, keeping lookups deterministic.
func foldFields(fields map[string]typedesc.Descriptor) map[string]typedesc.Descriptor {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	folded := make(map[string]typedesc.Descriptor, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := folded[key]; !ok {
			folded[key] = fields[name]
		}
	}
	return folded
}

// declaredDescriptor returns the descriptor a self-describing container
// declares for a field, if any. Declared descriptors take priority over
// derivation from the live value.
func declaredDescriptor(value any, name string) *typedesc.Descriptor {
	rec, ok := value.(*access.Record)
	if !ok {
		return nil
	}
	d, ok := rec.Type(name)
	if !ok {
		return nil
	}
	return &d
}

// cheapShapeKey asks the adapter for a per-type key, skipping field
// enumeration on the hot path. Only adapters with a fixed field layout per
// Go type provide one.
func cheapShapeKey(reg *access.Registry, value any) (string, bool) {
	acc := reg.For(value)
	keyer, ok := acc.(access.ShapeKeyer)
	if !ok {
		return "", false
	}
	return keyer.ShapeKey(value)
}

// hashFields produces a content-derived shape key: field names and type
// signatures in sorted order, hashed.
func hashFields(fields map[string]typedesc.Descriptor) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	h := xxhash.New()
	for _, name := range names {
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(fields[name].Signature())
		_, _ = h.WriteString(";")
	}
	return fmt.Sprintf("shape:%016x", h.Sum64())
}
