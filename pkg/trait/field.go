package trait

import (
	"sort"
	"strings"

	"strata-hq/strata/pkg/typedesc"
)

// FieldSpec is a single named, typed field requirement. The zero value is
// not meaningful; use NewField. FieldSpecs are immutable: the With* and
// mode methods return modified copies.
type FieldSpec struct {
	// Name is the primary field name.
	Name string

	// Type is the expected type descriptor.
	Type typedesc.Descriptor

	// Required marks the field as mandatory; an absent optional field is
	// skipped silently during evaluation.
	Required bool

	// AcceptAlias enables alias resolution: the field may be satisfied
	// under any of the names returned by Candidates.
	AcceptAlias bool

	// CheckTypes enables type checking. When false the field is a
	// presence-only requirement and the comparator is bypassed entirely.
	CheckTypes bool

	// Aliases are additional accepted names, tried in order after Name.
	// Only consulted when AcceptAlias is set.
	Aliases []string
}

// NewField returns a required, type-checked field requirement.
func NewField(name string, typ typedesc.Descriptor) FieldSpec {
	return FieldSpec{
		Name:       name,
		Type:       typ,
		Required:   true,
		CheckTypes: true,
	}
}

// Optional returns a copy of the field with the required flag cleared.
func (f FieldSpec) Optional() FieldSpec {
	f.Required = false
	return f
}

// PresenceOnly returns a copy of the field that only checks presence,
// bypassing the type comparator.
func (f FieldSpec) PresenceOnly() FieldSpec {
	f.CheckTypes = false
	return f
}

// WithAliases returns a copy of the field that accepts the given alias
// names in addition to its primary name.
func (f FieldSpec) WithAliases(names ...string) FieldSpec {
	f.AcceptAlias = true
	f.Aliases = append(append([]string(nil), f.Aliases...), names...)
	return f
}

// Candidates returns the names under which the field may be satisfied, in
// resolution order: the primary name, the explicit aliases, then derived
// snake_case and camelCase variants of the primary name.
func (f FieldSpec) Candidates() []string {
	if !f.AcceptAlias {
		return []string{f.Name}
	}

	seen := map[string]bool{f.Name: true}
	out := []string{f.Name}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, alias := range f.Aliases {
		add(alias)
	}
	add(snakeCase(f.Name))
	add(camelCase(f.Name))
	return out
}

// signature returns the canonical identity of the field requirement. Every
// attribute that influences satisfaction participates; the ordering of
// explicit aliases matters for diagnostics but not for the outcome, so
// aliases enter sorted via Candidates minus the primary name.
func (f FieldSpec) signature() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('|')
	if f.CheckTypes {
		sb.WriteString(f.Type.Signature())
	} else {
		sb.WriteString("presence")
	}
	if f.Required {
		sb.WriteString("|req")
	} else {
		sb.WriteString("|opt")
	}
	if f.AcceptAlias {
		names := f.Candidates()[1:]
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		sb.WriteString("|alias:")
		sb.WriteString(strings.Join(sorted, ","))
	}
	return sb.String()
}

// snakeCase converts camelCase or mixed names to snake_case.
func snakeCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// camelCase converts snake_case names to camelCase.
func camelCase(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return name
	}
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
