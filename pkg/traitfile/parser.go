package traitfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"strata-hq/strata/pkg/trait"
	"strata-hq/strata/pkg/typedesc"
)

// typeNames are the base descriptor names offered in suggestions when a
// field's type fails to parse.
var typeNames = []string{
	"string", "int", "float", "bool", "any",
	"sequence", "sequence<string>", "mapping", "optional<string>",
}

// Set is the outcome of parsing one or more trait files: named
// expressions in declaration order. Sets are immutable once returned.
type Set struct {
	names []string
	exprs map[string]trait.Node
}

// Get returns the expression registered under a name.
func (s *Set) Get(name string) (trait.Node, bool) {
	n, ok := s.exprs[name]
	return n, ok
}

// Names returns every declared name in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of declared names.
func (s *Set) Len() int {
	return len(s.names)
}

func (s *Set) add(name string, n trait.Node) {
	s.names = append(s.names, name)
	s.exprs[name] = n
}

// ParseFile loads and parses a single trait file.
func ParseFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		el := NewErrorList()
		el.AddError(ErrorTypeIO, fmt.Sprintf("cannot read trait file: %v", err), path, "")
		return nil, el
	}
	return Parse(path, data)
}

// Parse parses trait file content. The filename is used only in error
// reports. On failure the returned error is an *ErrorList carrying every
// problem found.
func Parse(filename string, data []byte) (*Set, error) {
	errs := NewErrorList()

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		errs.AddError(ErrorTypeSyntax, fmt.Sprintf("invalid YAML: %v", err), filename, "")
		return nil, errs
	}

	if doc.Version != 0 && doc.Version != 1 {
		errs.AddError(ErrorTypeStructural,
			fmt.Sprintf("unsupported trait file version %d", doc.Version), filename, "version")
	}

	set := &Set{exprs: make(map[string]trait.Node, len(doc.Traits)+len(doc.Derived))}

	for i, def := range doc.Traits {
		path := fmt.Sprintf("traits[%d]", i)
		buildTrait(def, filename, path, set, errs)
	}
	for i, def := range doc.Derived {
		path := fmt.Sprintf("derived[%d]", i)
		buildDerived(def, filename, path, set, errs)
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return set, nil
}

func buildTrait(def TraitDef, filename, path string, set *Set, errs *ErrorList) {
	if def.Name == "" {
		errs.AddError(ErrorTypeStructural, "trait name cannot be empty", filename, path)
		return
	}
	if _, exists := set.exprs[def.Name]; exists {
		errs.AddError(ErrorTypeStructural,
			fmt.Sprintf("duplicate name %q", def.Name), filename, path)
		return
	}

	fields := make([]trait.FieldSpec, 0, len(def.Fields))
	ok := true
	for j, fd := range def.Fields {
		fieldPath := fmt.Sprintf("%s.fields[%d]", path, j)
		field, fieldOK := buildField(fd, filename, fieldPath, errs)
		if !fieldOK {
			ok = false
			continue
		}
		fields = append(fields, field)
	}
	if !ok {
		return
	}

	spec, err := trait.New(def.Name, fields...)
	if err != nil {
		errs.AddError(ErrorTypeStructural, err.Error(), filename, path)
		return
	}
	set.add(def.Name, spec)
}

func buildField(def FieldDef, filename, path string, errs *ErrorList) (trait.FieldSpec, bool) {
	if def.Name == "" {
		errs.AddError(ErrorTypeStructural, "field name cannot be empty", filename, path)
		return trait.FieldSpec{}, false
	}

	typeText := def.Type
	if typeText == "" {
		typeText = "any"
	}
	desc, err := typedesc.Parse(typeText)
	if err != nil {
		errs.AddErrorWithSuggestion(ErrorTypeSemantic,
			fmt.Sprintf("field %q: %v", def.Name, err), filename, path,
			suggestName(typeText, typeNames))
		return trait.FieldSpec{}, false
	}

	field := trait.NewField(def.Name, desc)
	if def.Required != nil && !*def.Required {
		field = field.Optional()
	}
	if def.CheckTypes != nil && !*def.CheckTypes {
		field = field.PresenceOnly()
	}
	if len(def.Aliases) > 0 {
		field = field.WithAliases(def.Aliases...)
	}
	return field, true
}

// buildDerived resolves a derived definition against the names declared so
// far. Derived entries may reference earlier derived entries; forward
// references are reported as unknown names.
func buildDerived(def DerivedDef, filename, path string, set *Set, errs *ErrorList) {
	if def.Name == "" {
		errs.AddError(ErrorTypeStructural, "derived name cannot be empty", filename, path)
		return
	}
	if _, exists := set.exprs[def.Name]; exists {
		errs.AddError(ErrorTypeStructural,
			fmt.Sprintf("duplicate name %q", def.Name), filename, path)
		return
	}

	forms := 0
	if len(def.Union) > 0 {
		forms++
	}
	if len(def.Intersect) > 0 {
		forms++
	}
	if def.Minus != nil {
		forms++
	}
	if forms != 1 {
		errs.AddError(ErrorTypeStructural,
			fmt.Sprintf("derived %q must declare exactly one of union, intersect, or minus", def.Name),
			filename, path)
		return
	}

	switch {
	case len(def.Union) > 0:
		expr, ok := combine(def.Union, trait.Union, "union", filename, path, set, errs)
		if ok {
			set.add(def.Name, expr)
		}

	case len(def.Intersect) > 0:
		expr, ok := combine(def.Intersect, trait.Intersect, "intersect", filename, path, set, errs)
		if ok {
			set.add(def.Name, expr)
		}

	case def.Minus != nil:
		base, ok := resolve(def.Minus.From, filename, path+".minus.from", set, errs)
		if !ok {
			return
		}
		if len(def.Minus.Fields) == 0 {
			errs.AddError(ErrorTypeStructural,
				fmt.Sprintf("derived %q: minus requires at least one field", def.Name),
				filename, path)
			return
		}
		set.add(def.Name, trait.Minus(base, def.Minus.Fields...))
	}
}

// combine folds two or more named operands left to right.
func combine(operands []string, op func(a, b trait.Node) *trait.Expr, form, filename, path string, set *Set, errs *ErrorList) (trait.Node, bool) {
	if len(operands) < 2 {
		errs.AddError(ErrorTypeStructural,
			fmt.Sprintf("%s requires at least two operands", form), filename, path)
		return nil, false
	}

	acc, ok := resolve(operands[0], filename, fmt.Sprintf("%s.%s[0]", path, form), set, errs)
	if !ok {
		return nil, false
	}
	for i, name := range operands[1:] {
		next, nextOK := resolve(name, filename, fmt.Sprintf("%s.%s[%d]", path, form, i+1), set, errs)
		if !nextOK {
			return nil, false
		}
		acc = op(acc, next)
	}
	return acc, true
}

func resolve(name, filename, path string, set *Set, errs *ErrorList) (trait.Node, bool) {
	n, ok := set.exprs[name]
	if !ok {
		errs.AddErrorWithSuggestion(ErrorTypeSemantic,
			fmt.Sprintf("unknown name %q", name), filename, path,
			suggestName(name, set.names))
		return nil, false
	}
	return n, true
}
