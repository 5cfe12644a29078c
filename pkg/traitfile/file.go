package traitfile

// Document is the YAML schema of a trait file.
//
//	version: 1
//	traits:
//	  - name: Person
//	    fields:
//	      - name: name
//	        type: string
//	      - name: age
//	        type: int
//	        aliases: [years]
//	derived:
//	  - name: Anyone
//	    union: [Person, Robot]
//	  - name: Anonymous
//	    minus:
//	      from: Person
//	      fields: [name]
type Document struct {
	Version int          `yaml:"version"`
	Traits  []TraitDef   `yaml:"traits"`
	Derived []DerivedDef `yaml:"derived"`
}

// TraitDef declares one named trait and its field requirements.
type TraitDef struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field requirement. Required and CheckTypes are
// pointers so that an omitted key defaults to true rather than false.
type FieldDef struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Required   *bool    `yaml:"required"`
	CheckTypes *bool    `yaml:"check_types"`
	Aliases    []string `yaml:"aliases"`
}

// DerivedDef declares an expression built from previously declared names.
// Exactly one of Union, Intersect, or Minus must be set.
type DerivedDef struct {
	Name      string    `yaml:"name"`
	Union     []string  `yaml:"union"`
	Intersect []string  `yaml:"intersect"`
	Minus     *MinusDef `yaml:"minus"`
}

// MinusDef removes fields from a previously declared name.
type MinusDef struct {
	From   string   `yaml:"from"`
	Fields []string `yaml:"fields"`
}
