package typedesc

import (
	"fmt"
	"strings"
)

// Parse reads the textual descriptor syntax used in trait definition files:
//
//	string | int | float | bool | any
//	sequence | sequence<T>
//	mapping  | mapping<K,V>
//	optional<T>
//
// Parameters nest arbitrarily, e.g. "sequence<optional<int>>". Whitespace
// around names and parameters is ignored. Parse never produces the none or
// unknown kinds; those only describe observed values.
func Parse(text string) (Descriptor, error) {
	d, rest, err := parseDescriptor(strings.TrimSpace(text))
	if err != nil {
		return Descriptor{}, err
	}
	if rest != "" {
		return Descriptor{}, fmt.Errorf("unexpected trailing input %q in type %q", rest, text)
	}
	return d, nil
}

// MustParse is Parse for statically known descriptor text. It panics on error.
func MustParse(text string) Descriptor {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

func parseDescriptor(text string) (Descriptor, string, error) {
	name, rest := scanName(text)
	if name == "" {
		return Descriptor{}, "", fmt.Errorf("empty type name in %q", text)
	}

	switch name {
	case "string":
		return String(), rest, nil
	case "int", "integer":
		return Int(), rest, nil
	case "float", "number":
		return Float(), rest, nil
	case "bool", "boolean":
		return Bool(), rest, nil
	case "any":
		return Any(), rest, nil
	case "sequence":
		if !strings.HasPrefix(rest, "<") {
			return Sequence(), rest, nil
		}
		params, rest, err := parseParams(rest, 1)
		if err != nil {
			return Descriptor{}, "", err
		}
		return SequenceOf(params[0]), rest, nil
	case "mapping":
		if !strings.HasPrefix(rest, "<") {
			return Mapping(), rest, nil
		}
		params, rest, err := parseParams(rest, 2)
		if err != nil {
			return Descriptor{}, "", err
		}
		return MappingOf(params[0], params[1]), rest, nil
	case "optional":
		if !strings.HasPrefix(rest, "<") {
			return Descriptor{}, "", fmt.Errorf("optional requires a parameter, e.g. optional<int>")
		}
		params, rest, err := parseParams(rest, 1)
		if err != nil {
			return Descriptor{}, "", err
		}
		return OptionalOf(params[0]), rest, nil
	default:
		return Descriptor{}, "", fmt.Errorf("unknown type name %q", name)
	}
}

// parseParams consumes "<p1,...,pn>" from the front of text and returns
// exactly want parsed parameter descriptors.
func parseParams(text string, want int) ([]Descriptor, string, error) {
	rest := strings.TrimSpace(text[1:]) // skip '<'
	params := make([]Descriptor, 0, want)

	for {
		d, r, err := parseDescriptor(rest)
		if err != nil {
			return nil, "", err
		}
		params = append(params, d)
		rest = strings.TrimSpace(r)

		if strings.HasPrefix(rest, ",") {
			rest = strings.TrimSpace(rest[1:])
			continue
		}
		break
	}

	if !strings.HasPrefix(rest, ">") {
		return nil, "", fmt.Errorf("missing closing '>' in type parameters")
	}
	rest = strings.TrimSpace(rest[1:])

	if len(params) != want {
		return nil, "", fmt.Errorf("expected %d type parameter(s), got %d", want, len(params))
	}
	return params, rest, nil
}

// scanName splits a leading identifier off the input.
func scanName(text string) (string, string) {
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '<' || c == '>' || c == ',' {
			break
		}
		i++
	}
	return strings.TrimSpace(text[:i]), text[i:]
}
