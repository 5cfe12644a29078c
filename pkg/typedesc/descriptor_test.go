package typedesc

import "testing"

func TestDescriptorEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Descriptor
		b    Descriptor
		want bool
	}{
		{name: "any equals any", a: Any(), b: Any(), want: true},
		{name: "zero value is any", a: Descriptor{}, b: Any(), want: true},
		{name: "primitive identity", a: String(), b: String(), want: true},
		{name: "primitive mismatch", a: String(), b: Int(), want: false},
		{name: "nil slot matches explicit any", a: Descriptor{Kind: KindSequence}, b: SequenceOf(Any()), want: true},
		{name: "nil mapping slots", a: Descriptor{Kind: KindMapping}, b: MappingOf(Any(), Any()), want: true},
		{name: "nested containers", a: SequenceOf(MappingOf(String(), Int())), b: SequenceOf(MappingOf(String(), Int())), want: true},
		{name: "nested element mismatch", a: SequenceOf(MappingOf(String(), Int())), b: SequenceOf(MappingOf(String(), Float())), want: false},
		{name: "optional element", a: OptionalOf(Bool()), b: OptionalOf(Bool()), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
