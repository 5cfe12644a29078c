package access

import (
	"testing"

	"strata-hq/strata/pkg/typedesc"
)

type server struct {
	Host     string
	Port     int    `trait:"listen_port"`
	internal string
}

func TestStructAccessor(t *testing.T) {
	acc := NewStructAccessor()
	val := server{Host: "localhost", Port: 8080}

	t.Run("can access structs and pointers", func(t *testing.T) {
		if !acc.CanAccess(val) {
			t.Error("struct value")
		}
		if !acc.CanAccess(&val) {
			t.Error("struct pointer")
		}
		if acc.CanAccess((*server)(nil)) {
			t.Error("nil pointer should be opaque")
		}
		if acc.CanAccess(map[string]any{}) {
			t.Error("maps are not structs")
		}
	})

	t.Run("resolves by exported name", func(t *testing.T) {
		v, ok := acc.Get(val, "Host")
		if !ok || v != "localhost" {
			t.Errorf("Get(Host) = %v, %v", v, ok)
		}
	})

	t.Run("resolves case-insensitively", func(t *testing.T) {
		v, ok := acc.Get(&val, "host")
		if !ok || v != "localhost" {
			t.Errorf("Get(host) = %v, %v", v, ok)
		}
	})

	t.Run("tag overrides field name", func(t *testing.T) {
		v, ok := acc.Get(val, "listen_port")
		if !ok || v != 8080 {
			t.Errorf("Get(listen_port) = %v, %v", v, ok)
		}
	})

	t.Run("unexported fields are invisible", func(t *testing.T) {
		if acc.Has(val, "internal") {
			t.Error("unexported field should be absent")
		}
	})

	t.Run("field names apply tag overrides", func(t *testing.T) {
		names := acc.FieldNames(val)
		if len(names) != 2 || names[0] != "Host" || names[1] != "listen_port" {
			t.Errorf("FieldNames = %v", names)
		}
	})

	t.Run("shape key is stable per type", func(t *testing.T) {
		k1, ok1 := acc.ShapeKey(server{Host: "a"})
		k2, ok2 := acc.ShapeKey(server{Host: "b", Port: 99})
		if !ok1 || !ok2 || k1 != k2 {
			t.Errorf("shape keys differ: %q vs %q", k1, k2)
		}
	})

	t.Run("no shape key for instance-dependent layouts", func(t *testing.T) {
		type endpoint struct{ Addr string }
		tests := []struct {
			name  string
			value any
			want  bool
		}{
			{name: "primitive fields", value: struct{ N int }{}, want: true},
			{name: "slice of primitives", value: struct{ Tags []string }{}, want: true},
			{name: "nested primitive containers", value: struct{ M map[string][]int }{}, want: true},
			{name: "interface field", value: struct{ V any }{}, want: false},
			{name: "pointer field", value: struct{ P *int }{}, want: false},
			{name: "slice of structs", value: struct{ Endpoints []endpoint }{}, want: false},
			{name: "slice of any", value: struct{ Items []any }{}, want: false},
			{name: "map with struct values", value: struct{ M map[string]endpoint }{}, want: false},
		}
		for _, tt := range tests {
			if _, ok := acc.ShapeKey(tt.value); ok != tt.want {
				t.Errorf("%s: ShapeKey ok = %v, want %v", tt.name, ok, tt.want)
			}
		}
	})
}

func TestMapAccessor(t *testing.T) {
	acc := NewMapAccessor()

	t.Run("string keyed any map", func(t *testing.T) {
		m := map[string]any{"name": "Charlie"}
		v, ok := acc.Get(m, "name")
		if !ok || v != "Charlie" {
			t.Errorf("Get = %v, %v", v, ok)
		}
		if acc.Has(m, "age") {
			t.Error("absent key reported present")
		}
	})

	t.Run("typed value map", func(t *testing.T) {
		m := map[string]int{"count": 3}
		v, ok := acc.Get(m, "count")
		if !ok || v != 3 {
			t.Errorf("Get = %v, %v", v, ok)
		}
	})

	t.Run("non-string keys render as strings", func(t *testing.T) {
		m := map[int]string{7: "seven"}
		v, ok := acc.Get(m, "7")
		if !ok || v != "seven" {
			t.Errorf("Get = %v, %v", v, ok)
		}
	})

	t.Run("nil map is opaque", func(t *testing.T) {
		var m map[string]any
		if acc.CanAccess(m) {
			t.Error("nil map should be opaque")
		}
	})
}

func TestRecordAccessor(t *testing.T) {
	acc := NewRecordAccessor()
	rec := NewRecord().
		Set("id", 42, typedesc.Int()).
		SetInferred("tags", []string{"a", "b"})

	t.Run("declared descriptor wins", func(t *testing.T) {
		d, ok := rec.Type("id")
		if !ok || !d.Equal(typedesc.Int()) {
			t.Errorf("Type(id) = %s, %v", d, ok)
		}
	})

	t.Run("inferred descriptor", func(t *testing.T) {
		d, ok := rec.Type("tags")
		if !ok || !d.Equal(typedesc.SequenceOf(typedesc.String())) {
			t.Errorf("Type(tags) = %s, %v", d, ok)
		}
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		names := acc.FieldNames(rec)
		if len(names) != 2 || names[0] != "id" || names[1] != "tags" {
			t.Errorf("FieldNames = %v", names)
		}
	})

	t.Run("get any honors candidate order", func(t *testing.T) {
		matched, v, ok := acc.GetAny(rec, []string{"missing", "tags", "id"})
		if !ok || matched != "tags" {
			t.Errorf("GetAny = %q, %v, %v", matched, v, ok)
		}
	})
}

func TestLookup(t *testing.T) {
	t.Run("fallback tries names in order", func(t *testing.T) {
		acc := NewMapAccessor()
		m := map[string]any{"max_tokens": 100}
		matched, v, ok := Lookup(acc, m, []string{"maxTokens", "max_tokens"})
		if !ok || matched != "max_tokens" || v != 100 {
			t.Errorf("Lookup = %q, %v, %v", matched, v, ok)
		}
	})

	t.Run("absent everywhere", func(t *testing.T) {
		acc := NewMapAccessor()
		_, _, ok := Lookup(acc, map[string]any{}, []string{"a", "b"})
		if ok {
			t.Error("expected absence")
		}
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	t.Run("selects map adapter", func(t *testing.T) {
		if _, ok := reg.For(map[string]any{}).(*MapAccessor); !ok {
			t.Error("expected map adapter")
		}
	})

	t.Run("selects struct adapter", func(t *testing.T) {
		if _, ok := reg.For(server{}).(*StructAccessor); !ok {
			t.Error("expected struct adapter")
		}
	})

	t.Run("record wins over map and struct", func(t *testing.T) {
		if _, ok := reg.For(NewRecord()).(*RecordAccessor); !ok {
			t.Error("expected record adapter")
		}
	})

	t.Run("opaque values resolve to nil", func(t *testing.T) {
		if reg.For(42) != nil {
			t.Error("int should be opaque")
		}
		if reg.For(nil) != nil {
			t.Error("nil should be opaque")
		}
	})
}
