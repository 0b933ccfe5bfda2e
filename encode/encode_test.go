package encode

import (
	"bytes"
	"testing"

	"github.com/schema-tools/go-schema-tools/ir"
)

func enc(t *testing.T, node *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(node, &buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func kv(k string, v *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: ir.FromString(k), Val: v}
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		node *ir.Node
		want string
	}{
		{ir.Null(), "null\n"},
		{ir.FromBool(true), "true\n"},
		{ir.FromInt(-3), "-3\n"},
		{ir.FromFloat(2.5), "2.5\n"},
		{&ir.Node{Type: ir.NumberType, Number: "1e14"}, "1e14\n"},
		{ir.FromString("he\"llo"), `"he\"llo"` + "\n"},
		{ir.FromSlice(nil), "[]\n"},
		{ir.FromKeyVals(nil), "{}\n"},
	}
	for _, tt := range tests {
		if got := enc(t, tt.node); got != tt.want {
			t.Errorf("Encode = %q, want %q", got, tt.want)
		}
	}
}

func TestEncodeIndented(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		kv("a", ir.FromInt(1)),
		kv("b", ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})),
	})
	want := `{
  "a": 1,
  "b": [
    1,
    2
  ]
}
`
	if got := enc(t, node); got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}

	want4 := `{
    "a": 1,
    "b": [
        1,
        2
    ]
}
`
	if got := enc(t, node, EncodeIndent(4)); got != want4 {
		t.Errorf("Encode(indent 4) =\n%q\nwant\n%q", got, want4)
	}
}

func TestEncodeWire(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		kv("a", ir.FromInt(1)),
		kv("b", ir.FromSlice([]*ir.Node{ir.FromBool(false), ir.Null()})),
	})
	want := `{"a":1,"b":[false,null]}` + "\n"
	if got := enc(t, node, EncodeWire(true)); got != want {
		t.Errorf("Encode(wire) = %q, want %q", got, want)
	}
}

func TestEncodeColorsEscapePercent(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		kv("p", ir.FromString("100%")),
	})
	got := enc(t, node, EncodeWire(true), EncodeColors(NewColors()))
	if !bytes.Contains([]byte(got), []byte("100%")) {
		t.Errorf("colored output mangled percent: %q", got)
	}
}
